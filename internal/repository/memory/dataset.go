// internal/repository/memory/dataset.go
package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finreview/internal/domain"
)

// Dataset is the seed content of a Store.
type Dataset struct {
	Employees    []domain.Employee
	Transactions []domain.Transaction
}

var defaultEmployees = []domain.Employee{
	{ID: "emp-1", FirstName: "James", LastName: "Smith"},
	{ID: "emp-2", FirstName: "Mary", LastName: "Johnson"},
	{ID: "emp-3", FirstName: "Robert", LastName: "Williams"},
	{ID: "emp-4", FirstName: "Patricia", LastName: "Brown"},
}

type seedRow struct {
	id       string
	amount   string
	employee int
	merchant string
	date     string
	approved bool
}

var defaultRows = []seedRow{
	{"tx-1", "136.45", 0, "Social Media Ads Inc", "2024-01-02", true},
	{"tx-2", "689.21", 1, "Flight Booking Co", "2024-01-03", false},
	{"tx-3", "42.10", 2, "Coffee Corner", "2024-01-03", true},
	{"tx-4", "1250.00", 3, "Office Furniture Ltd", "2024-01-05", false},
	{"tx-5", "18.99", 0, "Cloud Storage Plan", "2024-01-06", true},
	{"tx-6", "310.75", 1, "Conference Tickets", "2024-01-08", false},
	{"tx-7", "64.30", 2, "Ride Share", "2024-01-09", false},
	{"tx-8", "925.50", 0, "Laptop Outlet", "2024-01-11", true},
	{"tx-9", "12.00", 3, "Parking Garage", "2024-01-12", false},
	{"tx-10", "457.80", 1, "Hotel Downtown", "2024-01-14", true},
	{"tx-11", "75.25", 2, "Team Lunch Bistro", "2024-01-15", false},
	{"tx-12", "230.00", 0, "Software License Co", "2024-01-17", false},
	{"tx-13", "98.60", 3, "Print Shop", "2024-01-18", true},
	{"tx-14", "540.15", 1, "Train Tickets", "2024-01-20", false},
	{"tx-15", "33.40", 2, "Stationery Store", "2024-01-22", true},
	{"tx-16", "1999.99", 0, "Electronics Depot", "2024-01-24", false},
}

// DefaultDataset returns the fixed dataset the application starts with.
func DefaultDataset() Dataset {
	employees := append([]domain.Employee(nil), defaultEmployees...)
	transactions := make([]domain.Transaction, 0, len(defaultRows))
	for _, row := range defaultRows {
		tx := domain.NewTransaction(row.id, decimal.RequireFromString(row.amount), employees[row.employee], row.merchant, row.date)
		tx.Approved = row.approved
		transactions = append(transactions, *tx)
	}
	return Dataset{Employees: employees, Transactions: transactions}
}

// GenerateDataset builds a synthetic dataset of employees*perEmployee
// transactions with random IDs. Transactions are interleaved across employees
// so every page of the unfiltered query mixes card holders.
func GenerateDataset(employees, perEmployee int) Dataset {
	ds := Dataset{
		Employees:    make([]domain.Employee, 0, employees),
		Transactions: make([]domain.Transaction, 0, employees*perEmployee),
	}
	for i := 0; i < employees; i++ {
		ds.Employees = append(ds.Employees, domain.Employee{
			ID:        uuid.NewString(),
			FirstName: fmt.Sprintf("Employee%d", i+1),
			LastName:  "Generated",
		})
	}

	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for n := 0; n < perEmployee; n++ {
		for _, emp := range ds.Employees {
			amount := decimal.NewFromInt(int64(len(ds.Transactions)%97 + 1)).Mul(decimal.NewFromFloat(12.5))
			tx := domain.NewTransaction(uuid.NewString(), amount, emp, "Generated Merchant", day.Format("2006-01-02"))
			ds.Transactions = append(ds.Transactions, *tx)
			day = day.Add(6 * time.Hour)
		}
	}
	return ds
}
