// internal/domain/transaction.go
package domain

import (
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Transaction represents a card transaction awaiting finance review.
type Transaction struct {
	ID       string          `db:"id" json:"id"`             // Unique transaction identifier
	Amount   decimal.Decimal `db:"amount" json:"amount"`     // Transaction amount, NUMERIC(12, 2) in DB
	Employee Employee        `db:"-" json:"employee"`       // Employee who made the transaction, joined in by the store
	Merchant string          `db:"merchant" json:"merchant"` // Merchant name as printed on the statement
	Date     string          `db:"date" json:"date"`         // Posting date, YYYY-MM-DD
	Approved bool            `db:"approved" json:"approved"` // The only field that can change after seeding
}

// NewTransaction creates a new, unapproved Transaction.
func NewTransaction(id string, amount decimal.Decimal, employee Employee, merchant, date string) *Transaction {
	return &Transaction{
		ID:       id,
		Amount:   amount,
		Employee: employee,
		Merchant: merchant,
		Date:     date,
	}
}
