// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"finreview/internal/domain"
	"finreview/internal/repository"
	"finreview/internal/util"
)

// Executor is the part of *sqlx.DB and *sqlx.Tx the store runs queries on,
// so the same Store works inside and outside a transaction.
type Executor interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

var (
	_ Executor = (*sqlx.DB)(nil)
	_ Executor = (*sqlx.Tx)(nil)
)

// Store implements the repository interfaces for PostgreSQL.
// Page math is shared with the in-memory store so both back ends page identically.
type Store struct {
	q Executor
}

var (
	_ repository.EmployeeRepository    = (*Store)(nil)
	_ repository.TransactionRepository = (*Store)(nil)
)

// NewStore creates a new Store on top of q (typically a *sqlx.DB).
func NewStore(q Executor) *Store {
	return &Store{q: q}
}

// transactionRow is a transaction joined with its employee.
type transactionRow struct {
	ID         string          `db:"id"`
	Amount     decimal.Decimal `db:"amount"`
	Merchant   string          `db:"merchant"`
	Date       string          `db:"date"`
	Approved   bool            `db:"approved"`
	EmployeeID string          `db:"employee_id"`
	FirstName  string          `db:"first_name"`
	LastName   string          `db:"last_name"`
}

func (r transactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:     r.ID,
		Amount: r.Amount,
		Employee: domain.Employee{
			ID:        r.EmployeeID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
		},
		Merchant: r.Merchant,
		Date:     r.Date,
		Approved: r.Approved,
	}
}

const selectTransactions = `
	SELECT t.id, t.amount, t.merchant, to_char(t.date, 'YYYY-MM-DD') AS date, t.approved,
	       e.id AS employee_id, e.first_name, e.last_name
	FROM transactions t
	JOIN employees e ON e.id = t.employee_id`

// GetTransactionsPaginated retrieves one page of all transactions in insertion order.
func (r *Store) GetTransactionsPaginated(ctx context.Context, page *int) (*repository.TransactionPage, error) {
	if page == nil {
		return nil, fmt.Errorf("page cannot be nil: %w", util.ErrInvalidPage)
	}

	var total int
	if err := r.q.GetContext(ctx, &total, `SELECT COUNT(*) FROM transactions`); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	start, end, next, ok := domain.PageRange(*page, total)
	if !ok {
		return nil, fmt.Errorf("%w %d", util.ErrInvalidPage, *page)
	}

	rows := []transactionRow{}
	query := selectTransactions + `
	ORDER BY t.seq
	LIMIT $1 OFFSET $2`
	if err := r.q.SelectContext(ctx, &rows, query, end-start, start); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions page %d: %w", *page, err)
	}
	return toPage(rows, next), nil
}

// GetTransactionsByEmployee retrieves one page of the transactions made by employeeID.
func (r *Store) GetTransactionsByEmployee(ctx context.Context, employeeID string, page *int) (*repository.TransactionPage, error) {
	if employeeID == "" {
		return nil, util.ErrEmptyEmployeeID
	}
	p := 0
	if page != nil {
		p = *page
	}

	var total int
	if err := r.q.GetContext(ctx, &total, `SELECT COUNT(*) FROM transactions WHERE employee_id = $1`, employeeID); err != nil {
		return nil, fmt.Errorf("failed to count transactions for employee %s: %w", employeeID, err)
	}

	start, end, next, ok := domain.PageRange(p, total)
	if !ok {
		return nil, fmt.Errorf("%w %d", util.ErrInvalidPage, p)
	}

	rows := []transactionRow{}
	query := selectTransactions + `
	WHERE t.employee_id = $1
	ORDER BY t.seq
	LIMIT $2 OFFSET $3`
	if err := r.q.SelectContext(ctx, &rows, query, employeeID, end-start, start); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions page %d for employee %s: %w", p, employeeID, err)
	}
	return toPage(rows, next), nil
}

// SetTransactionApproval updates the approved flag of a single transaction.
func (r *Store) SetTransactionApproval(ctx context.Context, transactionID string, value bool) error {
	result, err := r.q.ExecContext(ctx, `UPDATE transactions SET approved = $1 WHERE id = $2`, value, transactionID)
	if err != nil {
		return fmt.Errorf("failed to set approval for transaction %s: %w", transactionID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after approving transaction %s: %w", transactionID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("transaction %q: %w", transactionID, util.ErrTransactionNotFound)
	}
	return nil
}

func toPage(rows []transactionRow, next *int) *repository.TransactionPage {
	data := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		data = append(data, row.toDomain())
	}
	return &repository.TransactionPage{Data: data, NextPage: next}
}
