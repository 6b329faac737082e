// internal/repository/postgres/seed.go
package postgres

import (
	"context"
	"fmt"

	"finreview/internal/domain"
)

// Seed inserts employees and transactions when the employees table is empty.
// It reports whether anything was inserted. Transactions keep the slice order,
// which is the order pages are served in.
func (r *Store) Seed(ctx context.Context, employees []domain.Employee, transactions []domain.Transaction) (bool, error) {
	var existing int
	if err := r.q.GetContext(ctx, &existing, `SELECT COUNT(*) FROM employees`); err != nil {
		return false, fmt.Errorf("failed to count employees: %w", err)
	}
	if existing > 0 {
		return false, nil
	}

	for _, e := range employees {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO employees (id, first_name, last_name) VALUES ($1, $2, $3)`,
			e.ID, e.FirstName, e.LastName)
		if err != nil {
			return false, fmt.Errorf("failed to insert employee %s: %w", e.ID, err)
		}
	}
	for _, tx := range transactions {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO transactions (id, amount, employee_id, merchant, date, approved) VALUES ($1, $2, $3, $4, $5, $6)`,
			tx.ID, tx.Amount, tx.Employee.ID, tx.Merchant, tx.Date, tx.Approved)
		if err != nil {
			return false, fmt.Errorf("failed to insert transaction %s: %w", tx.ID, err)
		}
	}
	return true, nil
}
