// internal/repository/postgres/employee_pg.go
package postgres

import (
	"context"
	"fmt"

	"finreview/internal/domain"
)

// ListEmployees retrieves every employee in insertion order.
func (r *Store) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees := []domain.Employee{}
	query := `SELECT id, first_name, last_name FROM employees ORDER BY seq`
	if err := r.q.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
