// internal/repository/employee_repo.go
package repository

import (
	"context"

	"finreview/internal/domain"
)

// EmployeeRepository defines the interface for employee data operations.
type EmployeeRepository interface {
	// ListEmployees returns every employee, unpaginated.
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}
