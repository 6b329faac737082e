// internal/fetch/endpoints.go
package fetch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"finreview/internal/domain"
	"finreview/internal/repository"
)

// Endpoint names, also used as the operation part of cache keys.
const (
	EndpointEmployees              = "employees"
	EndpointPaginatedTransactions  = "paginatedTransactions"
	EndpointTransactionsByEmployee = "transactionsByEmployee"
	EndpointSetTransactionApproval = "setTransactionApproval"
)

// NoParams is the parameter type of operations that take none.
type NoParams struct{}

// Endpoints is the table of operations the controllers call through the cache.
type Endpoints struct {
	Employees              Operation[NoParams, []domain.Employee]
	PaginatedTransactions  Operation[domain.PageParams, *repository.TransactionPage]
	TransactionsByEmployee Operation[domain.EmployeePageParams, *repository.TransactionPage]
	SetTransactionApproval Operation[domain.ApprovalParams, NoParams]
}

// NewEndpoints binds every endpoint to its data source call.
func NewEndpoints(employees repository.EmployeeRepository, transactions repository.TransactionRepository, logger *slog.Logger) Endpoints {
	return Endpoints{
		Employees: traced(logger, EndpointEmployees, func(ctx context.Context, _ NoParams) ([]domain.Employee, error) {
			return employees.ListEmployees(ctx)
		}),
		PaginatedTransactions: traced(logger, EndpointPaginatedTransactions, func(ctx context.Context, p domain.PageParams) (*repository.TransactionPage, error) {
			return transactions.GetTransactionsPaginated(ctx, p.Page)
		}),
		TransactionsByEmployee: traced(logger, EndpointTransactionsByEmployee, func(ctx context.Context, p domain.EmployeePageParams) (*repository.TransactionPage, error) {
			return transactions.GetTransactionsByEmployee(ctx, p.EmployeeID, p.Page)
		}),
		SetTransactionApproval: traced(logger, EndpointSetTransactionApproval, func(ctx context.Context, p domain.ApprovalParams) (NoParams, error) {
			return NoParams{}, transactions.SetTransactionApproval(ctx, p.TransactionID, p.Value)
		}),
	}
}

// traced wraps a data source call with a request ID and debug/error logging.
func traced[P, R any](logger *slog.Logger, name string, do func(context.Context, P) (R, error)) Operation[P, R] {
	return Operation[P, R]{
		Name: name,
		Do: func(ctx context.Context, params P) (R, error) {
			log := logger.With("endpoint", name, "request_id", uuid.NewString())
			start := time.Now()
			log.Debug("Calling data source", "params", params)

			result, err := do(ctx, params)
			if err != nil {
				log.Error("Data source call failed", "error", err)
				return result, err
			}
			log.Debug("Data source call succeeded", "elapsed", time.Since(start))
			return result, nil
		},
	}
}
