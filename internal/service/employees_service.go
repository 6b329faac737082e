// internal/service/employees_service.go
package service

import (
	"context"
	"log/slog"
	"sync"

	"finreview/internal/domain"
	"finreview/internal/fetch"
)

// Employees holds the employee list used by the filter.
type Employees interface {
	// Data returns the employees, or nil before the first successful fetch.
	Data() []domain.Employee
	Loading() bool
	FetchAll(ctx context.Context) error
}

type employees struct {
	client *fetch.Client
	op     fetch.Operation[fetch.NoParams, []domain.Employee]
	logger *slog.Logger

	mu   sync.Mutex
	data []domain.Employee
}

// NewEmployees creates a new Employees controller.
func NewEmployees(client *fetch.Client, op fetch.Operation[fetch.NoParams, []domain.Employee], logger *slog.Logger) Employees {
	return &employees{
		client: client,
		op:     op,
		logger: logger.With("controller", op.Name),
	}
}

func (e *employees) FetchAll(ctx context.Context) error {
	list, err := fetch.FetchWithCache(ctx, e.client, e.op, fetch.NoParams{})
	if err != nil {
		return err
	}
	e.logger.Debug("Fetched employees", "count", len(list))

	e.mu.Lock()
	e.data = append([]domain.Employee{}, list...)
	e.mu.Unlock()
	return nil
}

func (e *employees) Data() []domain.Employee {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.data == nil {
		return nil
	}
	return append([]domain.Employee{}, e.data...)
}

func (e *employees) Loading() bool {
	return e.client.Loading()
}
