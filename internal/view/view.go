// internal/view/view.go
package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"finreview/internal/domain"
	"finreview/internal/fetch"
	"finreview/internal/service"
)

// Snapshot is everything the display layer renders.
type Snapshot struct {
	Employees             []domain.Employee    // nil until fetched
	Transactions          []domain.Transaction // nil until fetched
	IsLoadingEmployees    bool
	IsLoadingTransactions bool
	HasMoreTransactions   bool
	EmployeeFilterID      string // "" selects all employees
}

// Coordinator ties the employee filter to the two transaction controllers.
// At most one of them holds data at a time.
type Coordinator struct {
	cache      *fetch.Cache
	endpoints  fetch.Endpoints
	employees  service.Employees
	all        service.PaginatedTransactions
	byEmployee service.TransactionsByEmployee
	mutations  *fetch.Client
	logger     *slog.Logger

	mu               sync.Mutex
	employeesLoading bool
	transactionLoads int
	employeeFilterID string
}

// NewCoordinator creates a Coordinator whose controllers share cache.
func NewCoordinator(cache *fetch.Cache, endpoints fetch.Endpoints, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		cache:      cache,
		endpoints:  endpoints,
		employees:  service.NewEmployees(cache.NewClient(), endpoints.Employees, logger),
		all:        service.NewPaginatedTransactions(cache.NewClient(), endpoints.PaginatedTransactions, logger),
		byEmployee: service.NewTransactionsByEmployee(cache.NewClient(), endpoints.TransactionsByEmployee, logger),
		mutations:  cache.NewClient(),
		logger:     logger.With("component", "view"),
	}
}

// Mount performs the initial load: the first page of all transactions and the
// employee list, concurrently. It does nothing once employees are fetched or
// while they are loading.
func (c *Coordinator) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.employees.Data() != nil || c.employees.Loading() || c.employeesLoading {
		c.mu.Unlock()
		return nil
	}
	c.employeesLoading = true
	c.mu.Unlock()

	c.logger.Info("Mounting view")

	// A failing load does not cancel the other one.
	var g errgroup.Group
	g.Go(func() error {
		return c.loadAllTransactions(ctx)
	})
	g.Go(func() error {
		defer c.setEmployeesLoading(false)
		if err := c.employees.FetchAll(ctx); err != nil {
			return fmt.Errorf("failed to load employees: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// SelectEmployee switches the filter. An empty employeeID selects all
// employees and reloads the unfiltered list from its first page.
func (c *Coordinator) SelectEmployee(ctx context.Context, employeeID string) error {
	c.mu.Lock()
	c.employeeFilterID = employeeID
	c.mu.Unlock()

	c.logger.Info("Employee filter changed", "employee_id", employeeID)
	c.cache.Invalidate()
	c.byEmployee.InvalidateData()

	if employeeID == domain.EmptyEmployee.ID {
		c.all.InvalidateData()
		return c.loadAllTransactions(ctx)
	}
	return c.loadTransactionsByEmployee(ctx, employeeID)
}

// RequestMore fetches the next page of the active list. It is a no-op while
// either list is loading or when the active list has nothing more.
func (c *Coordinator) RequestMore(ctx context.Context) error {
	if c.all.Loading() || c.byEmployee.Loading() {
		c.logger.Debug("Ignoring request for more while loading")
		return nil
	}

	snap := c.Snapshot()
	if snap.Transactions == nil || !snap.HasMoreTransactions {
		return nil
	}
	if snap.EmployeeFilterID != "" {
		return c.loadTransactionsByEmployee(ctx, snap.EmployeeFilterID)
	}
	return c.loadAllTransactions(ctx)
}

// SetTransactionApproval persists the approval and patches the rows on screen.
// Cached transaction pages are dropped so later fetches see the new value.
func (c *Coordinator) SetTransactionApproval(ctx context.Context, transactionID string, value bool) error {
	params := domain.ApprovalParams{TransactionID: transactionID, Value: value}
	if _, err := fetch.FetchWithoutCache(ctx, c.mutations, c.endpoints.SetTransactionApproval, params); err != nil {
		return err
	}

	c.cache.InvalidateOperation(fetch.EndpointPaginatedTransactions)
	c.cache.InvalidateOperation(fetch.EndpointTransactionsByEmployee)

	patched := c.all.ApplyApproval(transactionID, value)
	patched = c.byEmployee.ApplyApproval(transactionID, value) || patched
	c.logger.Info("Transaction approval set", "transaction_id", transactionID, "value", value, "visible", patched)
	return nil
}

// Snapshot returns the current derived view.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	snap := Snapshot{
		IsLoadingEmployees:    c.employeesLoading,
		IsLoadingTransactions: c.transactionLoads > 0,
		EmployeeFilterID:      c.employeeFilterID,
	}
	c.mu.Unlock()

	snap.Employees = c.employees.Data()

	all, byEmployee := c.all.Data(), c.byEmployee.Data()
	switch {
	case all != nil:
		snap.Transactions = all.Data
	case byEmployee != nil:
		snap.Transactions = byEmployee.Data
	}

	// Without data there is nothing to continue, so HasMore is false even
	// before the first page of the selected list arrives.
	if snap.EmployeeFilterID != "" {
		snap.HasMoreTransactions = byEmployee.HasMore()
	} else {
		snap.HasMoreTransactions = all.HasMore()
	}
	return snap
}

func (c *Coordinator) loadAllTransactions(ctx context.Context) error {
	defer c.beginTransactionLoad()()
	c.byEmployee.InvalidateData()

	if err := c.all.FetchAll(ctx); err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	return nil
}

func (c *Coordinator) loadTransactionsByEmployee(ctx context.Context, employeeID string) error {
	defer c.beginTransactionLoad()()
	c.all.InvalidateData()

	if err := c.byEmployee.FetchByID(ctx, employeeID); err != nil {
		return fmt.Errorf("failed to load transactions of employee %q: %w", employeeID, err)
	}
	return nil
}

func (c *Coordinator) beginTransactionLoad() func() {
	c.mu.Lock()
	c.transactionLoads++
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.transactionLoads--
		c.mu.Unlock()
	}
}

func (c *Coordinator) setEmployeesLoading(v bool) {
	c.mu.Lock()
	c.employeesLoading = v
	c.mu.Unlock()
}
