// internal/service/transactions_service.go
package service

import (
	"context"
	"log/slog"

	"finreview/internal/domain"
	"finreview/internal/fetch"
	"finreview/internal/repository"
)

// PaginatedTransactions accumulates pages of the unfiltered transaction list.
type PaginatedTransactions interface {
	// Data returns the pages fetched so far, or nil before the first fetch.
	Data() *repository.TransactionPage
	// Loading reports whether a request of this controller is outstanding.
	Loading() bool
	State() FetchState
	// FetchAll fetches the next page: page 0 without data, data.NextPage otherwise.
	FetchAll(ctx context.Context) error
	// InvalidateData drops the accumulated pages so the next fetch starts at page 0.
	InvalidateData()
	// ApplyApproval updates the approved flag of an accumulated transaction.
	ApplyApproval(transactionID string, value bool) bool
}

type paginatedTransactions struct {
	pager *pager[domain.PageParams]
}

// NewPaginatedTransactions creates a new PaginatedTransactions controller.
func NewPaginatedTransactions(client *fetch.Client, op fetch.Operation[domain.PageParams, *repository.TransactionPage], logger *slog.Logger) PaginatedTransactions {
	return &paginatedTransactions{pager: newPager(client, op, logger)}
}

func (c *paginatedTransactions) FetchAll(ctx context.Context) error {
	return c.pager.fetchNext(ctx, func(page *int) domain.PageParams {
		return domain.PageParams{Page: page}
	})
}

func (c *paginatedTransactions) Data() *repository.TransactionPage { return c.pager.snapshot() }
func (c *paginatedTransactions) Loading() bool                     { return c.pager.client.Loading() }
func (c *paginatedTransactions) State() FetchState                 { return c.pager.currentState() }
func (c *paginatedTransactions) InvalidateData()                   { c.pager.invalidate() }

func (c *paginatedTransactions) ApplyApproval(transactionID string, value bool) bool {
	return c.pager.applyApproval(transactionID, value)
}

// TransactionsByEmployee accumulates pages of one employee's transactions.
type TransactionsByEmployee interface {
	Data() *repository.TransactionPage
	Loading() bool
	State() FetchState
	// FetchByID fetches the next page of employeeID's transactions.
	// Callers invalidate before switching to another employee.
	FetchByID(ctx context.Context, employeeID string) error
	InvalidateData()
	ApplyApproval(transactionID string, value bool) bool
}

type transactionsByEmployee struct {
	pager *pager[domain.EmployeePageParams]
}

// NewTransactionsByEmployee creates a new TransactionsByEmployee controller.
func NewTransactionsByEmployee(client *fetch.Client, op fetch.Operation[domain.EmployeePageParams, *repository.TransactionPage], logger *slog.Logger) TransactionsByEmployee {
	return &transactionsByEmployee{pager: newPager(client, op, logger)}
}

func (c *transactionsByEmployee) FetchByID(ctx context.Context, employeeID string) error {
	return c.pager.fetchNext(ctx, func(page *int) domain.EmployeePageParams {
		return domain.EmployeePageParams{EmployeeID: employeeID, Page: page}
	})
}

func (c *transactionsByEmployee) Data() *repository.TransactionPage { return c.pager.snapshot() }
func (c *transactionsByEmployee) Loading() bool                     { return c.pager.client.Loading() }
func (c *transactionsByEmployee) State() FetchState                 { return c.pager.currentState() }
func (c *transactionsByEmployee) InvalidateData()                   { c.pager.invalidate() }

func (c *transactionsByEmployee) ApplyApproval(transactionID string, value bool) bool {
	return c.pager.applyApproval(transactionID, value)
}
