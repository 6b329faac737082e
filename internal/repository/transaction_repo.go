// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"finreview/internal/domain"
)

// TransactionPage is one page of transactions.
type TransactionPage = domain.PaginatedResponse[[]domain.Transaction]

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// GetTransactionsPaginated returns page of all transactions. A nil page is rejected with util.ErrInvalidPage.
	GetTransactionsPaginated(ctx context.Context, page *int) (*TransactionPage, error)
	// GetTransactionsByEmployee returns page of the transactions made by employeeID. A nil page reads as 0.
	GetTransactionsByEmployee(ctx context.Context, employeeID string, page *int) (*TransactionPage, error)
	// SetTransactionApproval sets the approved flag of a single transaction.
	SetTransactionApproval(ctx context.Context, transactionID string, value bool) error
}
