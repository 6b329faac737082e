// internal/repository/memory/store.go
package memory

import (
	"context"
	"fmt"
	"sync"

	"finreview/internal/domain"
	"finreview/internal/repository"
	"finreview/internal/util"
)

// Store is an in-process data source seeded once from a Dataset.
// Only the approved flag of a transaction can change after seeding.
type Store struct {
	mu           sync.RWMutex
	employees    []domain.Employee
	transactions []domain.Transaction
	byID         map[string]int // transaction ID -> index into transactions
}

var (
	_ repository.EmployeeRepository    = (*Store)(nil)
	_ repository.TransactionRepository = (*Store)(nil)
)

// NewStore creates a Store holding a private copy of ds.
func NewStore(ds Dataset) *Store {
	s := &Store{
		employees:    append([]domain.Employee(nil), ds.Employees...),
		transactions: append([]domain.Transaction(nil), ds.Transactions...),
		byID:         make(map[string]int, len(ds.Transactions)),
	}
	for i, tx := range s.transactions {
		s.byID[tx.ID] = i
	}
	return s
}

// ListEmployees returns all employees.
func (s *Store) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Employee(nil), s.employees...), nil
}

// GetTransactionsPaginated returns one page of all transactions in seed order.
func (s *Store) GetTransactionsPaginated(ctx context.Context, page *int) (*repository.TransactionPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("page cannot be nil: %w", util.ErrInvalidPage)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(s.transactions, *page)
}

// GetTransactionsByEmployee returns one page of the transactions made by employeeID.
func (s *Store) GetTransactionsByEmployee(ctx context.Context, employeeID string, page *int) (*repository.TransactionPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if employeeID == "" {
		return nil, util.ErrEmptyEmployeeID
	}
	p := 0
	if page != nil {
		p = *page
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]domain.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.Employee.ID == employeeID {
			filtered = append(filtered, tx)
		}
	}
	return paginate(filtered, p)
}

// SetTransactionApproval flips the approved flag of the stored transaction in place.
func (s *Store) SetTransactionApproval(ctx context.Context, transactionID string, value bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[transactionID]
	if !ok {
		return fmt.Errorf("transaction %q: %w", transactionID, util.ErrTransactionNotFound)
	}
	s.transactions[i].Approved = value
	return nil
}

func paginate(transactions []domain.Transaction, page int) (*repository.TransactionPage, error) {
	start, end, next, ok := domain.PageRange(page, len(transactions))
	if !ok {
		return nil, fmt.Errorf("%w %d", util.ErrInvalidPage, page)
	}
	return &repository.TransactionPage{
		Data:     append([]domain.Transaction{}, transactions[start:end]...),
		NextPage: next,
	}, nil
}
