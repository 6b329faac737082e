// internal/service/transactions_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"finreview/internal/domain"
	"finreview/internal/fetch"
	"finreview/internal/repository"
	"finreview/internal/repository/memory"
	"finreview/internal/util"
)

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetTransactionsPaginated(ctx context.Context, page *int) (*repository.TransactionPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TransactionPage), args.Error(1)
}

func (m *MockTransactionRepository) GetTransactionsByEmployee(ctx context.Context, employeeID string, page *int) (*repository.TransactionPage, error) {
	args := m.Called(ctx, employeeID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TransactionPage), args.Error(1)
}

func (m *MockTransactionRepository) SetTransactionApproval(ctx context.Context, transactionID string, value bool) error {
	args := m.Called(ctx, transactionID, value)
	return args.Error(0)
}

// twelveTransactions: tx-1..tx-12, odd IDs by emp-a, even IDs by emp-b.
func twelveTransactions() memory.Dataset {
	a := domain.Employee{ID: "emp-a", FirstName: "Ada", LastName: "Lovelace"}
	b := domain.Employee{ID: "emp-b", FirstName: "Alan", LastName: "Turing"}
	ds := memory.Dataset{Employees: []domain.Employee{a, b}}
	for i := 1; i <= 12; i++ {
		emp := a
		if i%2 == 0 {
			emp = b
		}
		tx := domain.NewTransaction(fmt.Sprintf("tx-%d", i), decimal.NewFromInt(int64(i)), emp, "Merchant", "2024-03-01")
		ds.Transactions = append(ds.Transactions, *tx)
	}
	return ds
}

type fixture struct {
	store     *memory.Store
	cache     *fetch.Cache
	endpoints fetch.Endpoints
}

func newFixture() fixture {
	store := memory.NewStore(twelveTransactions())
	return fixture{
		store:     store,
		cache:     fetch.NewCache(util.DiscardLogger()),
		endpoints: fetch.NewEndpoints(store, store, util.DiscardLogger()),
	}
}

func (f fixture) paginated() PaginatedTransactions {
	return NewPaginatedTransactions(f.cache.NewClient(), f.endpoints.PaginatedTransactions, util.DiscardLogger())
}

func (f fixture) byEmployee() TransactionsByEmployee {
	return NewTransactionsByEmployee(f.cache.NewClient(), f.endpoints.TransactionsByEmployee, util.DiscardLogger())
}

func txIDs(page *repository.TransactionPage) []string {
	out := []string{}
	for _, tx := range page.Data {
		out = append(out, tx.ID)
	}
	return out
}

func TestPaginatedTransactions_AccumulationLaw(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	controller := f.paginated()

	assert.Nil(t, controller.Data())
	assert.Equal(t, StateIdle, controller.State())

	var expected []domain.Transaction
	wantStates := []FetchState{StateIdle, StateIdle, StateDone}
	for k := 0; k < 3; k++ {
		require.NoError(t, controller.FetchAll(ctx))

		page, err := f.store.GetTransactionsPaginated(ctx, domain.IntPtr(k))
		require.NoError(t, err)
		expected = append(expected, page.Data...)

		data := controller.Data()
		require.NotNil(t, data)
		assert.Equal(t, expected, data.Data, "after page %d", k)
		assert.Equal(t, page.NextPage, data.NextPage, "after page %d", k)
		assert.Equal(t, wantStates[k], controller.State())
	}

	t.Run("FetchingPastExhaustionIsRejected", func(t *testing.T) {
		err := controller.FetchAll(ctx)
		assert.ErrorIs(t, err, util.ErrInvalidPage)
		assert.Len(t, controller.Data().Data, 12)
		assert.Equal(t, StateDone, controller.State())
	})
}

func TestPaginatedTransactions_InvalidateData(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	controller := f.paginated()

	require.NoError(t, controller.FetchAll(ctx))
	require.NoError(t, controller.FetchAll(ctx))
	assert.Len(t, controller.Data().Data, 10)

	controller.InvalidateData()
	assert.Nil(t, controller.Data())
	assert.Equal(t, StateIdle, controller.State())

	require.NoError(t, controller.FetchAll(ctx))
	assert.Equal(t, []string{"tx-1", "tx-2", "tx-3", "tx-4", "tx-5"}, txIDs(controller.Data()))
}

func TestPaginatedTransactions_GoesThroughTheCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	page0 := &repository.TransactionPage{
		Data:     []domain.Transaction{{ID: "tx-1"}, {ID: "tx-2"}},
		NextPage: domain.IntPtr(1),
	}
	repo.On("GetTransactionsPaginated", mock.Anything, domain.IntPtr(0)).Return(page0, nil).Once()

	store := memory.NewStore(memory.Dataset{})
	endpoints := fetch.NewEndpoints(store, repo, util.DiscardLogger())
	cache := fetch.NewCache(util.DiscardLogger())

	first := NewPaginatedTransactions(cache.NewClient(), endpoints.PaginatedTransactions, util.DiscardLogger())
	second := NewPaginatedTransactions(cache.NewClient(), endpoints.PaginatedTransactions, util.DiscardLogger())
	require.NoError(t, first.FetchAll(ctx))
	require.NoError(t, second.FetchAll(ctx))

	assert.Equal(t, first.Data(), second.Data())
	repo.AssertExpectations(t)
}

func TestPaginatedTransactions_ErrorLeavesDataUntouched(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	repo.On("GetTransactionsPaginated", mock.Anything, domain.IntPtr(0)).
		Return(&repository.TransactionPage{Data: []domain.Transaction{{ID: "tx-1"}}, NextPage: domain.IntPtr(1)}, nil).Once()
	repo.On("GetTransactionsPaginated", mock.Anything, domain.IntPtr(1)).
		Return(nil, fmt.Errorf("%w 1", util.ErrInvalidPage)).Once()

	endpoints := fetch.NewEndpoints(memory.NewStore(memory.Dataset{}), repo, util.DiscardLogger())
	controller := NewPaginatedTransactions(fetch.NewCache(util.DiscardLogger()).NewClient(), endpoints.PaginatedTransactions, util.DiscardLogger())

	require.NoError(t, controller.FetchAll(ctx))
	err := controller.FetchAll(ctx)
	assert.ErrorIs(t, err, util.ErrInvalidPage)

	assert.Equal(t, []string{"tx-1"}, txIDs(controller.Data()))
	assert.Equal(t, StateIdle, controller.State())
	assert.False(t, controller.Loading())
	repo.AssertExpectations(t)
}

func TestPaginatedTransactions_NilResponseIsNothingNew(t *testing.T) {
	ctx := context.Background()
	calls := 0
	op := fetch.Operation[domain.PageParams, *repository.TransactionPage]{
		Name: fetch.EndpointPaginatedTransactions,
		Do: func(ctx context.Context, p domain.PageParams) (*repository.TransactionPage, error) {
			calls++
			if *p.Page == 0 && calls == 1 {
				return &repository.TransactionPage{Data: []domain.Transaction{{ID: "tx-1"}}, NextPage: domain.IntPtr(1)}, nil
			}
			return nil, nil
		},
	}
	controller := NewPaginatedTransactions(fetch.NewCache(util.DiscardLogger()).NewClient(), op, util.DiscardLogger())

	require.NoError(t, controller.FetchAll(ctx))
	require.NoError(t, controller.FetchAll(ctx))

	data := controller.Data()
	assert.Equal(t, []string{"tx-1"}, txIDs(data))
	require.NotNil(t, data.NextPage)
	assert.Equal(t, 1, *data.NextPage)
}

func TestPaginatedTransactions_ApplyApprovalDoesNotTouchTheCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	first, second := f.paginated(), f.paginated()

	require.NoError(t, first.FetchAll(ctx))
	assert.True(t, first.ApplyApproval("tx-1", true))
	assert.False(t, first.ApplyApproval("tx-99", true))
	assert.True(t, first.Data().Data[0].Approved)

	require.NoError(t, second.FetchAll(ctx)) // served from the cache
	assert.False(t, second.Data().Data[0].Approved)
}

func TestTransactionsByEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("AccumulatesUntilDone", func(t *testing.T) {
		f := newFixture()
		controller := f.byEmployee()

		require.NoError(t, controller.FetchByID(ctx, "emp-a"))
		assert.Equal(t, []string{"tx-1", "tx-3", "tx-5", "tx-7", "tx-9"}, txIDs(controller.Data()))
		assert.Equal(t, StateIdle, controller.State())

		require.NoError(t, controller.FetchByID(ctx, "emp-a"))
		assert.Equal(t, []string{"tx-1", "tx-3", "tx-5", "tx-7", "tx-9", "tx-11"}, txIDs(controller.Data()))
		assert.Nil(t, controller.Data().NextPage)
		assert.Equal(t, StateDone, controller.State())
	})

	t.Run("EmptyEmployeeID", func(t *testing.T) {
		f := newFixture()
		controller := f.byEmployee()

		err := controller.FetchByID(ctx, "")
		assert.ErrorIs(t, err, util.ErrEmptyEmployeeID)
		assert.Nil(t, controller.Data())
		assert.Equal(t, StateIdle, controller.State())
	})

	t.Run("InvalidateStartsOver", func(t *testing.T) {
		f := newFixture()
		controller := f.byEmployee()

		require.NoError(t, controller.FetchByID(ctx, "emp-a"))
		controller.InvalidateData()
		require.NoError(t, controller.FetchByID(ctx, "emp-b"))
		assert.Equal(t, []string{"tx-2", "tx-4", "tx-6", "tx-8", "tx-10"}, txIDs(controller.Data()))
	})
}

func TestFetchState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "fetching", StateFetching.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "unknown", FetchState(42).String())
}
