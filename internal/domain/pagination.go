// internal/domain/pagination.go
package domain

// TransactionsPerPage is the slice width of every paginated transaction query.
const TransactionsPerPage = 5

// PaginatedResponse is one page of a paginated query.
// A nil NextPage means the result set is exhausted.
type PaginatedResponse[T any] struct {
	Data     T    `json:"data"`
	NextPage *int `json:"nextPage"`
}

// HasMore reports whether another page can be requested.
func (p *PaginatedResponse[T]) HasMore() bool {
	return p != nil && p.NextPage != nil
}

// PageParams are the parameters of the unfiltered transaction query.
type PageParams struct {
	Page *int `json:"page"`
}

// EmployeePageParams are the parameters of the by-employee transaction query.
type EmployeePageParams struct {
	EmployeeID string `json:"employeeId"`
	Page       *int   `json:"page"`
}

// ApprovalParams are the parameters of the approval mutation.
type ApprovalParams struct {
	TransactionID string `json:"transactionId"`
	Value         bool   `json:"value"`
}

// PageRange returns the [start, end) bounds of page within total items and the
// page that follows it, or nil when page is the last one. ok is false when the
// page starts past the end of the result set.
func PageRange(page, total int) (start, end int, next *int, ok bool) {
	start = page * TransactionsPerPage
	if page < 0 || start > total {
		return 0, 0, nil, false
	}
	end = start + TransactionsPerPage
	if end < total {
		n := page + 1
		next = &n
	} else {
		end = total
	}
	return start, end, next, true
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
