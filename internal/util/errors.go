// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrInvalidPage         = errors.New("invalid page")
	ErrEmptyEmployeeID     = errors.New("employee id cannot be empty")
	ErrTransactionNotFound = errors.New("invalid transaction to approve")
	ErrUnknownDataSource   = errors.New("unknown data source")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
