// internal/domain/employee.go
package domain

// Employee represents a card holder whose transactions are reviewed.
type Employee struct {
	ID        string `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
}

// EmptyEmployee is the "All" entry of the employee filter.
// Its empty ID selects every transaction.
var EmptyEmployee = Employee{
	ID:        "",
	FirstName: "All",
	LastName:  "",
}

// IsEmpty reports whether e stands for the unfiltered selection.
func (e Employee) IsEmpty() bool {
	return e.ID == ""
}

// FullName returns the label shown by the employee filter.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
