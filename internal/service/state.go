// internal/service/state.go
package service

// FetchState is the lifecycle of a paginated controller.
//
//	Idle --fetch--> Fetching --page with successor--> Idle
//	                         --last page-----------> Done
//	any  --InvalidateData--> Idle (no data)
//
// Nothing prevents a second fetch from starting while one is Fetching; the
// later response wins.
type FetchState int

const (
	StateIdle FetchState = iota
	StateFetching
	StateDone
)

func (s FetchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
