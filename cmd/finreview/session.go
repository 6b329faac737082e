// cmd/finreview/session.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"finreview/internal/domain"
	"finreview/internal/util"
	"finreview/internal/view"
)

// reviewer is the part of the view coordinator the session drives.
type reviewer interface {
	SelectEmployee(ctx context.Context, employeeID string) error
	RequestMore(ctx context.Context) error
	SetTransactionApproval(ctx context.Context, transactionID string, value bool) error
	Snapshot() view.Snapshot
}

const help = `commands:
  show                      print the current view
  more                      load the next page
  all                       show transactions of all employees
  select <employee-id>      show transactions of one employee
  approve <tx-id> <bool>    set the approved flag of a transaction
  quit                      leave`

var errQuit = errors.New("quit")

// run reads one command per line from in and prints the resulting view to out.
// Command failures are reported on out and do not end the session.
func run(ctx context.Context, r reviewer, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	render(out, r.Snapshot())
	lines, scanErr := readLines(ctx, in)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			err := execute(ctx, r, strings.Fields(line), out)
			if util.IsError(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
	}
}

func execute(ctx context.Context, r reviewer, args []string, out io.Writer) error {
	if len(args) == 0 {
		return nil
	}

	var err error
	switch args[0] {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(out, help)
		return nil
	case "show":
	case "more":
		err = r.RequestMore(ctx)
	case "all":
		err = r.SelectEmployee(ctx, domain.EmptyEmployee.ID)
	case "select":
		if len(args) != 2 {
			return fmt.Errorf("usage: select <employee-id>")
		}
		err = r.SelectEmployee(ctx, args[1])
	case "approve":
		if len(args) != 3 {
			return fmt.Errorf("usage: approve <tx-id> <bool>")
		}
		value, parseErr := strconv.ParseBool(args[2])
		if parseErr != nil {
			return fmt.Errorf("invalid approval value %q", args[2])
		}
		err = r.SetTransactionApproval(ctx, args[1], value)
	default:
		return fmt.Errorf("unknown command %q (try help)", args[0])
	}
	if err != nil {
		return err
	}
	render(out, r.Snapshot())
	return nil
}

func render(out io.Writer, snap view.Snapshot) {
	filter := domain.EmptyEmployee.FullName()
	for _, e := range snap.Employees {
		if e.ID == snap.EmployeeFilterID && snap.EmployeeFilterID != "" {
			filter = e.FullName()
		}
	}
	if snap.IsLoadingEmployees {
		fmt.Fprintln(out, "Loading employees...")
	} else {
		fmt.Fprintf(out, "Filter: %s (%d employees)\n", filter, len(snap.Employees))
	}

	switch {
	case snap.Transactions == nil:
		fmt.Fprintln(out, "Loading transactions...")
	case len(snap.Transactions) == 0:
		fmt.Fprintln(out, "No transactions.")
	}
	for _, tx := range snap.Transactions {
		mark := " "
		if tx.Approved {
			mark = "x"
		}
		fmt.Fprintf(out, "[%s] %-8s %-24s %-22s %10s  %s\n",
			mark, tx.ID, tx.Merchant, tx.Employee.FullName(), tx.Amount.StringFixed(2), tx.Date)
	}
	if snap.Transactions != nil && snap.HasMoreTransactions {
		fmt.Fprintln(out, "(more available)")
	}
}

// readLines sends each line of in on the returned channel, which is closed at
// EOF or once ctx ends. A scan error is delivered before the close.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()
	return lines, scanErr
}
