// cmd/finreview/session_test.go
package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finreview/internal/fetch"
	"finreview/internal/repository/memory"
	"finreview/internal/util"
	"finreview/internal/view"
)

func newMountedView(t *testing.T) *view.Coordinator {
	t.Helper()
	store := memory.NewStore(memory.DefaultDataset())
	endpoints := fetch.NewEndpoints(store, store, util.DiscardLogger())
	c := view.NewCoordinator(fetch.NewCache(util.DiscardLogger()), endpoints, util.DiscardLogger())
	require.NoError(t, c.Mount(context.Background()))
	return c
}

func TestRun(t *testing.T) {
	t.Run("InitialView", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(context.Background(), newMountedView(t), strings.NewReader(""), &out))

		assert.Contains(t, out.String(), "Filter: All (4 employees)")
		assert.Contains(t, out.String(), "tx-5")
		assert.NotContains(t, out.String(), "tx-6")
		assert.Contains(t, out.String(), "(more available)")
	})

	t.Run("MoreThenSelect", func(t *testing.T) {
		c := newMountedView(t)
		var out bytes.Buffer
		in := strings.NewReader("more\nselect emp-2\n")
		require.NoError(t, run(context.Background(), c, in, &out))

		snap := c.Snapshot()
		assert.Equal(t, "emp-2", snap.EmployeeFilterID)
		assert.Contains(t, out.String(), "tx-10")
		assert.Contains(t, out.String(), "Filter: Mary Johnson")
	})

	t.Run("Approve", func(t *testing.T) {
		c := newMountedView(t)
		var out bytes.Buffer
		require.NoError(t, run(context.Background(), c, strings.NewReader("approve tx-2 true\n"), &out))

		assert.True(t, c.Snapshot().Transactions[1].Approved)
	})

	t.Run("ErrorsDoNotEndTheSession", func(t *testing.T) {
		c := newMountedView(t)
		var out bytes.Buffer
		in := strings.NewReader("approve nonexistent true\nbogus\nselect\nmore\n")
		require.NoError(t, run(context.Background(), c, in, &out))

		assert.Contains(t, out.String(), "invalid transaction to approve")
		assert.Contains(t, out.String(), `unknown command "bogus"`)
		assert.Contains(t, out.String(), "usage: select")
		assert.Len(t, c.Snapshot().Transactions, 10)
	})

	t.Run("Quit", func(t *testing.T) {
		c := newMountedView(t)
		var out bytes.Buffer
		require.NoError(t, run(context.Background(), c, strings.NewReader("quit\nmore\n"), &out))

		assert.Len(t, c.Snapshot().Transactions, 5)
	})
}

// endlessInput never reaches EOF.
type endlessInput struct{}

func (endlessInput) Read(p []byte) (int, error) {
	return copy(p, "more\n"), nil
}

func TestReadLines(t *testing.T) {
	t.Run("ClosesAtEOF", func(t *testing.T) {
		lines, scanErr := readLines(context.Background(), strings.NewReader("show\nmore\n"))

		var got []string
		for line := range lines {
			got = append(got, line)
		}
		assert.Equal(t, []string{"show", "more"}, got)
		assert.NoError(t, <-scanErr)
	})

	t.Run("StopsWhenCanceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		lines, _ := readLines(ctx, endlessInput{})

		assert.Equal(t, "more", <-lines)
		cancel()

		closed := make(chan struct{})
		go func() {
			for range lines {
			}
			close(closed)
		}()
		select {
		case <-closed:
		case <-time.After(5 * time.Second):
			t.Fatal("reader kept running after cancel")
		}
	})
}
