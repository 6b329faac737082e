// internal/service/pager.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"finreview/internal/domain"
	"finreview/internal/fetch"
	"finreview/internal/repository"
	"finreview/internal/util"
)

// pager accumulates the pages of one paginated endpoint.
type pager[P any] struct {
	client *fetch.Client
	op     fetch.Operation[P, *repository.TransactionPage]
	logger *slog.Logger

	mu    sync.Mutex
	data  *repository.TransactionPage
	state FetchState
}

func newPager[P any](client *fetch.Client, op fetch.Operation[P, *repository.TransactionPage], logger *slog.Logger) *pager[P] {
	return &pager[P]{
		client: client,
		op:     op,
		logger: logger.With("controller", op.Name),
	}
}

// fetchNext requests the page after the accumulated ones and merges it in.
func (p *pager[P]) fetchNext(ctx context.Context, params func(page *int) P) error {
	p.mu.Lock()
	next := 0
	if p.data != nil {
		if p.data.NextPage == nil {
			p.mu.Unlock()
			return fmt.Errorf("%s: no page after the last one: %w", p.op.Name, util.ErrInvalidPage)
		}
		next = *p.data.NextPage
	}
	p.state = StateFetching
	p.mu.Unlock()

	response, err := fetch.FetchWithCache(ctx, p.client, p.op, params(&next))

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = p.settledLocked()
		return err
	}
	p.logger.Debug("Fetched page", "page", next, "items", pageLen(response), "has_more", response.HasMore())

	if response != nil {
		if p.data == nil {
			p.data = &repository.TransactionPage{
				Data:     append([]domain.Transaction{}, response.Data...),
				NextPage: response.NextPage,
			}
		} else {
			merged := make([]domain.Transaction, 0, len(p.data.Data)+len(response.Data))
			merged = append(merged, p.data.Data...)
			merged = append(merged, response.Data...)
			p.data = &repository.TransactionPage{Data: merged, NextPage: response.NextPage}
		}
	}
	p.state = p.settledLocked()
	return nil
}

func (p *pager[P]) settledLocked() FetchState {
	if p.data != nil && p.data.NextPage == nil {
		return StateDone
	}
	return StateIdle
}

// snapshot returns a copy of the accumulated data, or nil when there is none.
func (p *pager[P]) snapshot() *repository.TransactionPage {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return nil
	}
	return &repository.TransactionPage{
		Data:     append([]domain.Transaction{}, p.data.Data...),
		NextPage: p.data.NextPage,
	}
}

func (p *pager[P]) currentState() FetchState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *pager[P]) invalidate() {
	p.mu.Lock()
	p.data = nil
	p.state = StateIdle
	p.mu.Unlock()
	p.logger.Debug("Accumulated data invalidated")
}

// applyApproval patches the approved flag of an accumulated transaction.
func (p *pager[P]) applyApproval(transactionID string, value bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return false
	}
	for i := range p.data.Data {
		if p.data.Data[i].ID == transactionID {
			p.data.Data[i].Approved = value
			return true
		}
	}
	return false
}

func pageLen(page *repository.TransactionPage) int {
	if page == nil {
		return 0
	}
	return len(page.Data)
}
