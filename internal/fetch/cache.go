// internal/fetch/cache.go
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// ErrUnexpectedType is returned when a cached value cannot be converted to the
// result type of the operation reading it, i.e. two operations share a name.
var ErrUnexpectedType = errors.New("fetch: cached value has unexpected type")

// Operation binds an endpoint name to the data source call serving it.
type Operation[P, R any] struct {
	Name string
	Do   func(ctx context.Context, params P) (R, error)
}

type entry struct {
	operation string
	value     any
}

// Cache memoizes operation results for the lifetime of the process.
// Entries never expire; they are only dropped by Invalidate or InvalidateOperation.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	generation uint64
	group      singleflight.Group
	logger     *slog.Logger
}

// NewCache creates an empty Cache.
func NewCache(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		logger:  logger,
	}
}

// Invalidate drops every entry. Calls already in flight still return their
// result to their caller, but the result is not stored.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	dropped := len(c.entries)
	c.entries = make(map[string]entry)
	c.generation++
	c.mu.Unlock()

	c.logger.Info("Request cache invalidated", "dropped", dropped)
}

// InvalidateOperation drops every entry stored for one operation name.
// Like Invalidate, it keeps calls already in flight from storing their result.
func (c *Cache) InvalidateOperation(name string) {
	c.mu.Lock()
	c.generation++
	dropped := 0
	for key, e := range c.entries {
		if e.operation == name {
			delete(c.entries, key)
			dropped++
		}
	}
	c.mu.Unlock()

	c.logger.Info("Request cache invalidated for operation", "operation", name, "dropped", dropped)
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// NewClient returns a handle on c with its own loading flag.
func (c *Cache) NewClient() *Client {
	return &Client{cache: c}
}

func (c *Cache) lookup(key string) (any, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e.value, c.generation, ok
}

// store keeps value unless the cache was invalidated since generation was read.
func (c *Cache) store(key, operation string, value any, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return false
	}
	c.entries[key] = entry{operation: operation, value: value}
	return true
}

// Client is one consumer's view of a shared Cache.
type Client struct {
	cache       *Cache
	outstanding atomic.Int64
}

// Loading reports whether any call issued through this client is outstanding.
func (cl *Client) Loading() bool {
	return cl.outstanding.Load() > 0
}

// Cache returns the shared cache behind the client.
func (cl *Client) Cache() *Cache {
	return cl.cache
}

func (cl *Client) begin() func() {
	cl.outstanding.Add(1)
	return func() { cl.outstanding.Add(-1) }
}

// FetchWithCache returns the stored result of op for params, invoking op only
// on a miss. Identical concurrent misses share one invocation, which is not
// canceled by any one caller. Errors of the invocation are returned to every
// waiting caller and never stored.
func FetchWithCache[P, R any](ctx context.Context, cl *Client, op Operation[P, R], params P) (R, error) {
	var zero R
	defer cl.begin()()

	key, err := Key(op.Name, params)
	if err != nil {
		return zero, err
	}

	c := cl.cache
	cached, generation, ok := c.lookup(key)
	if ok {
		c.logger.Debug("Request cache hit", "key", key)
		return asResult[R](cached)
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	// The shared invocation outlives any single caller's cancellation; each
	// caller stops waiting when its own ctx ends.
	flightKey := key + "#" + strconv.FormatUint(generation, 10)
	flight := c.group.DoChan(flightKey, func() (any, error) {
		c.logger.Debug("Request cache miss", "key", key)
		result, err := op.Do(context.WithoutCancel(ctx), params)
		if err != nil {
			return nil, err
		}
		if !c.store(key, op.Name, result, generation) {
			c.logger.Debug("Discarding result of call outlived by invalidation", "key", key)
		}
		return result, nil
	})

	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("%s: %w", op.Name, ctx.Err())
	case res := <-flight:
		if res.Err != nil {
			return zero, fmt.Errorf("%s: %w", op.Name, res.Err)
		}
		if res.Shared {
			c.logger.Debug("Joined in-flight request", "key", key)
		}
		return asResult[R](res.Val)
	}
}

// FetchWithoutCache invokes op directly. It neither reads nor writes the cache
// but still counts towards the client's loading flag.
func FetchWithoutCache[P, R any](ctx context.Context, cl *Client, op Operation[P, R], params P) (R, error) {
	var zero R
	defer cl.begin()()

	if err := ctx.Err(); err != nil {
		return zero, err
	}
	result, err := op.Do(ctx, params)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op.Name, err)
	}
	return result, nil
}

func asResult[R any](value any) (R, error) {
	var zero R
	if value == nil {
		return zero, nil
	}
	result, ok := value.(R)
	if !ok {
		return zero, fmt.Errorf("%w: %T", ErrUnexpectedType, value)
	}
	return result, nil
}
