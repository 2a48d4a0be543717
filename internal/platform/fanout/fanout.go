// Package fanout runs a function over a slice with a bounded number of
// goroutines and returns the outcomes in input order.
package fanout

import (
	"context"
	"sync"
)

// Result holds the outcome for one item: Value on success, Err otherwise.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn for every item with at most maxWorkers calls in flight.
//
// An item still waiting for a worker slot when ctx is done gets ctx.Err()
// and fn is not called for it. Calls already running are left to observe
// ctx themselves. Run returns once every item has a result; an empty input
// yields an empty, non-nil slice. maxWorkers below 1 is treated as 1.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	sem := make(chan struct{}, max(maxWorkers, 1))
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Go(func() {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return
			}
			defer func() { <-sem }()

			v, err := fn(ctx, item)
			results[i] = Result[R]{Value: v, Err: err}
		})
	}

	wg.Wait()
	return results
}
