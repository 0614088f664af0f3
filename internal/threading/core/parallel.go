package core

import (
	"context"
	"runtime"
)

// ParallelMap calls fn for every item on up to NumCPU goroutines and returns
// the results in input order.
func ParallelMap[T any, R any](items []T, fn func(T) R) []R {
	return ParallelMapWithContext(context.Background(), items, fn)
}

// ParallelMapWithContext is ParallelMap with cancellation checked between
// items. Items skipped after cancellation keep the zero R.
func ParallelMapWithContext[T any, R any](ctx context.Context, items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	pool := NewWorkerPool(min(runtime.NumCPU(), len(items)))
	pool.Start()
	defer pool.Stop()

	results := make([]R, len(items))
	pool.RunRange(ctx, len(items), 0, func(i int) {
		results[i] = fn(items[i])
	})
	return results
}
