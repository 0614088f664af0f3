package core

import (
	"context"
	"testing"
)

func TestParallelMapKeepsOrder(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	got := ParallelMap(items, func(n int) int { return n * n })
	if len(got) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(got))
	}
	for i, v := range got {
		if v != i*i {
			t.Errorf("result %d: expected %d, got %d", i, i*i, v)
		}
	}
}

func TestParallelMapEmpty(t *testing.T) {
	if got := ParallelMap([]string(nil), func(s string) int { return len(s) }); got != nil {
		t.Errorf("expected nil for no items, got %v", got)
	}
}

func TestParallelMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := ParallelMapWithContext(ctx, []int{1, 2, 3}, func(n int) bool { return true })
	for i, called := range calls {
		if called {
			t.Errorf("item %d ran after cancellation", i)
		}
	}
}
