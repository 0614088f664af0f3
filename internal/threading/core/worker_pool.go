package core

import (
	"context"
	"runtime"
	"sync"
)

// span is one chunk of a batch: fn is called for every index in [lo, hi).
type span struct {
	ctx    context.Context
	lo, hi int
	fn     func(int)
	done   *sync.WaitGroup
}

// WorkerPool runs index ranges on a fixed set of goroutines. Several batches
// may run at once; each RunRange call only waits for its own chunks.
type WorkerPool struct {
	size    int
	spans   chan span
	quit    chan struct{}
	workers sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewWorkerPool creates a pool of size goroutines; zero or less uses
// runtime.NumCPU. Call Start before RunRange.
func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &WorkerPool{
		size:  size,
		spans: make(chan span, size*2),
		quit:  make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	wp.workers.Add(wp.size)
	for i := 0; i < wp.size; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.workers.Done()
	for {
		select {
		case s := <-wp.spans:
			s.run()
		case <-wp.quit:
			return
		}
	}
}

func (s span) run() {
	defer s.done.Done()
	for i := s.lo; i < s.hi; i++ {
		if s.ctx.Err() != nil {
			return
		}
		s.fn(i)
	}
}

// RunRange calls fn for every index in [0, n) in chunks of at most chunk
// indices and returns when all of them are done. fn must only touch state
// owned by its index. After Stop, the range runs on the caller's goroutine.
// Indices not yet started when ctx is cancelled are skipped.
func (wp *WorkerPool) RunRange(ctx context.Context, n, chunk int, fn func(int)) {
	if n <= 0 {
		return
	}
	if chunk <= 0 {
		chunk = (n + wp.size - 1) / wp.size
	}

	wp.mu.RLock()
	defer wp.mu.RUnlock()

	var done sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		s := span{ctx: ctx, lo: lo, hi: min(lo+chunk, n), fn: fn, done: &done}
		done.Add(1)
		if wp.stopped {
			s.run()
			continue
		}
		wp.spans <- s
	}
	done.Wait()
}

// Stop shuts the workers down once every running batch has finished. Safe to
// call more than once.
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.stopped {
		return
	}
	wp.stopped = true
	close(wp.quit)
	wp.workers.Wait()
}

// Size returns the number of workers in the pool.
func (wp *WorkerPool) Size() int {
	return wp.size
}
