package rendering

import (
	"context"

	"magearena/internal/mathutil"
	"magearena/internal/threading/core"
)

// inlineRayLimit is the fan size below which rays are cast on the calling
// goroutine.
const inlineRayLimit = 8

// ParallelRenderer spreads per-ray work of one frame over a worker pool.
// RenderRaycast returns only after every ray is done, so callers see a
// complete fan before projecting it.
type ParallelRenderer struct {
	workerPool *core.WorkerPool
}

// NewParallelRenderer starts a pool of the given size (0 = one per CPU).
func NewParallelRenderer(workers int) *ParallelRenderer {
	pool := core.NewWorkerPool(workers)
	pool.Start()
	return &ParallelRenderer{workerPool: pool}
}

// RenderRaycast calls castFunc once for every index in [0, numRays).
// castFunc must only write state owned by its own index.
func (pr *ParallelRenderer) RenderRaycast(numRays int, castFunc func(rayIndex int)) {
	if numRays <= inlineRayLimit {
		for rayIndex := 0; rayIndex < numRays; rayIndex++ {
			castFunc(rayIndex)
		}
		return
	}

	batchSize := mathutil.IntClamp(numRays/pr.workerPool.Size(), 4, 32)
	pr.workerPool.RunRange(context.Background(), numRays, batchSize, castFunc)
}

// Workers returns the pool size
func (pr *ParallelRenderer) Workers() int {
	return pr.workerPool.Size()
}

// Stop shuts down the parallel renderer
func (pr *ParallelRenderer) Stop() {
	pr.workerPool.Stop()
}
