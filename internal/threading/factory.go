package threading

import (
	"magearena/internal/raycast"
	"magearena/internal/threading/monitoring"
	"magearena/internal/threading/rendering"
)

// ThreadingComponents holds the frame loop's concurrency helpers.
type ThreadingComponents struct {
	// ParallelRenderer is nil when rays are cast serially.
	ParallelRenderer   *rendering.ParallelRenderer
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates the components for the configured worker
// count. workers <= 1 casts rays on the frame goroutine.
func NewThreadingComponents(workers int) *ThreadingComponents {
	tc := &ThreadingComponents{
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}
	if workers > 1 {
		tc.ParallelRenderer = rendering.NewParallelRenderer(workers)
	}
	return tc
}

// Fan returns the parallel renderer, or a nil FanRunner for serial casting.
func (tc *ThreadingComponents) Fan() raycast.FanRunner {
	if tc.ParallelRenderer == nil {
		return nil
	}
	return tc.ParallelRenderer
}

// Shutdown gracefully shuts down all threading components
func (tc *ThreadingComponents) Shutdown() {
	if tc.ParallelRenderer != nil {
		tc.ParallelRenderer.Stop()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.Metrics {
	return tc.PerformanceMonitor.GetCurrentMetrics()
}
