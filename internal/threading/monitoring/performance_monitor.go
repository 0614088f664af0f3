package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Stage names accepted by ProfiledFunction.
const (
	StageRaycast = "raycast"
	StageProject = "project"
	StageUpdate  = "update"
)

// smoothing is the weight of the newest sample in the running averages.
const smoothing = 0.1

// LowFPSThreshold triggers a low_fps alert.
const LowFPSThreshold = 30.0

// PerformanceMonitor tracks frame and per-stage timings. Counters are atomic
// so the HUD can read while the frame loop writes.
type PerformanceMonitor struct {
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame

	raycastTime atomic.Uint64
	projectTime atomic.Uint64
	updateTime  atomic.Uint64

	raysCast       atomic.Uint64
	enemiesUpdated atomic.Uint64

	mutex          sync.RWMutex
	avgFrameTime   float64 // nanoseconds
	avgRaycastTime float64
	startTime      time.Time

	enableDetailed bool
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.recordFrame(time.Since(ft.startTime))
}

func (pm *PerformanceMonitor) recordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	pm.frameCount.Add(1)

	if !pm.detailed() {
		return
	}
	pm.mutex.Lock()
	pm.avgFrameTime = runningAverage(pm.avgFrameTime, float64(d.Nanoseconds()))
	pm.mutex.Unlock()
}

// RaycastTimer helps measure raycasting performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
	rays      int
}

// StartRaycast begins timing a fan of rays
func (pm *PerformanceMonitor) StartRaycast(rays int) *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
		rays:      rays,
	}
}

// EndRaycast completes raycast timing
func (rt *RaycastTimer) EndRaycast() {
	rt.monitor.recordRaycast(time.Since(rt.startTime), rt.rays)
}

func (pm *PerformanceMonitor) recordRaycast(d time.Duration, rays int) {
	pm.raycastTime.Store(uint64(d.Nanoseconds()))
	pm.raysCast.Add(uint64(rays))

	if !pm.detailed() {
		return
	}
	pm.mutex.Lock()
	pm.avgRaycastTime = runningAverage(pm.avgRaycastTime, float64(d.Nanoseconds()))
	pm.mutex.Unlock()
}

// runningAverage seeds with the first sample and then smooths exponentially.
func runningAverage(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + smoothing*(sample-avg)
}

func (pm *PerformanceMonitor) detailed() bool {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	return pm.enableDetailed
}

// RecordEnemiesUpdated adds to the count of enemy AI updates.
func (pm *PerformanceMonitor) RecordEnemiesUpdated(n int) {
	pm.enemiesUpdated.Add(uint64(n))
}

// ProfiledFunction runs fn and stores its duration under the given stage.
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case StageRaycast:
		pm.raycastTime.Store(uint64(duration.Nanoseconds()))
	case StageProject:
		pm.projectTime.Store(uint64(duration.Nanoseconds()))
	case StageUpdate:
		pm.updateTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}

// Metrics is a snapshot for the HUD and the bench command.
type Metrics struct {
	Frames          uint64
	FramesPerSecond float64
	FrameTime       time.Duration
	AvgFrameTime    time.Duration
	RaycastTime     time.Duration
	AvgRaycastTime  time.Duration
	ProjectTime     time.Duration
	UpdateTime      time.Duration
	RaysCast        uint64
	EnemiesUpdated  uint64
	MemoryUsageMB   uint64
	Uptime          time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	pm.mutex.RLock()
	avgFrame := pm.avgFrameTime
	avgRaycast := pm.avgRaycastTime
	uptime := time.Since(pm.startTime)
	pm.mutex.RUnlock()

	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = float64(time.Second) / float64(frameTime)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return Metrics{
		Frames:          pm.frameCount.Load(),
		FramesPerSecond: fps,
		FrameTime:       time.Duration(frameTime),
		AvgFrameTime:    time.Duration(avgFrame),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		AvgRaycastTime:  time.Duration(avgRaycast),
		ProjectTime:     time.Duration(pm.projectTime.Load()),
		UpdateTime:      time.Duration(pm.updateTime.Load()),
		RaysCast:        pm.raysCast.Load(),
		EnemiesUpdated:  pm.enemiesUpdated.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
		Uptime:          uptime,
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		fps := float64(time.Second) / float64(frameTime)
		if fps < LowFPSThreshold {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: LowFPSThreshold,
				Timestamp: currentTime,
			})
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024
	if memoryMB > 500 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: 500,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.projectTime.Store(0)
	pm.updateTime.Store(0)
	pm.raysCast.Store(0)
	pm.enemiesUpdated.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
