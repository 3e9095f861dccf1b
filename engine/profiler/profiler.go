package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, camera change rate and memory statistics.
// Outputs stats to its logger at a configurable interval.
type Profiler struct {
	logger         *log.Logger
	frameCount     int
	changeCount    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	now            func() time.Time
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are logged.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithLogger routes reports to logger instead of the standard logger.
//
// Parameters:
//   - logger: destination for reports
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logger *log.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         log.Default(),
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// RecordChange counts one reported camera change toward the current interval.
func (p *Profiler) RecordChange() {
	p.changeCount++
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed:
// FPS, camera changes per second, heap usage, allocation rate, GC count/pause times and total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	seconds := elapsed.Seconds()
	fps := float64(p.frameCount) / seconds
	changesPerSec := float64(p.changeCount) / seconds

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / seconds

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Printf("[Profiler] FPS: %.2f | Camera changes: %.2f/s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, changesPerSec, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.changeCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
