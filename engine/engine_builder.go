package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, e.g. to change its interval or logger.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window the engine runs inside.
//
// Parameters:
//   - w: a spawned window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Host) EngineBuilderOption {
	return func(e *engine) {
		e.host = w
	}
}

// WithController registers a controller during engine construction.
//
// Parameters:
//   - oc: the controller to update every frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(oc *camera.OrbitController) EngineBuilderOption {
	return func(e *engine) {
		e.AddController(oc)
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}
