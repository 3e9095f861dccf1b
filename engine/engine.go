package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/settings"
)

// Host is the window the engine runs inside. window.Window satisfies it.
type Host interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	SetUpdateCallback(callback func())
	// SetResizeCallback sets the function called when the framebuffer is resized.
	SetResizeCallback(callback func(width, height int))
	// ProcessMessages runs the message loop until the window closes.
	ProcessMessages()
	// RequestClose asks the message loop to stop.
	RequestClose()
}

// loadedSettings is a settings file parsed off the frame thread.
type loadedSettings struct {
	path     string
	settings *settings.OrbitSettings
	err      error
}

type controllerEntry struct {
	controller *camera.OrbitController
	onChange   camera.ListenerHandle
}

// engine implements the Engine interface.
// Everything runs on the thread that drives Step, normally the window's message loop.
type engine struct {
	host Host

	controllers []controllerEntry

	watcher *settings.Watcher
	// loadPool reads and parses changed settings files so disk I/O stays off the frame thread.
	loadPool    worker.DynamicWorkerPool
	poolStarted bool
	loaded      chan loadedSettings
	loadID      int

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float64)
	frameLimit    time.Duration // minimum frame duration; 0 = uncapped

	lastFrame time.Time
	quit      bool
	quitOnce  sync.Once
}

// Engine owns the per-frame loop around a set of orbit controllers.
// Each frame it applies pending settings reloads, updates every controller, runs the frame callback,
// ticks the profiler and honors the frame limit, in that order.
type Engine interface {
	// Window returns the host window, or nil for an engine driven by Step.
	//
	// Returns:
	//   - Host: the host window
	Window() Host

	// AddController registers a controller to be updated every frame.
	// Adding the same controller twice has no effect.
	//
	// Parameters:
	//   - oc: the controller to update
	AddController(oc *camera.OrbitController)

	// RemoveController stops updating a controller. The controller itself is not disposed.
	//
	// Parameters:
	//   - oc: the controller to remove
	RemoveController(oc *camera.OrbitController)

	// Controllers returns the registered controllers in registration order.
	//
	// Returns:
	//   - []*camera.OrbitController: a copy of the controller list
	Controllers() []*camera.OrbitController

	// WatchSettings applies the settings file at path to every controller now, and again
	// on the frame after each change to the file.
	//
	// Parameters:
	//   - path: the YAML settings file
	//
	// Returns:
	//   - error: error if the file cannot be loaded, is rejected, or cannot be watched
	WatchSettings(path string) error

	// SetFrameCallback registers the function called each frame after the controllers update.
	//
	// Parameters:
	//   - callback: function receiving the frame delta time in seconds
	SetFrameCallback(callback func(deltaTime float64))

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Resize updates the aspect ratio of every controlled camera.
	//
	// Parameters:
	//   - width, height: new viewport size in pixels
	Resize(width, height int)

	// Step runs a single frame. Hosts with their own loop (ebiten) call it from their update.
	Step()

	// Run installs Step as the window's update callback and blocks until the window closes.
	Run()

	// Quit stops the engine, closes the settings watcher, stops the settings load worker
	// and asks the window to close.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, controllers, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		loaded:           make(chan loadedSettings, 16),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.host != nil {
		e.host.SetResizeCallback(e.Resize)
	}

	return e
}

func (e *engine) Window() Host {
	return e.host
}

func (e *engine) AddController(oc *camera.OrbitController) {
	for _, entry := range e.controllers {
		if entry.controller == oc {
			return
		}
	}
	e.controllers = append(e.controllers, controllerEntry{
		controller: oc,
		onChange:   oc.OnChange(e.recordChange),
	})
}

func (e *engine) recordChange() {
	if e.profiler != nil {
		e.profiler.RecordChange()
	}
}

func (e *engine) RemoveController(oc *camera.OrbitController) {
	for i, entry := range e.controllers {
		if entry.controller == oc {
			entry.onChange.Remove()
			e.controllers = append(e.controllers[:i:i], e.controllers[i+1:]...)
			return
		}
	}
}

func (e *engine) Controllers() []*camera.OrbitController {
	out := make([]*camera.OrbitController, len(e.controllers))
	for i, entry := range e.controllers {
		out[i] = entry.controller
	}
	return out
}

func (e *engine) WatchSettings(path string) error {
	if err := e.applySettings(path); err != nil {
		return err
	}
	w, err := settings.NewWatcher(path)
	if err != nil {
		return err
	}
	if e.watcher != nil {
		_ = e.watcher.Close()
	}
	e.watcher = w
	return nil
}

// applySettings loads path and applies it to every controller.
func (e *engine) applySettings(path string) error {
	s, err := settings.Load(path)
	if err != nil {
		return err
	}
	return e.applyLoaded(path, s)
}

// applyLoaded applies parsed settings to every controller. A rejected document leaves
// controllers that were not yet reached untouched.
func (e *engine) applyLoaded(path string, s *settings.OrbitSettings) error {
	for _, entry := range e.controllers {
		if err := s.Apply(entry.controller); err != nil {
			return fmt.Errorf("settings: apply %s: %w", path, err)
		}
	}
	return nil
}

// drainSettings queues a background load for the latest settings file change and applies
// every load that has finished since the last frame. Errors are logged and the previous
// settings stay in effect.
func (e *engine) drainSettings() {
	if e.watcher != nil {
		paths, errs := e.watcher.Drain()
		for _, err := range errs {
			log.Printf("[Engine] settings watcher error: %v", err)
		}
		if len(paths) > 0 {
			e.queueLoad(paths[len(paths)-1])
		}
	}

	for {
		select {
		case l := <-e.loaded:
			if l.err == nil {
				l.err = e.applyLoaded(l.path, l.settings)
			}
			if l.err != nil {
				log.Printf("[Engine] WARNING: keeping previous settings: %v", l.err)
				continue
			}
			log.Printf("[Engine] reloaded settings from %s", l.path)
		default:
			return
		}
	}
}

// queueLoad reads path on the load pool. A single worker keeps loads in submission order.
func (e *engine) queueLoad(path string) {
	if !e.poolStarted {
		e.loadPool = worker.NewDynamicWorkerPool(1, 16, time.Second)
		e.poolStarted = true
	}
	e.loadID++
	loaded := e.loaded
	e.loadPool.SubmitTask(worker.Task{
		ID: e.loadID,
		Do: func() (any, error) {
			s, err := settings.Load(path)
			select {
			case loaded <- loadedSettings{path: path, settings: s, err: err}:
			default:
				log.Printf("[Engine] WARNING: dropped settings reload of %s, too many pending", path)
			}
			return nil, nil
		},
	})
}

func (e *engine) SetFrameCallback(callback func(deltaTime float64)) {
	e.frameCallback = callback
}

func (e *engine) SetFrameLimit(fps float64) {
	if fps <= 0 {
		e.frameLimit = 0
		return
	}
	e.frameLimit = time.Duration(float64(time.Second) / fps)
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float64(width) / float64(height)
	for _, entry := range e.controllers {
		entry.controller.Camera().SetAspect(aspect)
	}
}

func (e *engine) Step() {
	if e.quit {
		return
	}

	start := time.Now()
	var dt float64
	if !e.lastFrame.IsZero() {
		dt = start.Sub(e.lastFrame).Seconds()
	}
	e.lastFrame = start

	e.drainSettings()

	for _, entry := range e.controllers {
		entry.controller.Update()
	}

	if e.frameCallback != nil {
		e.frameCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.frameLimit > 0 {
		if remaining := e.frameLimit - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) Run() {
	if e.host == nil {
		log.Printf("[Engine] WARNING: Run called without a window; drive the engine with Step instead")
		return
	}
	e.host.SetUpdateCallback(e.Step)
	e.host.ProcessMessages()
	e.Quit()
}

// Quit stops the engine. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.quit = true
		if e.watcher != nil {
			if err := e.watcher.Close(); err != nil {
				log.Printf("[Engine] settings watcher close: %v", err)
			}
			e.watcher = nil
		}
		if e.poolStarted {
			e.loadPool.Stop()
			e.poolStarted = false
		}
		if e.host != nil {
			e.host.RequestClose()
		}
	})
}
