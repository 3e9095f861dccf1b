package engine

import (
	"bytes"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
)

type fakeHost struct {
	update       func()
	resize       func(width, height int)
	frames       int
	closeCount   int
	processCalls int
}

func (h *fakeHost) SetUpdateCallback(callback func())                  { h.update = callback }
func (h *fakeHost) SetResizeCallback(callback func(width, height int)) { h.resize = callback }
func (h *fakeHost) RequestClose()                                      { h.closeCount++ }

func (h *fakeHost) ProcessMessages() {
	h.processCalls++
	for i := 0; i < h.frames; i++ {
		h.update()
	}
}

func newController(options ...camera.OrbitControllerOption) *camera.OrbitController {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 10), camera.WithLookAt(0, 0, 0))
	return camera.NewOrbitController(cam, nil, options...)
}

func TestStepOrder(t *testing.T) {
	oc := newController(camera.WithAutoRotate(2))
	e := NewEngine(WithController(oc))

	var order []string
	oc.OnChange(func() { order = append(order, "change") })
	e.SetFrameCallback(func(dt float64) {
		if dt < 0 {
			t.Errorf("dt = %v, want >= 0", dt)
		}
		order = append(order, "frame")
	})

	e.Step()
	e.Step()

	want := []string{"change", "frame", "change", "frame"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestAddRemoveController(t *testing.T) {
	a := newController(camera.WithAutoRotate(2))
	b := newController()
	e := NewEngine(WithController(a))
	e.AddController(a)
	e.AddController(b)

	if got := e.Controllers(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("Controllers() = %v", got)
	}

	e.RemoveController(a)
	before := a.Camera().Position()
	e.Step()
	if a.Camera().Position() != before {
		t.Error("removed controller was updated")
	}
	if got := e.Controllers(); len(got) != 1 || got[0] != b {
		t.Errorf("Controllers() = %v", got)
	}
}

func TestRunDrivesStepsAndQuits(t *testing.T) {
	host := &fakeHost{frames: 3}
	e := NewEngine(WithWindow(host))
	if host.resize == nil {
		t.Fatal("resize callback not installed")
	}

	frames := 0
	e.SetFrameCallback(func(float64) { frames++ })
	e.Run()

	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	if host.closeCount != 1 {
		t.Errorf("RequestClose called %d times, want 1", host.closeCount)
	}

	e.Quit()
	e.Quit()
	if host.closeCount != 1 {
		t.Errorf("Quit should be idempotent, RequestClose called %d times", host.closeCount)
	}
	e.Step()
	if frames != 3 {
		t.Error("Step ran after Quit")
	}
}

func TestRunWithoutWindow(t *testing.T) {
	e := NewEngine()
	if e.Window() != nil {
		t.Fatal("Window() should be nil")
	}
	e.Run()
}

func TestResizeSetsAspect(t *testing.T) {
	host := &fakeHost{}
	oc := newController()
	NewEngine(WithWindow(host), WithController(oc))

	host.resize(800, 400)
	p := oc.Camera().Projection().(camera.Perspective)
	if p.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", p.Aspect)
	}

	host.resize(0, 0)
	if p := oc.Camera().Projection().(camera.Perspective); p.Aspect != 2 {
		t.Errorf("zero size changed the aspect to %v", p.Aspect)
	}
}

func TestFrameLimit(t *testing.T) {
	e := NewEngine(WithFrameLimit(50))
	start := time.Now()
	e.Step()
	e.Step()
	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Errorf("two capped frames took %v, want at least 40ms", elapsed)
	}
	e.SetFrameLimit(0)
}

func TestProfilerCountsChanges(t *testing.T) {
	var buf bytes.Buffer
	p := profiler.NewProfiler(profiler.WithInterval(0), profiler.WithLogger(log.New(&buf, "", 0)))
	oc := newController(camera.WithAutoRotate(2))
	e := NewEngine(WithController(oc), WithProfiler(p), WithProfiling(true))

	time.Sleep(time.Millisecond)
	e.Step()
	if !strings.Contains(buf.String(), "[Profiler]") {
		t.Errorf("profiler output = %q", buf.String())
	}

	buf.Reset()
	e.DisableProfiler()
	time.Sleep(time.Millisecond)
	e.Step()
	if buf.Len() != 0 {
		t.Errorf("disabled profiler logged %q", buf.String())
	}
	e.EnableProfiler()
}

func writeSettings(t *testing.T, path, doc string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatchSettingsAppliesAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.yaml")
	writeSettings(t, path, "zoom_speed: 2\n")

	oc := newController()
	e := NewEngine(WithController(oc))
	defer e.Quit()

	if err := e.WatchSettings(path); err != nil {
		t.Fatalf("WatchSettings() error = %v", err)
	}
	if oc.ZoomSpeed != 2 {
		t.Fatalf("ZoomSpeed = %v, want 2", oc.ZoomSpeed)
	}

	writeSettings(t, path, "zoom_speed: 3\nmax_distance: .inf\n")
	deadline := time.Now().Add(5 * time.Second)
	for oc.ZoomSpeed != 3 && time.Now().Before(deadline) {
		e.Step()
		time.Sleep(10 * time.Millisecond)
	}
	if oc.ZoomSpeed != 3 {
		t.Fatalf("ZoomSpeed = %v, want 3 after reload", oc.ZoomSpeed)
	}
	if !math.IsInf(oc.Constraint.MaxDistance, 1) {
		t.Errorf("MaxDistance = %v, want +Inf", oc.Constraint.MaxDistance)
	}

	impl := e.(*engine)
	if !impl.poolStarted {
		t.Fatal("reload should have started the load pool")
	}
	e.Quit()
	if impl.poolStarted {
		t.Error("Quit() should stop the load pool")
	}
	if impl.watcher != nil {
		t.Error("Quit() should close the settings watcher")
	}
}

func TestWatchSettingsRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.yaml")
	writeSettings(t, path, "min_distance: 10\nmax_distance: 1\n")

	e := NewEngine(WithController(newController()))
	defer e.Quit()

	if err := e.WatchSettings(path); err == nil {
		t.Error("WatchSettings() should reject inverted limits")
	}
	if err := e.WatchSettings(filepath.Join(filepath.Dir(path), "missing.yaml")); err == nil {
		t.Error("WatchSettings() should fail for a missing file")
	}
}
