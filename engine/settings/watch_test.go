package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case p := <-w.Events:
		return p
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a settings change")
	}
	return ""
}

func TestWatcherReportsTargetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orbit.yaml")
	if err := os.WriteFile(path, []byte("zoom_speed: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("zoom_speed: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := waitForEvent(t, w); got != w.Path() {
		t.Errorf("event path = %q, want %q", got, w.Path())
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orbit.yaml")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("zoom_speed: 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	waitForEvent(t, w)

	time.Sleep(3 * debounce)
	paths, errs := w.Drain()
	if len(paths) != 0 || len(errs) != 0 {
		t.Errorf("Drain() = %v, %v, want one event for the burst", paths, errs)
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "orbit.yaml"))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed")
	}
	paths, errs := w.Drain()
	if len(paths) != 0 || len(errs) != 0 {
		t.Errorf("Drain() after Close = %v, %v", paths, errs)
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "orbit.yaml")); err == nil {
		t.Error("NewWatcher() should fail for a missing directory")
	}
}
