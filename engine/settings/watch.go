package settings

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changes to a single settings file. Editors often replace files by
// rename, so it watches the parent directory and filters by name.
// Events and Errors are closed once the watcher has shut down.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path.
//
// Parameters:
//   - path: the settings file to watch
//
// Returns:
//   - *Watcher: the running watcher
//   - error: error if the directory cannot be watched
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("settings: watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("settings: watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("settings: watch %s: %w", path, err)
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. It is safe to call more than once.
//
// Returns:
//   - error: error from the underlying fsnotify watcher on the first call
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Drain returns every change and error delivered since the last call without blocking.
//
// Returns:
//   - []string: changed paths, one per burst of writes
//   - []error: watcher errors
func (w *Watcher) Drain() ([]string, []error) {
	var paths []string
	var errs []error
	for {
		select {
		case p, ok := <-w.Events:
			if !ok {
				return paths, errs
			}
			paths = append(paths, p)
		case err, ok := <-w.Errors:
			if !ok {
				return paths, errs
			}
			errs = append(errs, err)
		default:
			return paths, errs
		}
	}
}

// run coalesces bursts of writes into one event delivered once the file has been quiet
// for the debounce interval, so a save split across several writes is read whole.
func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Events)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			select {
			case w.Events <- w.path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}
