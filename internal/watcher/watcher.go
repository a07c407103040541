// Package watcher provides debounced watching of the task data file.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of events an atomic replace produces
// (create temp, write, rename) into one notification.
const debounceDelay = 100 * time.Millisecond

// Watcher watches files for changes and invokes a callback with debouncing.
// Directories are watched rather than the files themselves so that a file
// replaced by rename keeps being observed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	names    map[string]bool
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

// New creates a Watcher for the given files. The callback is invoked
// (debounced) whenever one of them is created, written, removed, or renamed.
func New(files []string, callback func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		names:    make(map[string]bool, len(files)),
		callback: callback,
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		w.names[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run starts the watch loop. It blocks until the context is canceled.
// Errors from the underlying watcher are passed to the optional errFn callback.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.watches(event.Name) {
				continue
			}
			w.debounce()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) watches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return w.names[abs]
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.callback)
}
