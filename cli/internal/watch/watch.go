// Package watch re-runs a callback when a file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/satishbabariya/sqlcomposer/internal/debug"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a file for changes
type Watcher struct {
	file     string
	callback func() error
	watcher  *fsnotify.Watcher
	debounce time.Duration

	// OnError receives callback and watcher errors. Nil drops them.
	OnError func(error)
}

// NewWatcher creates a new file watcher
func NewWatcher(file string, callback func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absPath, err := filepath.Abs(file)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	// Watch the directory so renames by editors are seen.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return &Watcher{
		file:     absPath,
		callback: callback,
		watcher:  watcher,
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce changes the quiet period before the callback runs.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run calls the callback once, then again after every change, until ctx is
// done. It closes the watcher before returning. An error from the first
// callback is returned; later ones go to OnError.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.callback(); err != nil {
		return fmt.Errorf("initial callback failed: %w", err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			debug.Debug("file changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.callback(); err != nil {
				w.report(err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.report(fmt.Errorf("watch error: %w", err))

		case <-ctx.Done():
			timer.Stop()
			return nil
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	path, err := filepath.Abs(event.Name)
	return err == nil && path == w.file
}

func (w *Watcher) report(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}
