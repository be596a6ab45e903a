// Package watch reports changes to a single file. Stores replace their files
// by atomic rename, so the watcher observes the parent directory and filters
// events by name.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls back after the watched file is written.
type Watcher struct {
	path     string
	fw       *fsnotify.Watcher
	log      *zap.Logger
	debounce time.Duration
}

// New starts watching path. The parent directory is created if missing.
// The watch is in place when New returns; call Run to receive changes.
func New(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{path: abs, fw: fw, log: log, debounce: DefaultDebounce}, nil
}

// SetDebounce changes the quiet period before onChange fires.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is cancelled, calling onChange once per burst of
// writes to the file. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.log.Debug("watching file", zap.String("path", w.path))
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watch stopped", zap.String("path", w.path))
			return nil

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.matches(ev) {
				continue
			}
			w.log.Debug("file event", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			onChange()
		}
	}
}

func (w *Watcher) matches(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Rename)
}
