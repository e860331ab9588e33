// Package watcher reloads configuration on file change with fsnotify and
// debouncing. It is the explicit invalidation hook for wordlists and search
// settings.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// ConfigWatcher watches a single config file and invokes a callback after
// writes settle. Editors replace files rather than writing in place, so the
// parent directory is watched and events are filtered to the file name.
type ConfigWatcher struct {
	path     string
	onReload func(path string)
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	done    chan struct{}
	started bool
}

// NewConfigWatcher creates a watcher for path. onReload is called with the
// path after each debounced change.
func NewConfigWatcher(path string, onReload func(path string), logger *zap.Logger) *ConfigWatcher {
	return &ConfigWatcher{
		path:     filepath.Clean(path),
		onReload: onReload,
		debounce: defaultDebounce,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start starts the watcher. It runs until ctx is cancelled or Stop is called.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		w.mu.Unlock()
		return err
	}
	w.watcher = watcher
	w.started = true
	w.mu.Unlock()

	w.logger.Debug("config watcher starting", zap.String("path", w.path))
	go w.run(ctx)
	return nil
}

func (w *ConfigWatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("config watcher error", zap.Error(err))
			}
		}
	}
}

func (w *ConfigWatcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	w.logger.Debug("config watcher event", zap.String("op", ev.Op.String()), zap.String("path", ev.Name))

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if w.onReload != nil {
			w.onReload(w.path)
		}
	})
}

// Stop stops the watcher. Safe to call more than once.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.started = false
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	_ = w.watcher.Close()
}
