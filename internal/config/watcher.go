package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"bwcalc/internal/logging"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads the config file when it changes on disk and hands the new
// config to a callback. Editors often replace the file instead of writing it,
// so the parent directory is watched and events are filtered by name.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(*Config)
	onError  func(error)
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for the config file at path. onError may be nil.
func NewWatcher(path string, onChange func(*Config), onError func(error)) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("config watcher needs an onChange callback")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Watcher{
		watcher:  w,
		path:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		onError:  onError,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the debounce window. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Start begins watching. It does not block; the event loop runs until ctx is
// cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.running = true
	logging.Get(logging.CategoryConfig).Info("watching config", zap.String("path", w.path))

	go w.run(ctx, w.debounce)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryConfig).Warn("error closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context, debounce time.Duration) {
	defer close(w.doneCh)
	log := logging.Get(logging.CategoryConfig)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("config event", zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error", zap.Error(err))
			w.onError(err)

		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				log.Warn("config reload failed", zap.Error(err))
				w.onError(err)
				continue
			}
			logging.Audit(logging.AuditConfigReload, zap.String("path", w.path))
			w.onChange(cfg)
		}
	}
}
