// Package watcher reloads a configuration file when it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are still observed.
// Bursts of events are coalesced with a debounce timer before the file
// is reloaded and the handler is called.
package watcher

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/undostack/internal/config"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// DefaultDebounce is the quiet period before a reload.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the reloaded configuration.
// On failure cfg is the default configuration and err describes the problem.
type Handler func(cfg config.Config, err error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher watches a single configuration file.
type Watcher struct {
	mu sync.Mutex

	path     string
	name     string
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger

	fsw   *fsnotify.Watcher
	timer *time.Timer

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
	reloads  sync.WaitGroup
}

// New starts watching path and calls handler after every change.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watcher: nil handler")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		name:     filepath.Base(absPath),
		handler:  handler,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}
	w.fsw = fsw

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Pending reloads are dropped and a reload already
// running finishes before Close returns, so the handler is never called
// afterwards. The handler must not call Close.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.closedWg.Wait()
	w.reloads.Wait()
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("config file changed", "path", ev.Name, "op", ev.Op.String())
			w.schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.reloads.Add(1)
	w.mu.Unlock()
	defer w.reloads.Done()

	cfg, err := config.Load(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.path, "error", err)
	} else {
		w.logger.Info("config reloaded", "path", w.path, "limit", cfg.Undo.Limit)
	}
	w.handler(cfg, err)
}
