// Package watch regenerates Crystal output whenever a TypeScript source file
// changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/tscr/errors"
	"github.com/teranos/tscr/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc is called with the changed source path after the debounce
// period. Errors are logged and watching continues.
type RebuildFunc func(path string) error

// SourceWatcher watches one source file and calls a RebuildFunc on change.
type SourceWatcher struct {
	sourcePath     string
	watcher        *fsnotify.Watcher
	rebuild        RebuildFunc
	logger         *zap.SugaredLogger
	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	ownWrites      map[string]bool

	// rebuildMu keeps rebuilds serial when one outlasts the debounce period.
	rebuildMu sync.Mutex
}

// Option configures a SourceWatcher.
type Option func(*SourceWatcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *SourceWatcher) {
		w.debouncePeriod = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(w *SourceWatcher) {
		w.logger = l
	}
}

// New creates a watcher for sourcePath. The parent directory is watched so
// editors that save by rename are still seen.
func New(sourcePath string, rebuild RebuildFunc, opts ...Option) (*SourceWatcher, error) {
	if rebuild == nil {
		return nil, errors.New("watch: rebuild callback is required")
	}
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", sourcePath)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	w := &SourceWatcher{
		sourcePath:     abs,
		watcher:        fw,
		rebuild:        rebuild,
		logger:         logger.ComponentLogger("watch"),
		debouncePeriod: DefaultDebounce,
		ownWrites:      make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// MarkOwnWrite suppresses the next change event for path. Used when the
// output file lives next to the source.
func (w *SourceWatcher) MarkOwnWrite(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ownWrites[abs] = true
}

func (w *SourceWatcher) checkOwnWrite(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ownWrites[path] {
		delete(w.ownWrites, path)
		return true
	}
	return false
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (w *SourceWatcher) Run(ctx context.Context) error {
	defer w.stopTimer()

	w.logger.Infow("watching source", logger.FieldFile, w.sourcePath)
	for {
		select {
		case <-ctx.Done():
			return w.watcher.Close()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

func (w *SourceWatcher) handle(event fsnotify.Event) {
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if w.checkOwnWrite(path) {
		w.logger.Debugw("ignoring own write", logger.FieldFile, path)
		return
	}
	if path != w.sourcePath {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.logger.Debugw("source changed", logger.FieldFile, path, "op", event.Op.String())
	w.scheduleRebuild()
}

// scheduleRebuild restarts the debounce timer.
func (w *SourceWatcher) scheduleRebuild() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.runRebuild)
}

func (w *SourceWatcher) runRebuild() {
	w.rebuildMu.Lock()
	defer w.rebuildMu.Unlock()

	start := time.Now()
	if err := w.rebuild(w.sourcePath); err != nil {
		w.logger.Errorw("rebuild failed", logger.FieldFile, w.sourcePath, logger.FieldError, err)
		return
	}
	w.logger.Infow("rebuilt", logger.FieldFile, w.sourcePath,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
}

func (w *SourceWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}
