package lint

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/proplint/pkg/parser"
)

// DefaultDebounce groups bursts of writes to one file.
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions configure a Watcher.
type WatchOptions struct {
	Debounce time.Duration
	Exclude  []string
}

// Watcher re-lints files as they change on disk and hands each result to
// a callback.
//
// Usage:
//
//	w, err := NewWatcher(linter, WatchOptions{}, onResult, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	if err := w.Start(root); err != nil {
//	    return err
//	}
type Watcher struct {
	watcher  *fsnotify.Watcher
	linter   *Linter
	options  WatchOptions
	onResult func(*FileResult, error)
	logger   *slog.Logger
	root     string

	timers  map[string]*time.Timer
	timerMu sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher; call Start to begin watching.
func NewWatcher(linter *Linter, options WatchOptions, onResult func(*FileResult, error), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	if options.Exclude == nil {
		options.Exclude = DefaultExclude
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		watcher:  fsw,
		linter:   linter,
		options:  options,
		onResult: onResult,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
		stopChan: make(chan struct{}),
	}, nil
}

// Start watches root and every non-excluded directory below it.
func (w *Watcher) Start(root string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	w.root = abs

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != abs && w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set up watches: %w", err)
	}

	w.logger.Info("watching for changes", "root", abs)
	go w.eventLoop()
	return nil
}

// Stop ends watching. It is idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.timerMu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.timerMu.Unlock()

	return w.watcher.Close()
}

// Pending returns the number of files waiting for their debounce timer.
func (w *Watcher) Pending() int {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	return len(w.timers)
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.excluded(path) || parser.DetectLanguage(path) == parser.LanguageUnknown {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		w.schedule(path)
	}
}

func (w *Watcher) schedule(path string) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.options.Debounce, func() {
		w.timerMu.Lock()
		delete(w.timers, path)
		w.timerMu.Unlock()

		res, err := w.linter.LintFile(path)
		if w.onResult != nil {
			w.onResult(res, err)
		}
	})
}

func (w *Watcher) excluded(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return matchAny(w.options.Exclude, rel) || matchAny(w.options.Exclude, rel+"/")
}
