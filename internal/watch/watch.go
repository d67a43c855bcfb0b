// Package watch reports debounced changes of workspace files.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch of changes is delivered.
const DefaultDebounce = 150 * time.Millisecond

// Filter decides which files are reported. Directories are always watched.
type Filter interface {
	Match(path string) bool
}

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	Filter   Filter
	// SkipDir prunes directories from the recursive watch.
	SkipDir func(path string) bool
	Logger  *slog.Logger
}

// Watcher delivers batches of changed file paths under a root.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	filter   Filter
	skipDir  func(string) bool
	log      *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

// New starts watching root and every directory below it.
func New(root string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: opts.Debounce,
		filter:   opts.Filter,
		skipDir:  opts.SkipDir,
		log:      opts.Logger,
		pending:  make(map[string]struct{}),
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir != nil && w.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Warn("cannot watch directory", "path", path, "err", err)
		}
		return nil
	})
}

// Run delivers batches to fn until ctx is done. Batches are sorted and hold
// each path once. Run closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, fn func(paths []string)) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(ev) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)
		case <-timer.C:
			if batch := w.drain(); len(batch) > 0 {
				w.log.Debug("files changed", "count", len(batch))
				fn(batch)
			}
		}
	}
}

// handle records ev and reports whether it is pending delivery.
func (w *Watcher) handle(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			// new directories join the watch; their files are reported as they appear
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn("cannot watch directory", "path", ev.Name, "err", err)
			}
			return false
		}
	}
	if w.filter != nil && !w.filter.Match(ev.Name) {
		return false
	}
	w.mu.Lock()
	w.pending[ev.Name] = struct{}{}
	w.mu.Unlock()
	return true
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	clear(w.pending)
	slices.Sort(out)
	return out
}
