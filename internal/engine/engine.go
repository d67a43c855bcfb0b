// Package engine is the query surface of the semantic engine: it owns the
// analysis cache and the inherit resolver and answers questions about open
// documents and the files they inherit.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"lpcls/internal/analysis"
	"lpcls/internal/cache"
	"lpcls/internal/inherit"
	"lpcls/internal/symbols"
)

// ErrNotAnalyzed is returned for documents that have no analysis yet.
var ErrNotAnalyzed = errors.New("document not analyzed")

// Options configures an Engine. The zero value analyzes relative to the
// working directory with OS file access.
type Options struct {
	Root       string
	Extension  string
	Macros     inherit.MacroLookup
	FS         inherit.FileSystem
	Content    inherit.ContentProvider
	CacheSize  int
	Analysis   analysis.Options
	Disk       *inherit.DiskCache
	Logger     *slog.Logger
	Registerer prometheus.Registerer
}

// Engine answers semantic queries. Documents are identified by file path.
// Safe for concurrent use.
type Engine struct {
	log      *slog.Logger
	cache    *cache.Cache
	inherits *inherit.Resolver
	fallback inherit.ContentProvider

	mu      sync.RWMutex
	buffers map[string][]byte
}

// New creates an engine.
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Content == nil {
		opts.Content = inherit.OS{}
	}
	e := &Engine{
		log:      opts.Logger,
		fallback: opts.Content,
		buffers:  make(map[string][]byte),
	}
	e.cache = cache.New(cache.Options{
		Name:       cache.DefaultName,
		Size:       opts.CacheSize,
		Analysis:   opts.Analysis,
		Registerer: opts.Registerer,
		Logger:     opts.Logger,
	})
	// inherited files get their own cache so loading them never evicts an open
	// document
	inherited := cache.New(cache.Options{
		Name:       "inherited",
		Size:       opts.CacheSize,
		Analysis:   opts.Analysis,
		Registerer: opts.Registerer,
		Logger:     opts.Logger,
	})
	resolver, err := inherit.NewResolver(inherit.Options{
		Root:       opts.Root,
		Extension:  opts.Extension,
		Macros:     opts.Macros,
		FS:         opts.FS,
		Content:    e,
		Cache:      inherited,
		Disk:       opts.Disk,
		Logger:     opts.Logger,
		Registerer: opts.Registerer,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.inherits = resolver
	return e, nil
}

// Content serves unsaved buffers of analyzed documents before falling back to
// the configured provider, so inherited files see editor state.
func (e *Engine) Content(path string) ([]byte, error) {
	e.mu.RLock()
	buf, ok := e.buffers[path]
	e.mu.RUnlock()
	if ok {
		return buf, nil
	}
	return e.fallback.Content(path)
}

// Root returns the absolute workspace root.
func (e *Engine) Root() string { return e.inherits.Root() }

// GetScopeTree analyzes doc at version, reusing the cached result when the
// version is unchanged. A new version also refreshes doc for the files that
// inherit it.
func (e *Engine) GetScopeTree(doc string, version int32, text []byte) (*analysis.Result, error) {
	path := e.inherits.Canonical(doc)
	if _, stored, ok := e.cache.Peek(path); ok && stored == version {
		return e.cache.Get(path, version, text)
	}
	e.mu.Lock()
	e.buffers[path] = text
	e.mu.Unlock()
	if e.inherits.Loaded(path) {
		e.inherits.Invalidate(path)
	}
	return e.cache.Get(path, version, text)
}

// Open analyzes the file at path from its current content on disk.
func (e *Engine) Open(path string) (*analysis.Result, error) {
	path = e.inherits.Canonical(path)
	if res, _, ok := e.cache.Peek(path); ok {
		return res, nil
	}
	text, err := e.fallback.Content(path)
	if err != nil {
		e.log.Warn("document unreadable", "path", path, "err", err)
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return e.cache.Get(path, 0, text)
}

// Result returns the latest analysis of doc.
func (e *Engine) Result(doc string) (*analysis.Result, error) {
	res, _, ok := e.cache.Peek(e.inherits.Canonical(doc))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAnalyzed, doc)
	}
	return res, nil
}

// document bundles what a query needs about doc.
type document struct {
	path  string
	res   *analysis.Result
	table *symbols.Table
}

func (e *Engine) document(doc string) (document, bool) {
	path := e.inherits.Canonical(doc)
	res, _, ok := e.cache.Peek(path)
	if !ok {
		e.log.Debug("query on unanalyzed document", "doc", doc)
		return document{}, false
	}
	return document{path: path, res: res, table: res.Table}, true
}

func (e *Engine) chain(d document) []*inherit.Unit {
	return e.inherits.Chain(d.path, d.table)
}

// Invalidate drops doc's analysis and buffer. Files inheriting doc pick up the
// change on their next query.
func (e *Engine) Invalidate(doc string) {
	path := e.inherits.Canonical(doc)
	e.mu.Lock()
	delete(e.buffers, path)
	e.mu.Unlock()
	e.cache.Invalidate(path)
	e.inherits.Invalidate(path)
}

// InvalidateAll drops every analysis.
func (e *Engine) InvalidateAll() {
	e.mu.Lock()
	clear(e.buffers)
	e.mu.Unlock()
	e.cache.InvalidateAll()
	e.inherits.InvalidateAll()
}

// FileChanged reacts to an on-disk change of path. Open editor buffers win
// over disk content, so only the disk-backed state is dropped.
func (e *Engine) FileChanged(path string) {
	path = e.inherits.Canonical(path)
	e.mu.RLock()
	_, buffered := e.buffers[path]
	e.mu.RUnlock()
	e.inherits.Invalidate(path)
	if !buffered {
		e.cache.Invalidate(path)
	}
	e.log.Debug("file changed", "path", path, "buffered", buffered)
}
