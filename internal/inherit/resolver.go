package inherit

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"lpcls/internal/cache"
	"lpcls/internal/symbols"
)

// ErrNotFound reports that no candidate file exists for a reference.
var ErrNotFound = errors.New("inherited file not found")

// DefaultExtension is appended to extensionless inherit paths.
const DefaultExtension = ".c"

// cacheIDPrefix keeps inherited files apart from editor documents in a shared cache.
const cacheIDPrefix = "inherit:"

// Unit is an analyzed inherited file.
type Unit struct {
	// Path is canonical: absolute and cleaned.
	Path string
	// Hash is the xxhash of the content the unit was built from.
	Hash  uint64
	Table *symbols.Table
	// FromDisk is set when the table was rebuilt from a persisted summary.
	FromDisk bool
}

// Options configures a Resolver.
type Options struct {
	Root       string
	Extension  string
	Macros     MacroLookup
	FS         FileSystem
	Content    ContentProvider
	Cache      *cache.Cache
	Disk       *DiskCache
	Logger     *slog.Logger
	Registerer prometheus.Registerer
}

// Resolver maps inherit references to units. Safe for concurrent use.
type Resolver struct {
	root    string
	ext     string
	macros  MacroLookup
	fs      FileSystem
	content ContentProvider
	cache   *cache.Cache
	disk    *DiskCache
	log     *slog.Logger
	metrics *metrics

	mu      sync.RWMutex
	units   map[string]*Unit
	located map[locateKey]string
	gens    map[string]int32
	flight  singleflight.Group
}

type locateKey struct {
	ref  string
	from string
}

// NewResolver fills unset options with OS access, the default extension and a
// private analysis cache. The cache should not be shared with editor documents:
// loading inherited files would evict them.
func NewResolver(opts Options) (*Resolver, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.Macros == nil {
		opts.Macros = noMacros{}
	}
	if opts.FS == nil {
		opts.FS = OS{}
	}
	if opts.Content == nil {
		opts.Content = OS{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Cache == nil {
		opts.Cache = cache.New(cache.Options{Name: "inherited", Logger: opts.Logger})
	}
	return &Resolver{
		root:    root,
		ext:     opts.Extension,
		macros:  opts.Macros,
		fs:      opts.FS,
		content: opts.Content,
		cache:   opts.Cache,
		disk:    opts.Disk,
		log:     opts.Logger,
		metrics: newMetrics(opts.Registerer),
		units:   make(map[string]*Unit),
		located: make(map[locateKey]string),
		gens:    make(map[string]int32),
	}, nil
}

// Root returns the absolute workspace root.
func (r *Resolver) Root() string { return r.root }

// Canonical makes path absolute and clean. Relative paths are taken from the
// workspace root.
func (r *Resolver) Canonical(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	return filepath.Clean(path)
}

// Locate expands ref and returns the first existing candidate. Found paths are
// remembered until the next Invalidate; misses are retried every time.
func (r *Resolver) Locate(ref, fromPath string) (string, error) {
	key := locateKey{ref: ref, from: r.Canonical(fromPath)}
	r.mu.RLock()
	found, ok := r.located[key]
	r.mu.RUnlock()
	if ok {
		return found, nil
	}

	path, ok := Expand(ref, r.macros)
	if !ok {
		return "", fmt.Errorf("%w: cannot expand %q", ErrNotFound, ref)
	}
	for _, cand := range Candidates(path, key.from, r.root, r.ext) {
		info, err := r.fs.Stat(cand)
		if err == nil && !info.IsDir() {
			found = r.Canonical(cand)
			r.mu.Lock()
			r.located[key] = found
			r.mu.Unlock()
			return found, nil
		}
	}
	return "", fmt.Errorf("%w: %q from %s", ErrNotFound, ref, fromPath)
}

// Load resolves ref relative to fromPath and returns its analysis.
func (r *Resolver) Load(ref, fromPath string) (*Unit, error) {
	path, err := r.Locate(ref, fromPath)
	if err != nil {
		r.metrics.loads.WithLabelValues(sourceNotFound).Inc()
		return nil, err
	}
	return r.LoadPath(path)
}

// ResolveInherited is Load without the error detail. Misses are logged at debug.
func (r *Resolver) ResolveInherited(ref, fromPath string) (*Unit, bool) {
	unit, err := r.Load(ref, fromPath)
	if err != nil {
		r.log.Debug("inherit unresolved", "ref", ref, "from", fromPath, "err", err)
		return nil, false
	}
	return unit, true
}

// LoadPath analyzes the file at path. The unit is kept until path is
// invalidated and served without reading the file again. Concurrent loads of one
// path share the work.
func (r *Resolver) LoadPath(path string) (*Unit, error) {
	path = r.Canonical(path)
	if unit, ok := r.loaded(path); ok {
		r.metrics.loads.WithLabelValues(sourceMemory).Inc()
		return unit, nil
	}
	v, err, _ := r.flight.Do(path, func() (any, error) {
		return r.load(path)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Unit), nil
}

func (r *Resolver) loaded(path string) (*Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	unit, ok := r.units[path]
	return unit, ok
}

func (r *Resolver) load(path string) (*Unit, error) {
	if unit, ok := r.loaded(path); ok {
		r.metrics.loads.WithLabelValues(sourceMemory).Inc()
		return unit, nil
	}
	content, err := r.content.Content(path)
	if err != nil {
		r.log.Warn("inherited file unreadable", "path", path, "err", err)
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	hash := xxhash.Sum64(content)

	if s, ok, err := r.disk.Get(path, hash); err != nil {
		r.log.Warn("summary cache read failed", "path", path, "err", err)
	} else if ok {
		r.metrics.loads.WithLabelValues(sourceDisk).Inc()
		return r.publish(&Unit{Path: path, Hash: hash, Table: s.Table(), FromDisk: true}), nil
	}

	version, err := r.nextGeneration(path)
	if err != nil {
		return nil, err
	}
	res, err := r.cache.Get(cacheIDPrefix+path, version, content)
	if err != nil {
		return nil, err
	}
	r.metrics.loads.WithLabelValues(sourceAnalysis).Inc()

	length, err := safecast.Conv[uint32](len(content))
	if err != nil {
		length = math.MaxUint32
	}
	if err := r.disk.Put(Summarize(path, hash, res.Table, length)); err != nil {
		r.log.Warn("summary cache write failed", "path", path, "err", err)
	}
	return r.publish(&Unit{Path: path, Hash: hash, Table: res.Table}), nil
}

func (r *Resolver) nextGeneration(path string) (int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := int64(r.gens[path]) + 1
	gen, err := safecast.Conv[int32](next)
	if err != nil {
		return 0, fmt.Errorf("generation of %s: %w", path, err)
	}
	r.gens[path] = gen
	return gen, nil
}

func (r *Resolver) publish(u *Unit) *Unit {
	r.mu.Lock()
	r.units[u.Path] = u
	r.mu.Unlock()
	return u
}

// Chain walks the inherit statements of table depth-first in statement order
// and returns each reachable file once. fromPath and every visited file are
// skipped on re-encounter, so cycles end silently.
func (r *Resolver) Chain(fromPath string, table *symbols.Table) []*Unit {
	visited := map[string]struct{}{r.Canonical(fromPath): {}}
	var out []*Unit
	var walk func(from string, t *symbols.Table)
	walk = func(from string, t *symbols.Table) {
		for _, inh := range t.Inherits {
			unit, ok := r.ResolveInherited(inh.Raw, from)
			if !ok {
				continue
			}
			if _, seen := visited[unit.Path]; seen {
				continue
			}
			visited[unit.Path] = struct{}{}
			out = append(out, unit)
			walk(unit.Path, unit.Table)
		}
	}
	walk(fromPath, table)
	return out
}

// Invalidate forgets path so the next load re-reads it. Located references are
// dropped as well since a created or removed file can change what they find.
func (r *Resolver) Invalidate(path string) {
	path = r.Canonical(path)
	r.mu.Lock()
	delete(r.units, path)
	clear(r.located)
	r.mu.Unlock()
	r.cache.Invalidate(cacheIDPrefix + path)
}

// InvalidateAll forgets every loaded unit.
func (r *Resolver) InvalidateAll() {
	r.mu.Lock()
	var paths []string
	for p := range r.units {
		paths = append(paths, p)
	}
	clear(r.units)
	clear(r.located)
	r.mu.Unlock()
	for _, p := range paths {
		r.cache.Invalidate(cacheIDPrefix + p)
	}
}

// Loaded reports whether path has a unit in memory.
func (r *Resolver) Loaded(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.units[r.Canonical(path)]
	return ok
}
