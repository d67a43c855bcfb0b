// Package cache keeps the most recent analysis of each open document.
package cache

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"lpcls/internal/analysis"
)

// DefaultSize is the number of documents kept when Options.Size is zero.
const DefaultSize = 50

// DefaultName labels the metrics of a cache without Options.Name.
const DefaultName = "documents"

// Options configures a Cache.
type Options struct {
	Name       string
	Size       int
	Analysis   analysis.Options
	Registerer prometheus.Registerer
	Logger     *slog.Logger
}

type entry struct {
	version int32
	result  *analysis.Result
}

// Cache maps document ids to the analysis of one version. It is bounded and
// evicts the oldest-inserted id first. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string // insertion order, oldest first

	size    int
	opts    analysis.Options
	log     *slog.Logger
	metrics *metrics
	flight  singleflight.Group
}

// New creates an empty cache.
func New(opts Options) *Cache {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	return &Cache{
		entries: make(map[string]entry, opts.Size),
		size:    opts.Size,
		opts:    opts.Analysis,
		log:     opts.Logger,
		metrics: newMetrics(opts.Registerer, opts.Name),
	}
}

// Get returns the analysis of id at version. A stored entry with the same
// version is returned as is; otherwise text is analyzed and replaces it.
// Concurrent builds of the same id and version share one analysis.
func (c *Cache) Get(id string, version int32, text []byte) (*analysis.Result, error) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if ok && e.version == version {
		c.metrics.hits.Inc()
		c.log.Debug("analysis cache hit", "doc", id, "version", version)
		return e.result, nil
	}

	key := id + "@" + strconv.FormatInt(int64(version), 10)
	v, err, _ := c.flight.Do(key, func() (any, error) {
		c.metrics.misses.Inc()
		c.log.Debug("analysis cache miss", "doc", id, "version", version)

		start := time.Now()
		res, err := analysis.Analyze(text, c.opts)
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", id, err)
		}
		c.metrics.build.Observe(time.Since(start).Seconds())

		c.store(id, entry{version: version, result: res})
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*analysis.Result), nil
}

// store inserts e under id. A replaced id moves to the back of the eviction
// order. An entry already holding a newer version is kept, so a slow build of an
// old version cannot overwrite it.
func (c *Cache) store(id string, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.entries[id]; ok {
		if prev.version > e.version {
			c.log.Debug("analysis cache keeps newer version", "doc", id, "stored", prev.version, "built", e.version)
			return
		}
		c.removeLocked(id)
	}
	for len(c.order) >= c.size {
		oldest := c.order[0]
		c.removeLocked(oldest)
		c.metrics.evictions.Inc()
		c.log.Debug("analysis cache evict", "doc", oldest)
	}
	c.entries[id] = e
	c.order = append(c.order, id)
}

func (c *Cache) removeLocked(id string) {
	delete(c.entries, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

// Peek returns the stored analysis of id without building.
func (c *Cache) Peek(id string) (*analysis.Result, int32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	if !ok {
		return nil, 0, false
	}
	return e.result, e.version, true
}

// Invalidate drops id. Unknown ids are ignored.
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	c.removeLocked(id)
	c.mu.Unlock()
}

// InvalidateAll empties the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	clear(c.entries)
	c.order = c.order[:0]
	c.mu.Unlock()
}

// Len reports the number of stored documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// IDs lists the stored ids, oldest first.
func (c *Cache) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}
