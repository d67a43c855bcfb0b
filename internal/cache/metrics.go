package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
	build     prometheus.Histogram
}

// newMetrics registers the cache collectors with reg, labeled with the cache
// name so several caches share one registry. A nil reg yields unregistered
// collectors.
func newMetrics(reg prometheus.Registerer, name string) *metrics {
	if reg != nil {
		reg = prometheus.WrapRegistererWith(prometheus.Labels{"cache": name}, reg)
	}
	f := promauto.With(reg)
	return &metrics{
		hits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lpcls",
			Subsystem: "analysis_cache",
			Name:      "hits_total",
			Help:      "Analysis results served from the cache.",
		}),
		misses: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lpcls",
			Subsystem: "analysis_cache",
			Name:      "misses_total",
			Help:      "Lookups that required a fresh analysis.",
		}),
		evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lpcls",
			Subsystem: "analysis_cache",
			Name:      "evictions_total",
			Help:      "Entries dropped to respect the size bound.",
		}),
		build: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lpcls",
			Subsystem: "analysis_cache",
			Name:      "build_duration_seconds",
			Help:      "Time spent parsing and building one document.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}
