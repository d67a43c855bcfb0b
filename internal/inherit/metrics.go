package inherit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// load sources
const (
	sourceMemory   = "memory"
	sourceDisk     = "disk"
	sourceAnalysis = "analysis"
	sourceNotFound = "not_found"
)

type metrics struct {
	loads *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		loads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "lpcls",
			Subsystem: "inherit",
			Name:      "loads_total",
			Help:      "Inherited file loads by where the result came from.",
		}, []string{"source"}),
	}
}
