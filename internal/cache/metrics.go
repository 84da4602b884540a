package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	lookupHit  = "hit"
	lookupMiss = "miss"
)

var (
	// LookupsTotal counts Get calls per cache group and result (hit or miss).
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gacha",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of cache lookups by result.",
		},
		[]string{"cache", "result"},
	)

	// EvictionsTotal counts entries dropped for size or age per cache group.
	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gacha",
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Total number of entries evicted from the cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(LookupsTotal, EvictionsTotal)
}

var (
	entriesMu    sync.Mutex
	entriesGauge = make(map[string]prometheus.GaugeFunc)
	// entriesReg is swapped for an isolated registry in tests.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntries exposes gacha_cache_entries{cache=group}, read from lenFunc at
// scrape time. Registering a group twice replaces the previous gauge.
func registerEntries(group string, lenFunc func() int) {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "gacha",
		Subsystem:   "cache",
		Name:        "entries",
		Help:        "Current number of entries in the cache.",
		ConstLabels: prometheus.Labels{"cache": group},
	}, func() float64 { return float64(lenFunc()) })

	entriesMu.Lock()
	defer entriesMu.Unlock()

	if old, ok := entriesGauge[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesGauge[group] = gauge
	_ = entriesReg.Register(gauge)
}

func unregisterEntries(group string) {
	entriesMu.Lock()
	defer entriesMu.Unlock()

	if g, ok := entriesGauge[group]; ok {
		entriesReg.Unregister(g)
		delete(entriesGauge, group)
	}
}
