package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Sheet load metrics
var (
	SheetLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gacha_sheet_loads_total",
			Help: "Total number of sheet loads by outcome.",
		},
		[]string{"status"},
	)

	ListingsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gacha_listings_loaded",
			Help: "Number of listings in the dataset currently served.",
		},
	)
)

// Draw metrics
var (
	DrawsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gacha_draws_total",
			Help: "Total number of draws by outcome.",
		},
		[]string{"outcome"},
	)

	DrawPoolSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gacha_draw_pool_size",
			Help:    "Number of listings matching the query of a draw.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)
)

// Label values
const (
	StatusSuccess = "success"
	StatusError   = "error"

	OutcomeResults  = "results"
	OutcomeEmpty    = "empty"
	OutcomeNotReady = "not_ready"
)

func init() {
	prometheus.MustRegister(
		SheetLoadsTotal,
		ListingsLoaded,
		DrawsTotal,
		DrawPoolSize,
	)
}

// ObserveDraw records the outcome and pool size of one draw.
func ObserveDraw(poolSize, picked int) {
	DrawPoolSize.Observe(float64(poolSize))
	if picked == 0 {
		DrawsTotal.WithLabelValues(OutcomeEmpty).Inc()
		return
	}
	DrawsTotal.WithLabelValues(OutcomeResults).Inc()
}
