package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OutcomeSuccess labels lookups that produced a result.
const OutcomeSuccess = "success"

// Metrics holds the Prometheus collectors for weather lookups.
type Metrics struct {
	Lookups        *prometheus.CounterVec // labels: outcome={success,<error kind>}
	LookupDuration prometheus.Histogram
	Categories     *prometheus.CounterVec // labels: category
}

func newCollectors() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "lookups_total",
			Help:      "Weather lookups by outcome.",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of a complete weather lookup in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Categories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather",
			Name:      "condition_categories_total",
			Help:      "Successful lookups by condition category.",
		}, []string{"category"}),
	}
}

// NewMetrics creates and registers all lookup metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newCollectors()
	prometheus.MustRegister(m.Lookups, m.LookupDuration, m.Categories)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newCollectors()
}
