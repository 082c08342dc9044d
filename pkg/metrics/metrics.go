package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "atlas"

const (
	OutcomeData  = "data"
	OutcomeEmpty = "empty"
)

// Metrics groups the collectors of one process. Each instance owns its registry
// so tests can create as many as they need.
type Metrics struct {
	Registry          *prometheus.Registry
	Recomputes        *prometheus.CounterVec
	RecomputeDuration prometheus.Histogram
	HTTPRequests      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recomputes_total",
			Help:      "Dashboard recomputations by outcome.",
		}, []string{"outcome"}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recompute_duration_seconds",
			Help:      "Time spent recomputing the dashboard.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
	}

	m.Registry.MustRegister(
		m.Recomputes,
		m.RecomputeDuration,
		m.HTTPRequests,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) ObserveRecompute(seconds float64, empty bool) {
	if m == nil {
		return
	}
	outcome := OutcomeData
	if empty {
		outcome = OutcomeEmpty
	}
	m.Recomputes.WithLabelValues(outcome).Inc()
	m.RecomputeDuration.Observe(seconds)
}
