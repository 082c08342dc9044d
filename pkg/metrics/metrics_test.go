package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRecompute(t *testing.T) {
	m := New()

	m.ObserveRecompute(0.01, false)
	m.ObserveRecompute(0.02, false)
	m.ObserveRecompute(0.03, true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Recomputes.WithLabelValues(OutcomeData)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Recomputes.WithLabelValues(OutcomeEmpty)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RecomputeDuration))
}

func TestObserveRecompute_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveRecompute(1, true) })
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()

	a.HTTPRequests.WithLabelValues("/healthz", "GET", "200").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.HTTPRequests.WithLabelValues("/healthz", "GET", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.HTTPRequests.WithLabelValues("/healthz", "GET", "200")))
}
