package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/consumption-atlas/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogger_AttachesRequestLogger(t *testing.T) {
	// Given
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	handler := Logger(&logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("handled")
	}))

	// When
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/options", nil))

	// Then
	assert.Contains(t, buf.String(), `"method":"GET"`)
	assert.Contains(t, buf.String(), `"path":"/api/v1/options"`)
	assert.Contains(t, buf.String(), `"message":"handled"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	// Given
	m := metrics.New()
	router := chi.NewRouter()
	router.Use(Metrics(m))
	router.Get("/figures/{figure}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	// When
	for _, path := range []string{"/figures/bar", "/figures/pie", "/ok"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	// Then
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/figures/{figure}", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/ok", "GET", "200")))
}
