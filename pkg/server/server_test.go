package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/consumption-atlas/pkg/metrics"
	"github.com/de-tools/consumption-atlas/pkg/models/api"
	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/render/png"
	"github.com/de-tools/consumption-atlas/pkg/services/dashboard"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() domain.Dataset {
	return domain.NewDataset([]domain.Record{
		{Country: "France", Continent: "Europe", Beverage: "Beer", Strength: "Low", Year: 2020, Consumption: 2, AvgPrice: 3},
		{Country: "Germany", Continent: "Europe", Beverage: "Beer", Strength: "Low", Year: 2020, Consumption: 3, AvgPrice: 2},
		{Country: "Japan", Continent: "Asia", Beverage: "Spirits", Strength: "High", Year: 2020, Consumption: 1, AvgPrice: 20},
		{Country: "France", Continent: "Europe", Beverage: "Beer", Strength: "Low", Year: 2021, Consumption: 2.5, AvgPrice: 3.2},
	})
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	m := metrics.New()

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Dashboard: dashboard.NewService(testDataset(), dashboard.WithMetrics(m)),
			Renderer:  png.NewRenderer(),
			Metrics:   m,
			Logger:    logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "Options",
			method:         http.MethodGet,
			path:           "/api/v1/options",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response api.Options
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, []string{"Asia", "Europe"}, response.Continents)
				assert.Equal(t, []string{"Beer", "Spirits"}, response.Beverages)
				assert.Equal(t, []int{2020, 2021}, response.Years)
				assert.Equal(t, 2020, response.Default.Year)
				assert.Equal(t, domain.AllStrengths, response.Default.Strength)
			},
		},
		{
			name:           "DashboardEuropeBeer",
			method:         http.MethodGet,
			path:           "/api/v1/dashboard?continent=Europe&beverage=Beer&year=2020",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response api.Dashboard
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, api.Summaries{TotalConsumption: "5.00", AvgPrice: "2.50", UniqueCountries: "2"}, response.Summaries)
				assert.Equal(t, "bar", response.Figures.Bar.Kind)
				assert.Equal(t, "line", response.Figures.Line.Kind)
			},
		},
		{
			name:           "DashboardNoBeverages",
			method:         http.MethodPost,
			path:           "/api/v1/dashboard",
			body:           `{"beverages": []}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response api.Dashboard
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, domain.NotAvailable, response.Summaries.TotalConsumption)
				for _, f := range []api.Figure{response.Figures.Bar, response.Figures.Pie, response.Figures.Scatter, response.Figures.Line} {
					assert.Equal(t, "empty", f.Kind)
					assert.Equal(t, []interface{}{}, f.Data)
				}
			},
		},
		{
			name:           "DashboardYearOutOfRange",
			method:         http.MethodGet,
			path:           "/api/v1/dashboard?year=1990",
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "year 1990 outside 2020-2021")
			},
		},
		{
			name:           "FigurePNG",
			method:         http.MethodGet,
			path:           "/api/v1/figures/pie?year=2021",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.True(t, strings.HasPrefix(string(body), "\x89PNG"))
			},
		},
		{
			name:           "Health",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, "ok", string(body))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			tc.check(t, body)
		})
	}

	t.Run("Metrics", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `atlas_recomputes_total{outcome="data"}`)
		assert.Contains(t, string(body), `atlas_recomputes_total{outcome="empty"} 1`)
		assert.Contains(t, string(body), `atlas_http_requests_total{method="GET",route="/api/v1/dashboard",status="200"} 1`)
		assert.Contains(t, string(body), `route="/api/v1/figures/{figure}"`)
	})
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	webAPI := NewWebAPI(Config{
		Addr: "127.0.0.1:0",
		Dependencies: Dependencies{
			Dashboard: dashboard.NewService(testDataset()),
			Logger:    zerolog.Nop(),
		},
	})

	assert.Equal(t, defaultShutdownTimeout, webAPI.shutdownTimeout)
	assert.Equal(t, "127.0.0.1:0", webAPI.server.Addr)
}
