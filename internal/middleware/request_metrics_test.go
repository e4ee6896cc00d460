package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmate/trainmate-api/internal/telemetry/metrics"
)

func TestRequestMetrics(t *testing.T) {
	metricsManager, registry := metrics.NewTestManagerAndRegistry()

	handler := RequestMetrics(metricsManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/workouts", nil)
	handler.ServeHTTP(rec, req)

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	var requestsMetric *dto.MetricFamily
	for _, mf := range metricFamilies {
		if mf.GetName() == "backend_test_server_request" {
			requestsMetric = mf
		}
	}
	require.NotNil(t, requestsMetric)
	require.Len(t, requestsMetric.GetMetric(), 1)

	m := requestsMetric.GetMetric()[0]
	assert.Equal(t, float64(1), m.GetCounter().GetValue())

	labels := make(map[string]string)
	for _, labelPair := range m.GetLabel() {
		labels[labelPair.GetName()] = labelPair.GetValue()
	}
	assert.Equal(t, "GET", labels["method"])
	assert.Equal(t, "418", labels["status"])
}
