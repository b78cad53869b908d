package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fyrsmithlabs/socialintel/internal/logging"
	"github.com/fyrsmithlabs/socialintel/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestMetrics_AccessAttempts(t *testing.T) {
	tt := telemetry.NewTestTelemetry()
	reg := prometheus.NewRegistry()
	m := NewMetrics(logging.NewNop(), WithMeter(tt.Meter(instrumentationName)), WithRegisterer(reg))

	ts := setupTestServer(t, WithMetrics(m), WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	ts.do(loginForm("wrong"))
	ts.do(loginForm("also-wrong"))
	ts.do(loginForm(testCode))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.promAccess.WithLabelValues("denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.promAccess.WithLabelValues("granted")))

	denied, ok := tt.CounterValue(t, "socialintel.access.attempts_total", attribute.String("result", "denied"))
	require.True(t, ok)
	assert.Equal(t, int64(2), denied)

	granted, ok := tt.CounterValue(t, "socialintel.access.attempts_total", attribute.String("result", "granted"))
	require.True(t, ok)
	assert.Equal(t, int64(1), granted)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `socialintel_access_attempts_total{result="denied"} 2`)
	assert.Contains(t, body, "socialintel_http_requests_total")
	assert.NotContains(t, body, "also-wrong")
}

func TestMetrics_Requests(t *testing.T) {
	tt := telemetry.NewTestTelemetry()
	reg := prometheus.NewRegistry()
	m := NewMetrics(logging.NewNop(), WithMeter(tt.Meter(instrumentationName)), WithRegisterer(reg))

	ts := setupTestServer(t, WithMetrics(m))
	ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/trends", nil))
	ts.do(httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.promRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.promRequests.WithLabelValues("GET", "/api/v1/trends", "401")))

	total, ok := tt.CounterValue(t, "socialintel.http.requests_total")
	require.True(t, ok)
	assert.Equal(t, int64(3), total)

	unauthorized, ok := tt.CounterValue(t, "socialintel.http.requests_total", attribute.Int("status", http.StatusUnauthorized))
	require.True(t, ok)
	assert.Equal(t, int64(1), unauthorized)
}

func TestMetrics_ReRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewMetrics(logging.NewNop(), WithRegisterer(reg))
	second := NewMetrics(logging.NewNop(), WithRegisterer(reg))

	require.NotNil(t, second.promAccess)
	assert.Same(t, first.promAccess, second.promAccess)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	e := setupTestServer(t).echo
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotPanics(t, func() { m.RecordAttempt(c, 0) })
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", normalizePath(""))
	assert.Equal(t, "/api/v1/trends", normalizePath("/api/v1/trends"))
	assert.False(t, strings.Contains(normalizePath("/health"), "{"))
}
