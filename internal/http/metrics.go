package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/fyrsmithlabs/socialintel/internal/gate"
	"github.com/fyrsmithlabs/socialintel/internal/logging"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/fyrsmithlabs/socialintel/internal/http"

// Metrics records request and access-attempt metrics through OTel
// instruments and, when a registerer is supplied, Prometheus collectors.
// A nil *Metrics records nothing.
type Metrics struct {
	logger *logging.Logger

	requestsTotal  metric.Int64Counter
	requestDur     metric.Float64Histogram
	responseSize   metric.Int64Histogram
	activeRequests metric.Int64UpDownCounter
	accessAttempts metric.Int64Counter

	promRequests *prometheus.CounterVec
	promDuration *prometheus.HistogramVec
	promAccess   *prometheus.CounterVec
}

// MetricsOption configures Metrics.
type MetricsOption func(*metricsOptions)

type metricsOptions struct {
	meter      metric.Meter
	registerer prometheus.Registerer
}

// WithMeter sets the OTel meter. Defaults to the global provider.
func WithMeter(m metric.Meter) MetricsOption {
	return func(o *metricsOptions) { o.meter = m }
}

// WithRegisterer registers Prometheus collectors on r.
func WithRegisterer(r prometheus.Registerer) MetricsOption {
	return func(o *metricsOptions) { o.registerer = r }
}

// NewMetrics creates the HTTP metrics. Instrument creation failures are
// logged and leave that instrument unset.
func NewMetrics(logger *logging.Logger, opts ...MetricsOption) *Metrics {
	if logger == nil {
		logger = logging.NewNop()
	}
	o := &metricsOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.meter == nil {
		o.meter = otel.Meter(instrumentationName)
	}

	m := &Metrics{logger: logger}
	m.initOTel(o.meter)
	if o.registerer != nil {
		m.initPrometheus(o.registerer)
	}
	return m
}

func (m *Metrics) initOTel(meter metric.Meter) {
	var err error

	m.requestsTotal, err = meter.Int64Counter(
		"socialintel.http.requests_total",
		metric.WithDescription("Total HTTP requests by method, endpoint and status."),
		metric.WithUnit("{request}"),
	)
	m.warn("requests counter", err)

	m.requestDur, err = meter.Float64Histogram(
		"socialintel.http.request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
	)
	m.warn("duration histogram", err)

	m.responseSize, err = meter.Int64Histogram(
		"socialintel.http.response_size_bytes",
		metric.WithDescription("HTTP response body size in bytes."),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(100, 500, 1000, 5000, 10000, 50000, 100000),
	)
	m.warn("response size histogram", err)

	m.activeRequests, err = meter.Int64UpDownCounter(
		"socialintel.http.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests."),
		metric.WithUnit("{request}"),
	)
	m.warn("active requests gauge", err)

	m.accessAttempts, err = meter.Int64Counter(
		"socialintel.access.attempts_total",
		metric.WithDescription("Access code submissions by result (granted, denied)."),
		metric.WithUnit("{attempt}"),
	)
	m.warn("access attempts counter", err)
}

func (m *Metrics) initPrometheus(reg prometheus.Registerer) {
	m.promRequests = registerOrReuse(m, reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialintel_http_requests_total",
			Help: "Total HTTP requests by method, endpoint and status.",
		},
		[]string{"method", "endpoint", "status"},
	))
	m.promDuration = registerOrReuse(m, reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialintel_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	))
	m.promAccess = registerOrReuse(m, reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialintel_access_attempts_total",
			Help: "Access code submissions by result.",
		},
		[]string{"result"},
	))
}

// registerOrReuse registers c, returning the already registered collector
// of the same shape when there is one.
func registerOrReuse[C prometheus.Collector](m *Metrics, reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		m.warn("prometheus collector", err)
		var zero C
		return zero
	}
	return c
}

func (m *Metrics) warn(what string, err error) {
	if err != nil {
		m.logger.Underlying().Warn("failed to create "+what, zap.Error(err))
	}
}

// RecordAttempt counts one access attempt. The submitted code is never
// passed in.
func (m *Metrics) RecordAttempt(c echo.Context, result gate.Result) {
	if m == nil {
		return
	}
	ctx := c.Request().Context()
	if m.accessAttempts != nil {
		m.accessAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result.String())))
	}
	if m.promAccess != nil {
		m.promAccess.WithLabelValues(result.String()).Inc()
	}
}

// Middleware returns an echo middleware that records request metrics.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()
			ctx := c.Request().Context()

			if m.activeRequests != nil {
				m.activeRequests.Add(ctx, 1)
			}

			err := next(c)
			if err != nil {
				// Let echo's error handler write the response so the
				// recorded status matches what the client sees.
				c.Error(err)
			}

			duration := time.Since(start)
			method := c.Request().Method
			endpoint := normalizePath(c.Path())
			status := c.Response().Status

			attrs := metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("endpoint", endpoint),
				attribute.Int("status", status),
			)
			if m.requestsTotal != nil {
				m.requestsTotal.Add(ctx, 1, attrs)
			}
			if m.requestDur != nil {
				m.requestDur.Record(ctx, duration.Seconds(), attrs)
			}
			if m.responseSize != nil {
				m.responseSize.Record(ctx, c.Response().Size, attrs)
			}
			if m.activeRequests != nil {
				m.activeRequests.Add(ctx, -1)
			}
			if m.promRequests != nil {
				m.promRequests.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
			}
			if m.promDuration != nil {
				m.promDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
			}
			return nil
		}
	}
}

// normalizePath maps unmatched requests to a single label so unknown
// paths cannot grow the series count. Matched requests already carry the
// route pattern.
func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
