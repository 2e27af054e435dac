// Package metrics provides Prometheus metrics for the shipping gateway.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CarrierCallsTotal counts proxied carrier calls by action and outcome class.
	CarrierCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_calls_total",
			Help: "Total number of carrier API calls",
		},
		[]string{"action", "outcome"},
	)

	// CarrierCallDuration tracks carrier round-trip latency, token exchange included.
	CarrierCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carrier_call_duration_seconds",
			Help:    "Carrier API call duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"action"},
	)

	// AuditWritesTotal counts audit log writes by result.
	AuditWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_writes_total",
			Help: "Total number of audit log writes",
		},
		[]string{"result"},
	)

	// RequestLogsTotal counts request-log entries by queue result.
	RequestLogsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "request_logs_total",
			Help: "Total number of request log entries by result",
		},
		[]string{"result"},
	)

	// CircuitBreakerState exposes 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCarrierCall records one proxied call.
func RecordCarrierCall(action, outcome string, duration time.Duration) {
	CarrierCallsTotal.WithLabelValues(action, outcome).Inc()
	CarrierCallDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordAuditWrite records the result of one audit write.
func RecordAuditWrite(result string) {
	AuditWritesTotal.WithLabelValues(result).Inc()
}

// RecordRequestLog records what happened to one request-log entry.
func RecordRequestLog(result string) {
	RequestLogsTotal.WithLabelValues(result).Inc()
}

// SetCircuitBreakerState publishes a breaker state as its numeric value.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
