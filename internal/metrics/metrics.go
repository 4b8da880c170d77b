// Package metrics provides Prometheus metrics collection for the pricing service.
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

	// QuoteCalculationsTotal tracks priced orders by status (computed, cached, invalid_input).
	QuoteCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_calculations_total",
			Help: "Total number of order quotes",
		},
		[]string{"status"},
	)

	// QuoteCalculationDuration tracks quote calculation duration.
	QuoteCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quote_calculation_duration_seconds",
			Help:    "Quote calculation duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// FreeDeliveryTotal counts quotes by whether free delivery applied.
	FreeDeliveryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_free_delivery_total",
			Help: "Total number of quotes by free delivery outcome",
		},
		[]string{"applied"},
	)

	// InputRejectionsTotal counts inputs rejected by the strict policy, by field.
	InputRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_input_rejections_total",
			Help: "Total number of rejected order input fields",
		},
		[]string{"field"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
		[]string{"cache"},
	)

	// IdempotencyReplaysTotal counts responses served from the idempotency store.
	IdempotencyReplaysTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idempotency_replays_total",
			Help: "Total number of idempotent responses replayed",
		},
		[]string{"backend"},
	)

	// PanicsRecoveredTotal counts handler panics turned into 500s.
	PanicsRecoveredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_panics_recovered_total",
			Help: "Total number of recovered handler panics",
		},
	)

	// AuditEntriesTotal counts audit sink entries by outcome (written, failed, dropped).
	AuditEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_log_entries_total",
			Help: "Total number of audit log entries by outcome",
		},
		[]string{"result"},
	)

	// CircuitBreakerState reports breaker state: 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
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
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordQuote records metrics for a single quote.
func RecordQuote(duration time.Duration, status string, freeDelivery bool) {
	QuoteCalculationDuration.Observe(duration.Seconds())
	QuoteCalculationsTotal.WithLabelValues(status).Inc()
	FreeDeliveryTotal.WithLabelValues(strconv.FormatBool(freeDelivery)).Inc()
}

// RecordQuoteRejected counts a quote refused for invalid input.
func RecordQuoteRejected() {
	QuoteCalculationsTotal.WithLabelValues("invalid_input").Inc()
}

// RecordInputRejection records a field rejected by input validation.
func RecordInputRejection(field string) {
	InputRejectionsTotal.WithLabelValues(field).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// RecordIdempotencyReplay records a replayed idempotent response.
func RecordIdempotencyReplay(backend string) {
	IdempotencyReplaysTotal.WithLabelValues(backend).Inc()
}

// SetCircuitBreakerState publishes the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordPanicRecovered counts a recovered handler panic.
func RecordPanicRecovered() {
	PanicsRecoveredTotal.Inc()
}

// RecordAuditEntries adds n entries to the given audit outcome.
func RecordAuditEntries(result string, n int) {
	AuditEntriesTotal.WithLabelValues(result).Add(float64(n))
}
