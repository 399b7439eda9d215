package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HttpActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crm_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Authentication metrics
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_auth_attempts_total",
			Help: "Authentication attempts by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	// Outbound message metrics
	MessagesDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_messages_dispatched_total",
			Help: "Outbound messages processed by the dispatcher",
		},
		[]string{"type", "status"},
	)

	MessagesEnqueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_messages_enqueued_total",
			Help: "Outbound messages published to the delivery queue",
		},
	)

	WebsocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crm_websocket_connections",
			Help: "Open inbox websocket connections",
		},
	)
)

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		HttpActiveRequests.Inc()
		defer HttpActiveRequests.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAuthAttempt counts a login or registration outcome.
func RecordAuthAttempt(action, outcome string) {
	AuthAttemptsTotal.WithLabelValues(action, outcome).Inc()
}

// RecordDispatch counts a dispatcher outcome for one message.
func RecordDispatch(messageType, status string) {
	MessagesDispatchedTotal.WithLabelValues(messageType, status).Inc()
}
