package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "walletledger",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "walletledger",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "walletledger",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)
)

// Business metrics, recorded by the movement handlers.
var (
	MovementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "walletledger",
			Subsystem: "business",
			Name:      "movements_total",
			Help:      "Total number of movement requests by outcome",
		},
		[]string{"type", "outcome"},
	)
)

// Database metrics, updated by the container's stats loop.
var (
	DBConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "walletledger",
			Subsystem: "db",
			Name:      "connections",
			Help:      "Number of database connections by state",
		},
		[]string{"state"}, // idle, in_use, max
	)
)

// Metrics records request count, latency and in-flight gauge for every
// request except the scrape endpoint itself.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordMovement counts a movement request outcome ("completed",
// "replayed", "rejected", "failed").
func RecordMovement(movementType, outcome string) {
	MovementsTotal.WithLabelValues(movementType, outcome).Inc()
}

// UpdateDBConnections publishes pool stats to the connections gauge.
func UpdateDBConnections(idle, inUse, max int32) {
	DBConnections.WithLabelValues("idle").Set(float64(idle))
	DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	DBConnections.WithLabelValues("max").Set(float64(max))
}
