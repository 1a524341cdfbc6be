// Package metrics exposes application-level prometheus instruments.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application instruments.
type Metrics struct {
	InvoicesGenerated   prometheus.Counter
	ConsumptionsBilled  prometheus.Counter
	ConsumptionsLoaded  prometheus.Counter
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New registers the instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		InvoicesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "facturador_invoices_generated_total",
			Help: "Invoices persisted by the invoicing engine.",
		}),
		ConsumptionsBilled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "facturador_consumptions_billed_total",
			Help: "Consumption records folded into generated invoices.",
		}),
		ConsumptionsLoaded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "facturador_consumptions_loaded_total",
			Help: "Consumption records accepted by the bulk load endpoint.",
		}),
		httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "facturador_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facturador_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// GinMiddleware records per-request counters and latency.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
