package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the domain counters recorded by the enrollment flow.
type Metrics struct {
	enrollments   *prometheus.CounterVec
	payments      *prometheus.CounterVec
	gatewayOrders *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		enrollments: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opencampus",
			Name:      "enrollments_total",
			Help:      "Enrollment state transitions by outcome.",
		}, []string{"outcome"}),
		payments: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opencampus",
			Name:      "payment_records_total",
			Help:      "Payment record transitions by status.",
		}, []string{"status"}),
		gatewayOrders: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opencampus",
			Name:      "gateway_orders_total",
			Help:      "Gateway order creation attempts by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) RecordEnrollment(outcome string) {
	if m == nil {
		return
	}
	m.enrollments.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordPayment(status string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordGatewayOrder(result string) {
	if m == nil {
		return
	}
	m.gatewayOrders.WithLabelValues(result).Inc()
}

// HTTPMetrics instruments the gin engine.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opencampus",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "opencampus",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
