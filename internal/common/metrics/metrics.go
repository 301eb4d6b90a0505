package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	LineItemTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_line_item_transitions_total",
			Help: "Applied line item status transitions",
		},
		[]string{"to"},
	)

	TableClaims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_table_claims_total",
			Help: "Table claim attempts by outcome",
		},
		[]string{"outcome"},
	)

	OrdersSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_orders_settled_total",
			Help: "Orders marked paid",
		},
		[]string{"payment_method"},
	)

	NotificationsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_notifications_total",
			Help: "Notifications by event and outcome (published, dropped, failed)",
		},
		[]string{"event", "outcome"},
	)

	SSEClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pos_sse_clients",
		Help: "Connected realtime sessions",
	})

	KitchenQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pos_kitchen_queue_depth",
		Help: "Line items currently owned by the kitchen",
	})
)

var once sync.Once

// Init registers every collector on the default registry. Safe to call twice.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HttpRequestsTotal, HttpRequestDuration,
			LineItemTransitions, TableClaims, OrdersSettled,
			NotificationsPublished, SSEClients, KitchenQueueDepth,
		)
	})
}

func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "undefined"
		}

		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HttpRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
	}
}
