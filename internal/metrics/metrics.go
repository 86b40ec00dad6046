package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberia_web",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "barberia_web",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	bookingRequested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberia_web",
			Name:      "booking_requested_total",
			Help:      "Count of booking requests by outcome.",
		},
		[]string{"outcome"},
	)

	availabilityPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barberia_web",
			Name:      "availability_published_total",
			Help:      "Count of successful availability batch publishes.",
		},
	)

	sessionExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barberia_web",
			Name:      "session_expired_total",
			Help:      "Count of 401 responses received from the booking API.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			requestsTotal,
			requestDuration,
			bookingRequested,
			availabilityPublished,
			sessionExpired,
		)
	})
}

// Middleware mede toda requisição, agregando pelo template da rota para
// não explodir cardinalidade com ids.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		requestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		requestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

func IncBookingRequested(outcome string) {
	bookingRequested.WithLabelValues(outcome).Inc()
}

func IncAvailabilityPublished() {
	availabilityPublished.Inc()
}

func IncSessionExpired() {
	sessionExpired.Inc()
}
