package v1

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskpad_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskpad_auth_attempts_total",
			Help: "Authentication attempts by outcome",
		},
		[]string{"success"},
	)
	summaryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskpad_summary_requests_total",
			Help: "Summary generation requests by outcome",
		},
		[]string{"success"},
	)
)

// HandleMetricsMiddleware records the request duration by matched route,
// so path parameters do not blow up the label set.
func HandleMetricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())
	httpRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
}

func recordAuthAttempt(success bool) {
	authAttempts.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func recordSummaryRequest(success bool) {
	summaryRequests.WithLabelValues(strconv.FormatBool(success)).Inc()
}
