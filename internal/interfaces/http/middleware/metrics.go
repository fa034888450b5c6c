package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/prometheus"
)

// Metrics records per-request counters and latency histograms on the
// application metrics.  The route template (c.FullPath) is used as the
// path label so per-ID URLs do not explode cardinality; unmatched routes
// are grouped under "unmatched".
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		m.HTTPActiveRequests.WithLabelValues(method).Inc()
		defer m.HTTPActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(method, path, c.Writer.Status(), time.Since(start))
	}
}
