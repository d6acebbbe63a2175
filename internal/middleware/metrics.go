// internal/middleware/metrics.go
package middleware

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records per-route request counters and latency summaries,
// exported on /metrics in Prometheus text format.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.GetOrCreateCounter(fmt.Sprintf(`http_requests_total{method=%q,path=%q,status="%d"}`,
			c.Request.Method, path, c.Writer.Status())).Inc()
		metrics.GetOrCreateSummary(fmt.Sprintf(`http_request_duration_seconds{path=%q}`, path)).
			Update(time.Since(start).Seconds())
	}
}
