package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-mgmt-api/internal/service"
)

// scrapePath is excluded from request metrics; Prometheus polling it would
// dominate the per-route series.
const scrapePath = "/metrics"

// Metrics returns middleware recording per-route request counts and durations.
// Unregistered routes fall back to the raw URL path so 404 traffic stays
// visible without exploding label cardinality on real endpoints.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == scrapePath {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
