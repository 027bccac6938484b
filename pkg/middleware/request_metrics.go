package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/profilehub/profilehub/pkg/metrics"
)

// RequestMetrics counts handled requests by method, matched route and status.
// Uses the route template (e.g. /api/profiles/:id) rather than the raw path
// to keep metric cardinality bounded.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
