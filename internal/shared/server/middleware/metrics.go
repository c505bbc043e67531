package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/metrics"
)

// Metrics records request count and latency labelled by the matched route template.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		reg.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
