package middleware

import (
	"time"

	"streetbite_backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RequestMetrics records request latency labelled by the matched route template.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
