package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/adminui-api/internal/service"
)

// unmatchedRoute labels requests that hit no route, keeping the path label
// bounded when clients hit random URLs.
const unmatchedRoute = "unmatched"

// Metrics records one observation per request under its route template, so
// every session id shares the same series.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[path] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := skipped[route]; ok {
			return
		}
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
