package middleware

import (
	"github.com/garments-erp/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unmatched"

// HTTPMetrics records request count, latency and in-flight requests.
// Routes are labelled by their pattern so ids do not explode cardinality.
func HTTPMetrics(metrics *telemetry.Metrics, skipPaths ...string) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) { c.Next() }
	}
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		done := metrics.RequestStarted()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		done(c.Request.Method, route, c.Writer.Status())
	}
}
