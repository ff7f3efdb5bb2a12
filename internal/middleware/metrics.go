package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tsma-calendar-client/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics returns middleware that observes every served request, labelled by
// route template so path parameters do not explode the label set.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
