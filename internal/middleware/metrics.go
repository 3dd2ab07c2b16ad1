package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/synergysphere/synergysphere/internal/metrics"
)

// Prometheus records request duration by route template, so ids in the
// path do not explode label cardinality.
func Prometheus(m *metrics.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
