package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewIPRateLimiter limits requests per client IP using an in-memory store.
// rateFormatted is "300-M", "1000-H" and so on; empty disables limiting.
func NewIPRateLimiter(rateFormatted string) (gin.HandlerFunc, error) {
	if rateFormatted == "" {
		return func(ctx *gin.Context) { ctx.Next() }, nil
	}

	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(memory.NewStore(), rate)
	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(ctx *gin.Context) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
		}),
	), nil
}
