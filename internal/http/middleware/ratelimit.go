package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/dto"
	"basegraph.app/roster/internal/ratelimit"
)

// RateLimit counts the request against tier, keyed by client IP. Store
// failures let the request through. A nil limiter disables the check.
func RateLimit(limiter *ratelimit.Limiter, tier ratelimit.Tier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		decision, err := limiter.Allow(ctx, tier, c.ClientIP())
		if err != nil {
			slog.WarnContext(ctx, "rate limiter unavailable, allowing request",
				"error", err,
				"tier", tier)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", decision.ResetAt.UTC().Format(time.RFC3339))

		if !decision.Allowed {
			retryAfter := decision.RetryAfter
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:      "too many requests",
				Code:       "rate_limited",
				RetryAfter: &retryAfter,
			})
			return
		}

		c.Next()
	}
}
