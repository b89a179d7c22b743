package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/ratelimit"
	"github.com/jurisflow/jurisflow/internal/types"
)

// RateLimitMiddleware enforces the fixed window budget for a category.
// Authenticated callers are counted per user, anonymous ones per
// client IP.
func RateLimitMiddleware(limiter ratelimit.Limiter, category types.RateLimitCategory) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := types.GetUserID(c.Request.Context())
		if identity == "" {
			identity = c.ClientIP()
		}

		result, err := limiter.Check(c.Request.Context(), identity, category)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header(types.HeaderRetryAfter, strconv.Itoa(retryAfter))
			c.Error(ierr.NewError("rate limit exceeded").
				WithHint("Too many requests, please retry later").
				WithReportableDetails(map[string]any{
					"category":            category,
					"retry_after_seconds": retryAfter,
				}).
				Mark(ierr.ErrRateLimited))
			c.Abort()
			return
		}

		c.Next()
	}
}
