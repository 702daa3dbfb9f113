package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/storefront/internal/httputil"
	"github.com/allisson/storefront/internal/metrics"
	"github.com/allisson/storefront/internal/ratelimit"
)

// Admitter makes sliding window admission decisions. *ratelimit.SlidingWindow implements it.
type Admitter interface {
	Admit(ctx context.Context, identity string) (ratelimit.Decision, error)
}

// KeyFunc derives the rate limiting identity of a request.
type KeyFunc func(c *gin.Context) string

// ClientIPKey identifies callers by c.ClientIP(), which honors X-Forwarded-For and
// X-Real-IP only from trusted proxies.
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// SlidingWindowMiddleware enforces the sliding window limit per identity.
//
// Every response carries X-RateLimit-Limit and X-RateLimit-Remaining. Rejected requests
// get 429 Too Many Requests with a Retry-After header and
// {"error": "Rate limit exceeded", "retry_after": N}.
//
// businessMetrics may be nil.
func SlidingWindowMiddleware(
	limiter Admitter,
	keyFunc KeyFunc,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	if keyFunc == nil {
		keyFunc = ClientIPKey
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		identity := keyFunc(c)

		decision, err := limiter.Admit(ctx, identity)
		if err != nil {
			logger.Debug("rate limit check aborted",
				slog.String("identity", identity),
				slog.Any("error", err))
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			if businessMetrics != nil {
				businessMetrics.RecordOperation(ctx, metrics.DomainRateLimit, "sliding_window", metrics.StatusRejected)
			}

			logger.Debug("rate limit exceeded",
				slog.String("identity", identity),
				slog.Duration("retry_after", decision.RetryAfter))

			httputil.AbortWithRateLimit(c, decision.RetryAfter)
			return
		}

		if businessMetrics != nil {
			businessMetrics.RecordOperation(ctx, metrics.DomainRateLimit, "sliding_window", metrics.StatusAllowed)
		}

		c.Next()
	}
}
