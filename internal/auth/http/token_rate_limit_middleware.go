package http

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/allisson/storefront/internal/httputil"
)

const (
	tokenLimiterCleanupInterval = 5 * time.Minute
	tokenLimiterIdleTimeout     = time.Hour
)

// tokenRateLimiterStore holds per-IP token buckets with automatic cleanup.
type tokenRateLimiterStore struct {
	limiters sync.Map // map[string]*tokenRateLimiterEntry (IP -> limiter)
	rps      float64
	burst    int
}

// tokenRateLimiterEntry holds a token bucket and its last access time for cleanup.
type tokenRateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// TokenRateLimitMiddleware enforces a per-IP token bucket on the token endpoint, on top
// of the global sliding window, to slow down credential stuffing and password guessing.
//
// The cleanup goroutine for idle buckets stops when ctx is done.
//
// Returns:
//   - 429 Too Many Requests: bucket empty (includes Retry-After header)
//   - Continues: request allowed
func TokenRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &tokenRateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	go store.cleanupStale(ctx, tokenLimiterCleanupInterval, tokenLimiterIdleTimeout)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP, time.Now())

		if !limiter.Allow() {
			// Peek at the delay until the next token without consuming it
			reservation := limiter.Reserve()
			retryAfter := reservation.Delay()
			reservation.Cancel()

			logger.Debug("token rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Duration("retry_after", retryAfter))

			httputil.AbortWithRateLimit(c, retryAfter)
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates the bucket for an IP address.
func (s *tokenRateLimiterStore) getLimiter(ip string, now time.Time) *rate.Limiter {
	val, loaded := s.limiters.Load(ip)
	if !loaded {
		val, _ = s.limiters.LoadOrStore(ip, &tokenRateLimiterEntry{
			limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
			lastAccess: now,
		})
	}

	entry := val.(*tokenRateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = now
	entry.mu.Unlock()
	return entry.limiter
}

// sweep removes buckets idle since before threshold and returns how many were removed.
func (s *tokenRateLimiterStore) sweep(threshold time.Time) int {
	removed := 0
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*tokenRateLimiterEntry)
		entry.mu.Lock()
		shouldDelete := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if shouldDelete {
			s.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// cleanupStale periodically removes buckets idle for longer than idle.
func (s *tokenRateLimiterStore) cleanupStale(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(time.Now().Add(-idle))
		}
	}
}
