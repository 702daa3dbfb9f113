package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/storefront/internal/clock"
	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/ratelimit"
)

// recordingMetrics captures RecordOperation calls.
type recordingMetrics struct {
	mu       sync.Mutex
	statuses []string
}

func (r *recordingMetrics) RecordOperation(_ context.Context, _, _, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func (r *recordingMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}

// canceledAdmitter always reports a canceled request.
type canceledAdmitter struct{}

func (canceledAdmitter) Admit(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, context.Canceled
}

func newRateLimitedRouter(limiter Admitter, bm *recordingMetrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if bm != nil {
		router.Use(SlidingWindowMiddleware(limiter, nil, bm, discardLogger()))
	} else {
		router.Use(SlidingWindowMiddleware(limiter, nil, nil, discardLogger()))
	}
	router.GET("/v1/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func requestFrom(router http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSlidingWindowMiddleware(t *testing.T) {
	t.Run("admits up to the limit then returns 429", func(t *testing.T) {
		fake := clock.NewFake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		limiter, err := ratelimit.NewSlidingWindow(5, 60*time.Second, fake)
		require.NoError(t, err)
		bm := &recordingMetrics{}
		router := newRateLimitedRouter(limiter, bm)

		for i := 0; i < 5; i++ {
			w := requestFrom(router, "10.0.0.1:1234")
			require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
			assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		}

		w := requestFrom(router, "10.0.0.1:1234")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.JSONEq(t, `{"error":"Rate limit exceeded","retry_after":60}`, w.Body.String())

		assert.Equal(t, []string{"allowed", "allowed", "allowed", "allowed", "allowed", "rejected"}, bm.statuses)

		// Other clients are unaffected.
		w = requestFrom(router, "10.0.0.2:1234")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("admits again after the window elapses", func(t *testing.T) {
		fake := clock.NewFake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		limiter, err := ratelimit.NewSlidingWindow(1, 10*time.Second, fake)
		require.NoError(t, err)
		router := newRateLimitedRouter(limiter, nil)

		require.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.1:1234").Code)

		fake.Advance(4 * time.Second)
		w := requestFrom(router, "10.0.0.1:1234")
		require.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "6", w.Header().Get("Retry-After"))

		fake.Advance(6 * time.Second)
		assert.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.1:1234").Code)
	})

	t.Run("aborted admission returns 503", func(t *testing.T) {
		router := newRateLimitedRouter(canceledAdmitter{}, nil)

		w := requestFrom(router, "10.0.0.1:1234")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	})
}

func TestSlidingWindowMiddleware_RejectionError(t *testing.T) {
	fake := clock.NewFake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	limiter, err := ratelimit.NewSlidingWindow(1, 60*time.Second, fake)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	var errs []error
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		for _, e := range c.Errors {
			errs = append(errs, e.Err)
		}
	})
	router.Use(SlidingWindowMiddleware(limiter, nil, nil, discardLogger()))
	router.GET("/v1/products", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	require.Equal(t, http.StatusOK, requestFrom(router, "10.0.0.1:1234").Code)
	assert.Empty(t, errs)

	require.Equal(t, http.StatusTooManyRequests, requestFrom(router, "10.0.0.1:1234").Code)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], apperrors.ErrTooManyRequests)
}

func TestClientIPKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got string
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		got = ClientIPKey(c)
	})

	requestFromPath := httptest.NewRequest(http.MethodGet, "/", nil)
	requestFromPath.RemoteAddr = "192.0.2.10:5555"
	router.ServeHTTP(httptest.NewRecorder(), requestFromPath)

	assert.Equal(t, "192.0.2.10", got)
}
