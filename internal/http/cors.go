package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/allisson/storefront/internal/config"
)

// createCORSMiddleware returns nil unless CORS is enabled with at least one origin.
// CORS is disabled by default; the API is usually called server to server.
func createCORSMiddleware(cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.CORSEnabled {
		return nil
	}

	origins := cfg.CORSOrigins()
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no origins configured - CORS will not be applied")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	allowHeaders := []string{"Authorization", "Content-Type"}
	if cfg.AuthAPIKeyEnabled && cfg.AuthAPIKeyHeader != "" {
		allowHeaders = append(allowHeaders, cfg.AuthAPIKeyHeader)
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: allowHeaders,
		// Browser clients need the rate limit headers to back off.
		ExposeHeaders: []string{
			"X-Request-Id",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"Retry-After",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
