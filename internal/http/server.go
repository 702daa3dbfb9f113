// Package http provides the HTTP server, its route table and request handlers.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/storefront/internal/auth/http"
	authService "github.com/allisson/storefront/internal/auth/service"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	"github.com/allisson/storefront/internal/config"
	"github.com/allisson/storefront/internal/metrics"
	productHTTP "github.com/allisson/storefront/internal/product/http"
	sellerHTTP "github.com/allisson/storefront/internal/seller/http"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// RouterDeps collects the handlers and collaborators the route table is built from.
type RouterDeps struct {
	TokenHandler   *authHTTP.TokenHandler
	SellerHandler  *sellerHTTP.SellerHandler
	ProductHandler *productHTTP.ProductHandler

	Authenticator authUseCase.Authenticator
	TokenCodec    authService.TokenCodec

	// RateLimiter guards every route when set.
	RateLimiter authHTTP.Admitter

	// MetricsProvider and BusinessMetrics may be nil when metrics are disabled.
	MetricsProvider *metrics.Provider
	BusinessMetrics metrics.BusinessMetrics
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// listenAndServe blocks until srv stops. A graceful shutdown is not an error.
func listenAndServe(logger *slog.Logger, name string, srv *http.Server) error {
	logger.Info("starting "+name, slog.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// SetupRouter builds the route table. Middleware runs in a fixed order:
// recovery, request ID, request logging, CORS, HTTP metrics, sliding window
// rate limit, API key gate. Write routes additionally require a bearer token
// of an active seller.
//
// ctx bounds background goroutines started by middleware (token bucket cleanup).
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDeps) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			deps.MetricsProvider.MeterProvider(),
			cfg.MetricsNamespace,
			"/health",
			"/ready",
		))
	}

	if deps.RateLimiter != nil {
		router.Use(authHTTP.SlidingWindowMiddleware(
			deps.RateLimiter,
			authHTTP.ClientIPKey,
			deps.BusinessMetrics,
			s.logger,
		))
	}

	if cfg.AuthAPIKeyEnabled {
		keys := cfg.APIKeys()
		if len(keys) == 0 {
			s.logger.Warn("API key gate enabled without keys - every non-bypassed request will be rejected")
		}
		router.Use(authHTTP.GateMiddleware(
			authHTTP.APIKeyPolicy{Header: cfg.AuthAPIKeyHeader, Keys: keys},
			authHTTP.NewBypassMatcher(cfg.BypassPaths()),
			s.logger,
		))
	}

	router.GET("/", s.rootHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	tokenRoute := []gin.HandlerFunc{}
	if cfg.RateLimitTokenEnabled {
		tokenRoute = append(tokenRoute, authHTTP.TokenRateLimitMiddleware(
			ctx,
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		))
	}
	tokenRoute = append(tokenRoute, deps.TokenHandler.IssueTokenHandler)
	v1.POST("/token", tokenRoute...)

	v1.POST("/sellers", deps.SellerHandler.RegisterHandler)
	v1.GET("/products", deps.ProductHandler.ListHandler)
	v1.GET("/products/:id", deps.ProductHandler.GetHandler)

	seller := v1.Group("")
	seller.Use(authHTTP.GateMiddleware(
		authHTTP.BearerPolicy{Codec: deps.TokenCodec},
		authHTTP.BypassMatcher{},
		s.logger,
	))
	seller.Use(authHTTP.RequireActiveSeller(deps.Authenticator, s.logger))
	{
		seller.GET("/sellers/me", deps.SellerHandler.MeHandler)
		seller.GET("/sellers/me/products", deps.ProductHandler.ListMineHandler)
		seller.POST("/products", deps.ProductHandler.CreateHandler)
		seller.PUT("/products/:id", deps.ProductHandler.UpdateHandler)
		seller.DELETE("/products/:id", deps.ProductHandler.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}
	s.server.Handler = s.router

	return listenAndServe(s.logger, "api server", s.server)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Storefront API"})
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
