// Package app provides the dependency injection container that assembles the storefront.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/storefront/internal/clock"
	"github.com/allisson/storefront/internal/config"
	"github.com/allisson/storefront/internal/database"
	"github.com/allisson/storefront/internal/http"
	"github.com/allisson/storefront/internal/metrics"
	"github.com/allisson/storefront/internal/ratelimit"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created lazily on first access and cached; initialization errors are
// remembered so every later call reports the same failure.
type Container struct {
	config *config.Config

	// Infrastructure
	logger    *slog.Logger
	db        *sql.DB
	clock     clock.Clock
	txManager database.TxManager

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	metricsServer   *http.MetricsServer

	// Rate limiting
	rateLimiter *ratelimit.SlidingWindow

	// Auth, seller and product components (see di_auth.go, di_seller.go, di_product.go)
	authComponents
	sellerComponents
	productComponents

	httpServer *http.Server

	// background is canceled on Shutdown and stops goroutines owned by the container.
	background       context.Context
	cancelBackground context.CancelFunc

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	clockInit           sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	metricsServerInit   sync.Once
	rateLimiterInit     sync.Once
	httpServerInit      sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	background, cancel := context.WithCancel(context.Background())
	return &Container{
		config:           cfg,
		background:       background,
		cancelBackground: cancel,
		initErrors:       make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON structured logger configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Clock returns the time source shared by the token codec and the rate limiter.
func (c *Container) Clock() clock.Clock {
	c.clockInit.Do(func() {
		c.clock = clock.New()
	})
	return c.clock
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		var err error
		c.db, err = c.initDB()
		c.setError("db", err)
	})
	return c.db, c.storedError("db")
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		var err error
		c.txManager, err = c.initTxManager()
		c.setError("txManager", err)
	})
	return c.txManager, c.storedError("txManager")
}

// MetricsProvider returns the OpenTelemetry provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		var err error
		c.metricsProvider, err = c.initMetricsProvider()
		c.setError("metricsProvider", err)
	})
	return c.metricsProvider, c.storedError("metricsProvider")
}

// BusinessMetrics returns the business metrics recorder. It is a no-op recorder
// when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		var err error
		c.businessMetrics, err = c.initBusinessMetrics()
		c.setError("businessMetrics", err)
	})
	return c.businessMetrics, c.storedError("businessMetrics")
}

// MetricsServer returns the metrics HTTP server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		var err error
		c.metricsServer, err = c.initMetricsServer()
		c.setError("metricsServer", err)
	})
	return c.metricsServer, c.storedError("metricsServer")
}

// RateLimiter returns the sliding window limiter, or nil when rate limiting is disabled.
// The first call starts the background sweep when a sweep interval is configured.
func (c *Container) RateLimiter() (*ratelimit.SlidingWindow, error) {
	c.rateLimiterInit.Do(func() {
		var err error
		c.rateLimiter, err = c.initRateLimiter()
		c.setError("rateLimiter", err)
	})
	return c.rateLimiter, c.storedError("rateLimiter")
}

// HTTPServer returns the API server with its full route table.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		var err error
		c.httpServer, err = c.initHTTPServer()
		c.setError("httpServer", err)
	})
	return c.httpServer, c.storedError("httpServer")
}

// Shutdown stops background goroutines and releases every initialized resource.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelBackground()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) setError(name string, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.initErrors[name] = err
	c.mu.Unlock()
}

func (c *Container) storedError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// initLogger creates a JSON structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(c.background, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}

func (c *Container) initRateLimiter() (*ratelimit.SlidingWindow, error) {
	if !c.config.RateLimitEnabled {
		return nil, nil
	}

	limiter, err := ratelimit.NewSlidingWindow(c.config.RateLimitRequests, c.config.RateLimitWindow, c.Clock())
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	if c.config.RateLimitSweepInterval > 0 {
		go limiter.Run(c.background, c.config.RateLimitSweepInterval)
	}
	return limiter, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	deps := http.RouterDeps{}

	if deps.TokenHandler, err = c.TokenHandler(); err != nil {
		return nil, fmt.Errorf("failed to get token handler for http server: %w", err)
	}
	if deps.SellerHandler, err = c.SellerHandler(); err != nil {
		return nil, fmt.Errorf("failed to get seller handler for http server: %w", err)
	}
	if deps.ProductHandler, err = c.ProductHandler(); err != nil {
		return nil, fmt.Errorf("failed to get product handler for http server: %w", err)
	}
	if deps.Authenticator, err = c.Authenticator(); err != nil {
		return nil, fmt.Errorf("failed to get authenticator for http server: %w", err)
	}
	if deps.TokenCodec, err = c.TokenCodec(); err != nil {
		return nil, fmt.Errorf("failed to get token codec for http server: %w", err)
	}
	if deps.MetricsProvider, err = c.MetricsProvider(); err != nil {
		return nil, err
	}
	if deps.BusinessMetrics, err = c.BusinessMetrics(); err != nil {
		return nil, err
	}

	limiter, err := c.RateLimiter()
	if err != nil {
		return nil, err
	}
	if limiter != nil {
		deps.RateLimiter = limiter
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.background, c.config, deps)
	return server, nil
}
