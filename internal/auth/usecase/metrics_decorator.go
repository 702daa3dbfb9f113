package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/metrics"
	sellerDomain "github.com/allisson/storefront/internal/seller/domain"
)

// authenticatorWithMetrics decorates Authenticator with metrics instrumentation.
type authenticatorWithMetrics struct {
	next    Authenticator
	metrics metrics.BusinessMetrics
}

// NewAuthenticatorWithMetrics wraps an Authenticator with metrics recording.
func NewAuthenticatorWithMetrics(authenticator Authenticator, m metrics.BusinessMetrics) Authenticator {
	return &authenticatorWithMetrics{
		next:    authenticator,
		metrics: m,
	}
}

// Login records metrics for login attempts.
func (a *authenticatorWithMetrics) Login(
	ctx context.Context,
	username, password string,
) (*authDomain.IssuedToken, error) {
	start := time.Now()
	token, err := a.next.Login(ctx, username, password)

	metrics.Observe(ctx, a.metrics, metrics.DomainAuth, "login", start, err)

	return token, err
}

// Principal records metrics for token subject resolution.
func (a *authenticatorWithMetrics) Principal(
	ctx context.Context,
	claims *authDomain.Claims,
) (*sellerDomain.Seller, error) {
	start := time.Now()
	seller, err := a.next.Principal(ctx, claims)

	metrics.Observe(ctx, a.metrics, metrics.DomainAuth, "principal", start, err)

	return seller, err
}
