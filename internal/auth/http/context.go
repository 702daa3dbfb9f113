// Package http provides the request gate, rate limiting middleware and the token
// endpoint.
package http

import (
	"context"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	sellerDomain "github.com/allisson/storefront/internal/seller/domain"
)

// principalKey is a context key type for storing the gate's principal.
type principalKey struct{}

// sellerKey is a context key type for storing the active seller.
type sellerKey struct{}

// WithPrincipal stores the authenticated principal in the context.
func WithPrincipal(ctx context.Context, principal *authDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the authenticated principal from the context.
// Returns (principal, true) if present, or (nil, false) if the gate did not run.
func GetPrincipal(ctx context.Context) (*authDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*authDomain.Principal)
	return principal, ok
}

// WithSeller stores the active seller behind a bearer token in the context.
func WithSeller(ctx context.Context, seller *sellerDomain.Seller) context.Context {
	return context.WithValue(ctx, sellerKey{}, seller)
}

// GetSeller retrieves the active seller set by RequireActiveSeller.
func GetSeller(ctx context.Context) (*sellerDomain.Seller, bool) {
	seller, ok := ctx.Value(sellerKey{}).(*sellerDomain.Seller)
	return seller, ok && seller != nil
}
