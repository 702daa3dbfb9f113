// Package usecase defines the authentication business logic: credential verification,
// token issuance and resolution of the seller behind a token.
package usecase

import (
	"context"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	sellerDomain "github.com/allisson/storefront/internal/seller/domain"
)

// CredentialStore looks up credential records by login identity.
// Implementations return ErrSellerNotFound when the identity is unknown.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*sellerDomain.Seller, error)
}

// Authenticator verifies credentials and issues access tokens.
type Authenticator interface {
	// Login verifies username and password and issues an access token whose subject is
	// the username.
	//
	// Security Notes:
	//   - An unknown username and a wrong password both return ErrAuthenticationFailed
	//     and take comparable time, so callers cannot probe for registered usernames
	//   - A disabled seller is only reported (ErrSellerDisabled) after the password matched
	Login(ctx context.Context, username, password string) (*authDomain.IssuedToken, error)

	// Principal resolves the active seller named by validated token claims.
	// Returns ErrUnauthorized wrapped errors when the subject no longer exists and
	// ErrSellerDisabled when the seller was disabled after the token was issued.
	Principal(ctx context.Context, claims *authDomain.Claims) (*sellerDomain.Seller, error)
}
