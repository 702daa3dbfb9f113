package usecase

import (
	"context"
	"log/slog"
	"time"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authService "github.com/allisson/storefront/internal/auth/service"
	apperrors "github.com/allisson/storefront/internal/errors"
	sellerDomain "github.com/allisson/storefront/internal/seller/domain"
)

// dummyPassword is hashed once per authenticator so that logins for unknown usernames
// still pay for a full hash verification.
const dummyPassword = "storefront-timing-equalizer"

// authenticator implements Authenticator.
type authenticator struct {
	store     CredentialStore
	hasher    authService.PasswordHasher
	codec     authService.TokenCodec
	ttl       time.Duration
	dummyHash string
	logger    *slog.Logger
}

// NewAuthenticator creates an Authenticator issuing tokens valid for ttl.
func NewAuthenticator(
	store CredentialStore,
	hasher authService.PasswordHasher,
	codec authService.TokenCodec,
	ttl time.Duration,
	logger *slog.Logger,
) (Authenticator, error) {
	if ttl <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token expiration must be positive")
	}

	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to prepare dummy password hash")
	}

	return &authenticator{
		store:     store,
		hasher:    hasher,
		codec:     codec,
		ttl:       ttl,
		dummyHash: dummyHash,
		logger:    logger,
	}, nil
}

// Login verifies credentials and issues an access token.
func (a *authenticator) Login(ctx context.Context, username, password string) (*authDomain.IssuedToken, error) {
	seller, err := a.store.GetByUsername(ctx, username)
	if err != nil {
		if !apperrors.Is(err, sellerDomain.ErrSellerNotFound) {
			return nil, err
		}
		a.hasher.Verify(password, a.dummyHash)
		a.logger.DebugContext(ctx, "login rejected",
			slog.String("username", username),
			slog.String("reason", "unknown_identity"),
		)
		return nil, authDomain.ErrAuthenticationFailed
	}

	if !a.hasher.Verify(password, seller.Password) {
		a.logger.DebugContext(ctx, "login rejected",
			slog.String("username", username),
			slog.String("reason", "invalid_credential"),
		)
		return nil, authDomain.ErrAuthenticationFailed
	}

	if !seller.Active() {
		return nil, authDomain.ErrSellerDisabled
	}

	token, expiresAt, err := a.codec.Issue(authDomain.Claims{
		Subject: seller.Username,
		Name:    seller.FullName,
	}, a.ttl)
	if err != nil {
		return nil, err
	}

	return &authDomain.IssuedToken{
		AccessToken: token,
		TokenType:   authDomain.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

// Principal resolves the seller named by claims.
func (a *authenticator) Principal(ctx context.Context, claims *authDomain.Claims) (*sellerDomain.Seller, error) {
	if claims == nil || claims.Subject == "" {
		return nil, authDomain.ErrTokenMalformed
	}

	seller, err := a.store.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if apperrors.Is(err, sellerDomain.ErrSellerNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "token subject no longer exists")
		}
		return nil, err
	}

	if !seller.Active() {
		return nil, authDomain.ErrSellerDisabled
	}

	return seller, nil
}
