package domain

import (
	"github.com/allisson/storefront/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrAuthenticationFailed is returned by login for an unknown identity and for a wrong
	// password alike, so callers cannot tell which one happened.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrUnauthorized, "incorrect username or password")

	// ErrSellerDisabled indicates the credentials were valid but the account is disabled.
	ErrSellerDisabled = errors.Wrap(errors.ErrForbidden, "inactive seller")

	// ErrTokenSignature indicates the token was not signed by this service with the
	// configured algorithm.
	ErrTokenSignature = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")

	// ErrTokenExpired indicates the token's expiry instant has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrTokenMalformed indicates the token could not be decoded or lacks required claims.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "malformed token")

	// ErrMissingCredentials indicates the request carried no credential at all.
	ErrMissingCredentials = errors.Wrap(errors.ErrUnauthorized, "missing credentials")

	// ErrInvalidAPIKey indicates the presented API key is not in the allow-list.
	ErrInvalidAPIKey = errors.Wrap(errors.ErrUnauthorized, "invalid api key")
)
