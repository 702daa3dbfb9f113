package domain

import "time"

// TokenTypeBearer is the OAuth2 token type returned by the token endpoint.
const TokenTypeBearer = "bearer"

// Claims is the set of assertions carried inside an access token.
type Claims struct {
	// Subject identifies the principal (the seller's username).
	Subject string
	// Name is an optional display name.
	Name string
	// Scope is an optional space-separated scope list.
	Scope string
	// Issuer is set when the codec is configured with one.
	Issuer string
	// ID is the unique token identifier (jti).
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedToken is the result of a successful login.
type IssuedToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}
