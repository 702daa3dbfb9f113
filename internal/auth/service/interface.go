// Package service provides the technical building blocks of authentication: password
// hashing, access token encoding and signing secret resolution.
package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
)

// PasswordHasher hashes and verifies seller passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of plaintext. Hashing the same plaintext twice
	// yields different strings.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. Malformed or unsupported hashes
	// never match.
	Verify(plaintext, hash string) bool
}

// TokenCodec issues and validates signed, self-contained access tokens. The secret and
// algorithm are fixed per instance.
type TokenCodec interface {
	// Issue signs claims with an expiry of now + ttl and returns the token together with
	// the expiry instant written into it.
	Issue(claims authDomain.Claims, ttl time.Duration) (token string, expiresAt time.Time, err error)

	// Validate checks the token signature and expiry and returns the claims it carries.
	// It fails with ErrTokenSignature, ErrTokenExpired or ErrTokenMalformed.
	Validate(token string) (*authDomain.Claims, error)
}

// Keeper decrypts data with a key held by a key management service.
// *secrets.Keeper from gocloud.dev implements it.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for KMS key URIs.
type KMSService interface {
	// OpenKeeper opens a Keeper for keyURI. Supported schemes are gcpkms://, awskms://,
	// azurekeyvault://, hashivault:// and base64key://.
	OpenKeeper(ctx context.Context, keyURI string) (Keeper, error)
}
