package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// bcryptPrefix marks hashes produced by the bcrypt family ($2a$, $2b$, $2y$).
const bcryptPrefix = "$2"

// passwordHasher writes Argon2id hashes and still accepts bcrypt hashes imported
// from older credential stores.
type passwordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// Hash hashes plaintext with Argon2id in PHC string format.
func (p *passwordHasher) Hash(plaintext string) (string, error) {
	hash, err := p.hasher.Hash([]byte(plaintext))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify compares plaintext against an Argon2id or bcrypt hash.
func (p *passwordHasher) Verify(plaintext, hash string) bool {
	if strings.HasPrefix(hash, bcryptPrefix) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
	}

	ok, err := p.hasher.Verify([]byte(plaintext), hash)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordHasher creates a PasswordHasher using the interactive Argon2id policy.
func NewPasswordHasher() PasswordHasher {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &passwordHasher{hasher: hasher}
}
