// Package domain defines the seller entity, the credential record behind login.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/errors"
)

// Seller is a registered account that can log in and own products.
type Seller struct {
	ID       uuid.UUID
	Username string
	Email    string
	FullName string
	// Password is the one-way hash of the seller's password, never the plaintext.
	Password  string
	Disabled  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the seller may use the API.
func (s *Seller) Active() bool {
	return !s.Disabled
}

// Domain-specific errors for seller operations.
var (
	// ErrSellerNotFound indicates the requested seller does not exist.
	ErrSellerNotFound = errors.Wrap(errors.ErrNotFound, "seller not found")

	// ErrSellerAlreadyExists indicates a seller with the same username already exists.
	ErrSellerAlreadyExists = errors.Wrap(errors.ErrConflict, "seller already exists")
)
