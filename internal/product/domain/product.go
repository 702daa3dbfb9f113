// Package domain defines the product entity listed by sellers.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/errors"
)

// Product is an item offered by a seller. Price is expressed in minor currency
// units (cents) to avoid floating point rounding.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int64
	SellerID    uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether sellerID owns the product.
func (p *Product) OwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}

// Domain-specific errors for product operations.
var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.Wrap(errors.ErrNotFound, "product not found")

	// ErrProductNotOwned indicates a seller tried to change another seller's product.
	ErrProductNotOwned = errors.Wrap(errors.ErrForbidden, "product belongs to another seller")
)
