// Package usecase implements seller registration and lookup.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/seller/domain"
)

// RegisterSellerInput contains the input data for seller registration.
type RegisterSellerInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Disabled bool
}

// SellerRepository defines seller persistence operations.
// Implementations must support transaction-aware operations via context propagation.
type SellerRepository interface {
	// Create stores a new seller. Returns ErrSellerAlreadyExists on a duplicate username.
	Create(ctx context.Context, seller *domain.Seller) error

	// GetByID retrieves a seller by ID. Returns ErrSellerNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)

	// GetByUsername retrieves a seller by username. Returns ErrSellerNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*domain.Seller, error)
}

// SellerUseCase defines seller business operations.
type SellerUseCase interface {
	// Register validates the input, hashes the password and stores a new seller.
	Register(ctx context.Context, input RegisterSellerInput) (*domain.Seller, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)

	GetByUsername(ctx context.Context, username string) (*domain.Seller, error)
}
