// Package usecase implements the product catalog operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/storefront/internal/product/domain"
)

// ProductInput contains the writable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       int64
}

// ProductRepository defines product persistence operations.
// Implementations must support transaction-aware operations via context propagation.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID. Returns ErrProductNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// List returns products ordered by creation time, newest first.
	List(ctx context.Context, offset, limit int) ([]*domain.Product, error)

	// ListBySeller returns the products owned by sellerID, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID, offset, limit int) ([]*domain.Product, error)

	// Update overwrites name, description and price. Returns ErrProductNotFound if not found.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product. Returns ErrProductNotFound if not found.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductUseCase defines product business operations. Writes take the ID of the
// authenticated seller performing them.
type ProductUseCase interface {
	Create(ctx context.Context, sellerID uuid.UUID, input ProductInput) (*domain.Product, error)

	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	List(ctx context.Context, offset, limit int) ([]*domain.Product, error)

	ListBySeller(ctx context.Context, sellerID uuid.UUID, offset, limit int) ([]*domain.Product, error)

	// Update changes a product owned by sellerID. Returns ErrProductNotOwned otherwise.
	Update(ctx context.Context, sellerID, id uuid.UUID, input ProductInput) (*domain.Product, error)

	// Delete removes a product owned by sellerID. Returns ErrProductNotOwned otherwise.
	Delete(ctx context.Context, sellerID, id uuid.UUID) error
}
