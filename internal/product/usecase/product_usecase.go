package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/storefront/internal/database"
	"github.com/allisson/storefront/internal/product/domain"
	appValidation "github.com/allisson/storefront/internal/validation"
)

// maxPrice caps prices at one billion in minor units.
const maxPrice int64 = 100_000_000_000

type productUseCase struct {
	txManager   database.TxManager
	productRepo ProductRepository
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(txManager database.TxManager, productRepo ProductRepository) ProductUseCase {
	return &productUseCase{
		txManager:   txManager,
		productRepo: productRepo,
	}
}

func validateProductInput(input ProductInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 4096).Error("description must be at most 4096 characters"),
		),
		validation.Field(&input.Price,
			validation.Min(int64(0)).Error("price must not be negative"),
			validation.Max(maxPrice).Error("price is too large"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create stores a new product owned by sellerID.
func (p *productUseCase) Create(
	ctx context.Context,
	sellerID uuid.UUID,
	input ProductInput,
) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		SellerID:    sellerID,
	}

	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := p.productRepo.Create(ctx, product); err != nil {
			return err
		}

		created, err := p.productRepo.GetByID(ctx, product.ID)
		if err != nil {
			return err
		}
		product = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// Get retrieves a product by ID.
func (p *productUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return p.productRepo.GetByID(ctx, id)
}

// List returns a page of products.
func (p *productUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	return p.productRepo.List(ctx, offset, limit)
}

// ListBySeller returns a page of the products owned by sellerID.
func (p *productUseCase) ListBySeller(
	ctx context.Context,
	sellerID uuid.UUID,
	offset, limit int,
) ([]*domain.Product, error) {
	return p.productRepo.ListBySeller(ctx, sellerID, offset, limit)
}

// Update replaces the writable fields of a product owned by sellerID.
func (p *productUseCase) Update(
	ctx context.Context,
	sellerID, id uuid.UUID,
	input ProductInput,
) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	var product *domain.Product
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := p.productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !existing.OwnedBy(sellerID) {
			return domain.ErrProductNotOwned
		}

		existing.Name = strings.TrimSpace(input.Name)
		existing.Description = input.Description
		existing.Price = input.Price
		if err := p.productRepo.Update(ctx, existing); err != nil {
			return err
		}

		product, err = p.productRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product owned by sellerID.
func (p *productUseCase) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := p.productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !existing.OwnedBy(sellerID) {
			return domain.ErrProductNotOwned
		}

		return p.productRepo.Delete(ctx, id)
	})
}
