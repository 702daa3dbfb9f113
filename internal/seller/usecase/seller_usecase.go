package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authService "github.com/allisson/storefront/internal/auth/service"
	"github.com/allisson/storefront/internal/database"
	"github.com/allisson/storefront/internal/seller/domain"
	appValidation "github.com/allisson/storefront/internal/validation"
)

// sellerUseCase implements SellerUseCase.
type sellerUseCase struct {
	txManager  database.TxManager
	sellerRepo SellerRepository
	hasher     authService.PasswordHasher
}

// NewSellerUseCase creates a new SellerUseCase.
func NewSellerUseCase(
	txManager database.TxManager,
	sellerRepo SellerRepository,
	hasher authService.PasswordHasher,
) SellerUseCase {
	return &sellerUseCase{
		txManager:  txManager,
		sellerRepo: sellerRepo,
		hasher:     hasher,
	}
}

// validateRegisterInput validates registration input with jellydator/validation.
func validateRegisterInput(input RegisterSellerInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 64).Error("username must be between 3 and 64 characters"),
			appValidation.Username,
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.FullName,
			validation.Length(0, 255).Error("full name must be at most 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register registers a new seller. Usernames are stored as given; emails are
// lower-cased.
func (s *sellerUseCase) Register(ctx context.Context, input RegisterSellerInput) (*domain.Seller, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	seller := &domain.Seller{
		ID:       uuid.Must(uuid.NewV7()),
		Username: input.Username,
		Email:    strings.TrimSpace(strings.ToLower(input.Email)),
		FullName: strings.TrimSpace(input.FullName),
		Password: hashedPassword,
		Disabled: input.Disabled,
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.sellerRepo.Create(ctx, seller); err != nil {
			return err
		}

		// Read back to pick up database generated timestamps
		created, err := s.sellerRepo.GetByID(ctx, seller.ID)
		if err != nil {
			return err
		}
		seller = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return seller, nil
}

// GetByID retrieves a seller by ID.
func (s *sellerUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	return s.sellerRepo.GetByID(ctx, id)
}

// GetByUsername retrieves a seller by username.
func (s *sellerUseCase) GetByUsername(ctx context.Context, username string) (*domain.Seller, error) {
	return s.sellerRepo.GetByUsername(ctx, username)
}
