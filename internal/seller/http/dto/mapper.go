package dto

import (
	"github.com/allisson/storefront/internal/seller/domain"
	"github.com/allisson/storefront/internal/seller/usecase"
)

// ToRegisterSellerInput converts a RegisterSellerRequest DTO to a use case input.
// Sellers registered through the API always start enabled.
func ToRegisterSellerInput(req RegisterSellerRequest) usecase.RegisterSellerInput {
	return usecase.RegisterSellerInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	}
}

// ToSellerResponse converts a domain Seller to a SellerResponse DTO.
func ToSellerResponse(seller *domain.Seller) SellerResponse {
	return SellerResponse{
		ID:        seller.ID,
		Username:  seller.Username,
		Email:     seller.Email,
		FullName:  seller.FullName,
		Disabled:  seller.Disabled,
		CreatedAt: seller.CreatedAt,
		UpdatedAt: seller.UpdatedAt,
	}
}
