// Package dto provides data transfer objects for the product HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/storefront/internal/product/usecase"
	customValidation "github.com/allisson/storefront/internal/validation"
)

// ProductRequest is the body of product create and update requests.
// Price is in minor currency units.
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       *int64 `json:"price"`
}

// Validate checks request shape; business rules are enforced by the use case.
func (r *ProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Price,
			validation.NotNil.Error("price is required"),
		),
	)
}

// ToProductInput converts the request to a use case input.
func (r *ProductRequest) ToProductInput() usecase.ProductInput {
	input := usecase.ProductInput{
		Name:        r.Name,
		Description: r.Description,
	}
	if r.Price != nil {
		input.Price = *r.Price
	}
	return input
}
