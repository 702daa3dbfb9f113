// Package dto provides data transfer objects for the token endpoint.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/storefront/internal/validation"
)

// GrantTypePassword is the only OAuth2 grant accepted by the token endpoint.
const GrantTypePassword = "password"

// IssueTokenRequest carries login credentials, either as JSON or as an OAuth2
// password grant form.
type IssueTokenRequest struct {
	GrantType string `json:"grant_type" form:"grant_type"`
	Username  string `json:"username"   form:"username"`
	Password  string `json:"password"   form:"password"`
}

// Validate checks if the token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.GrantType,
			validation.In(GrantTypePassword).Error("unsupported grant type"),
		),
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}
