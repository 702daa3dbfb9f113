// Package dto provides data transfer objects for the seller HTTP layer.
package dto

// RegisterSellerRequest represents the API request for seller registration.
// Field rules are enforced by the seller use case.
type RegisterSellerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}
