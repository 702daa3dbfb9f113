package dto

import (
	"time"

	"github.com/google/uuid"
)

// SellerResponse represents the API response for a seller.
// The password hash never leaves the service.
type SellerResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
