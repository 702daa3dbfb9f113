// Package mocks provides mock implementations of the authentication use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	sellerDomain "github.com/allisson/storefront/internal/seller/domain"
)

// MockAuthenticator is a mock implementation of usecase.Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

// Login mocks the Login method of Authenticator.
func (m *MockAuthenticator) Login(
	ctx context.Context,
	username, password string,
) (*authDomain.IssuedToken, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

// Principal mocks the Principal method of Authenticator.
func (m *MockAuthenticator) Principal(
	ctx context.Context,
	claims *authDomain.Claims,
) (*sellerDomain.Seller, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sellerDomain.Seller), args.Error(1)
}
