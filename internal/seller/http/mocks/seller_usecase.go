// Package mocks provides mock implementations of the seller use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/storefront/internal/seller/domain"
	"github.com/allisson/storefront/internal/seller/usecase"
)

// MockSellerUseCase is a mock implementation of usecase.SellerUseCase.
type MockSellerUseCase struct {
	mock.Mock
}

// Register mocks the Register method.
func (m *MockSellerUseCase) Register(
	ctx context.Context,
	input usecase.RegisterSellerInput,
) (*domain.Seller, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seller), args.Error(1)
}

// GetByID mocks the GetByID method.
func (m *MockSellerUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seller), args.Error(1)
}

// GetByUsername mocks the GetByUsername method.
func (m *MockSellerUseCase) GetByUsername(ctx context.Context, username string) (*domain.Seller, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seller), args.Error(1)
}
