package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/auth/usecase"
	usecaseMocks "github.com/allisson/storefront/internal/auth/usecase/mocks"
	sellerDomain "github.com/allisson/storefront/internal/seller/domain"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestAuthenticatorWithMetrics(t *testing.T) {
	mockNext := &usecaseMocks.MockAuthenticator{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewAuthenticatorWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()

	t.Run("Login success", func(t *testing.T) {
		output := &authDomain.IssuedToken{AccessToken: "token", TokenType: "bearer"}

		mockNext.On("Login", ctx, "johndoe", "secret").Return(output, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "login", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "login", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Login(ctx, "johndoe", "secret")
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Login error", func(t *testing.T) {
		mockNext.On("Login", ctx, "johndoe", "wrong").Return(nil, authDomain.ErrAuthenticationFailed).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "login", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "login", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Login(ctx, "johndoe", "wrong")
		assert.ErrorIs(t, err, authDomain.ErrAuthenticationFailed)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Principal success", func(t *testing.T) {
		claims := &authDomain.Claims{Subject: "johndoe"}
		seller := &sellerDomain.Seller{Username: "johndoe"}

		mockNext.On("Principal", ctx, claims).Return(seller, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "principal", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "principal", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Principal(ctx, claims)
		assert.NoError(t, err)
		assert.Equal(t, seller, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Principal error", func(t *testing.T) {
		claims := &authDomain.Claims{Subject: "ghost"}
		expectedErr := errors.New("database unavailable")

		mockNext.On("Principal", ctx, claims).Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "principal", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "principal", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		_, err := uc.Principal(ctx, claims)
		assert.Equal(t, expectedErr, err)
		mockMetrics.AssertExpectations(t)
	})
}
