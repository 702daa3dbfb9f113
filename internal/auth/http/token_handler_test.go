package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/auth/http/dto"
	usecaseMocks "github.com/allisson/storefront/internal/auth/usecase/mocks"
)

func setupTokenRouter(authenticator *usecaseMocks.MockAuthenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewTokenHandler(authenticator, discardLogger())
	router := gin.New()
	router.POST("/v1/token", handler.IssueTokenHandler)
	return router
}

func TestTokenHandler_IssueTokenHandler(t *testing.T) {
	expiresAt := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)
	issued := &authDomain.IssuedToken{
		AccessToken: "header.payload.signature",
		TokenType:   authDomain.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}

	t.Run("Success_JSONBody", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Login", mock.Anything, "johndoe", "Secret123").Return(issued, nil)
		router := setupTokenRouter(authenticator)

		body, _ := json.Marshal(dto.IssueTokenRequest{Username: "johndoe", Password: "Secret123"})
		req := httptest.NewRequest(http.MethodPost, "/v1/token", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.IssueTokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "header.payload.signature", response.AccessToken)
		assert.Equal(t, "bearer", response.TokenType)
		assert.True(t, expiresAt.Equal(response.ExpiresAt))
		authenticator.AssertExpectations(t)
	})

	t.Run("Success_PasswordGrantForm", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Login", mock.Anything, "johndoe", "Secret123").Return(issued, nil)
		router := setupTokenRouter(authenticator)

		form := url.Values{}
		form.Set("grant_type", "password")
		form.Set("username", "johndoe")
		form.Set("password", "Secret123")
		req := httptest.NewRequest(http.MethodPost, "/v1/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token_type":"bearer"`)
		authenticator.AssertExpectations(t)
	})

	t.Run("Error_InvalidCredentials", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Login", mock.Anything, "johndoe", "wrong").
			Return(nil, authDomain.ErrAuthenticationFailed)
		router := setupTokenRouter(authenticator)

		req := httptest.NewRequest(
			http.MethodPost,
			"/v1/token",
			strings.NewReader(`{"username":"johndoe","password":"wrong"}`),
		)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Incorrect username or password"}`, w.Body.String())
		authenticator.AssertExpectations(t)
	})

	t.Run("Error_UnknownSellerSameBody", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Login", mock.Anything, "ghost", "Secret123").
			Return(nil, authDomain.ErrAuthenticationFailed)
		router := setupTokenRouter(authenticator)

		form := url.Values{}
		form.Set("username", "ghost")
		form.Set("password", "Secret123")
		req := httptest.NewRequest(http.MethodPost, "/v1/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, map[string]string{"detail": "Incorrect username or password"}, response)
	})

	t.Run("Error_InactiveSeller", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Login", mock.Anything, "johndoe", "Secret123").
			Return(nil, authDomain.ErrSellerDisabled)
		router := setupTokenRouter(authenticator)

		req := httptest.NewRequest(
			http.MethodPost,
			"/v1/token",
			strings.NewReader(`{"username":"johndoe","password":"Secret123"}`),
		)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		router := setupTokenRouter(&usecaseMocks.MockAuthenticator{})

		req := httptest.NewRequest(http.MethodPost, "/v1/token", strings.NewReader(`{"username":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_ValidationFailed", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{name: "missing username", body: `{"password":"Secret123"}`},
			{name: "blank username", body: `{"username":"   ","password":"Secret123"}`},
			{name: "missing password", body: `{"username":"johndoe"}`},
			{name: "unsupported grant", body: `{"grant_type":"client_credentials","username":"a","password":"b"}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				authenticator := &usecaseMocks.MockAuthenticator{}
				router := setupTokenRouter(authenticator)

				req := httptest.NewRequest(http.MethodPost, "/v1/token", strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
				authenticator.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Error_StoreFailure", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Login", mock.Anything, "johndoe", "Secret123").
			Return(nil, errors.New("connection refused"))
		router := setupTokenRouter(authenticator)

		req := httptest.NewRequest(
			http.MethodPost,
			"/v1/token",
			strings.NewReader(`{"username":"johndoe","password":"Secret123"}`),
		)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
