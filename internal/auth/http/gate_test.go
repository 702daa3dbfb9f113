package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authService "github.com/allisson/storefront/internal/auth/service"
	usecaseMocks "github.com/allisson/storefront/internal/auth/usecase/mocks"
	"github.com/allisson/storefront/internal/clock"
	apperrors "github.com/allisson/storefront/internal/errors"
	sellerDomain "github.com/allisson/storefront/internal/seller/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCodec(t *testing.T) (authService.TokenCodec, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	codec, err := authService.NewTokenCodec([]byte("gate-secret"), "HS256", "", fake)
	require.NoError(t, err)
	return codec, fake
}

// newGateRouter mounts the gate globally and echoes the principal kind.
func newGateRouter(authorizer Authorizer, bypass []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GateMiddleware(authorizer, NewBypassMatcher(bypass), discardLogger()))

	handler := func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			c.JSON(http.StatusOK, gin.H{"principal": "none"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"principal": string(principal.Kind), "subject": principal.Subject})
	}
	router.GET("/", handler)
	router.GET("/docs", handler)
	router.GET("/public/*path", handler)
	router.GET("/v1/products", handler)
	return router
}

func doRequest(router http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAPIKeyPolicy_Authorize(t *testing.T) {
	policy := APIKeyPolicy{Header: "X-API-Key", Keys: []string{"secret_key_1", "secret_key_2"}}

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "first key", key: "secret_key_1"},
		{name: "second key", key: "secret_key_2"},
		{name: "missing", key: "", wantErr: authDomain.ErrMissingCredentials},
		{name: "unknown", key: "secret_key_3", wantErr: authDomain.ErrInvalidAPIKey},
		{name: "prefix of valid key", key: "secret_key", wantErr: authDomain.ErrInvalidAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}

			principal, err := policy.Authorize(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
				assert.Nil(t, principal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, authDomain.PrincipalAPIKey, principal.Kind)
		})
	}

	t.Run("empty allow-list denies everything", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-Key", "anything")

		_, err := APIKeyPolicy{Header: "X-API-Key"}.Authorize(req)
		assert.ErrorIs(t, err, authDomain.ErrInvalidAPIKey)
	})
}

func TestBearerPolicy_Authorize(t *testing.T) {
	codec, fake := newTestCodec(t)
	policy := BearerPolicy{Codec: codec}

	token, _, err := codec.Issue(authDomain.Claims{Subject: "johndoe"}, time.Minute)
	require.NoError(t, err)

	t.Run("valid token with any scheme case", func(t *testing.T) {
		for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", scheme+" "+token)

			principal, err := policy.Authorize(req)
			require.NoError(t, err, scheme)
			assert.Equal(t, authDomain.PrincipalBearer, principal.Kind)
			assert.Equal(t, "johndoe", principal.Subject)
			assert.Equal(t, "johndoe", principal.Claims.Subject)
		}
	})

	t.Run("missing or malformed header", func(t *testing.T) {
		for _, header := range []string{"", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz", token} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", header)

			_, err := policy.Authorize(req)
			assert.ErrorIs(t, err, authDomain.ErrMissingCredentials, header)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		_, err := policy.Authorize(req)
		assert.ErrorIs(t, err, authDomain.ErrTokenMalformed)
	})

	t.Run("expired token", func(t *testing.T) {
		fake.Advance(time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		_, err := policy.Authorize(req)
		assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
	})
}

func TestBypassMatcher(t *testing.T) {
	matcher := NewBypassMatcher([]string{"/", "/docs", "/public/*"})

	assert.True(t, matcher.Match("/"))
	assert.True(t, matcher.Match("/docs"))
	assert.True(t, matcher.Match("/public/logo.png"))
	assert.True(t, matcher.Match("/public/a/b"))
	assert.False(t, matcher.Match("/public"))
	assert.False(t, matcher.Match("/docs/extra"))
	assert.False(t, matcher.Match("/v1/products"))

	var empty BypassMatcher
	assert.False(t, empty.Match("/"))
}

func TestGateMiddleware_APIKey(t *testing.T) {
	policy := APIKeyPolicy{Header: "X-API-Key", Keys: []string{"secret_key_1"}}
	router := newGateRouter(policy, []string{"/", "/docs", "/public/*"})

	t.Run("bypassed paths need no credential", func(t *testing.T) {
		for _, path := range []string{"/", "/docs", "/public/index.html"} {
			w := doRequest(router, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.JSONEq(t, `{"principal":"none"}`, w.Body.String(), path)
		}
	})

	t.Run("valid key passes and sets principal", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/products", map[string]string{"X-API-Key": "secret_key_1"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"principal":"api_key","subject":""}`, w.Body.String())
	})

	t.Run("missing and invalid keys are indistinguishable", func(t *testing.T) {
		missing := doRequest(router, http.MethodGet, "/v1/products", nil)
		invalid := doRequest(router, http.MethodGet, "/v1/products", map[string]string{"X-API-Key": "nope"})

		for _, w := range []*httptest.ResponseRecorder{missing, invalid} {
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"detail":"Invalid or missing API key"}`, w.Body.String())
			assert.Empty(t, w.Header().Get("WWW-Authenticate"))
		}
	})
}

func TestGateMiddleware_Bearer(t *testing.T) {
	codec, fake := newTestCodec(t)
	router := newGateRouter(BearerPolicy{Codec: codec}, []string{"/"})

	token, _, err := codec.Issue(authDomain.Claims{Subject: "johndoe"}, time.Minute)
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/v1/products", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"principal":"bearer","subject":"johndoe"}`, w.Body.String())

	// Expired, forged and missing tokens all produce the same response.
	fake.Advance(2 * time.Minute)
	responses := []*httptest.ResponseRecorder{
		doRequest(router, http.MethodGet, "/v1/products", map[string]string{"Authorization": "Bearer " + token}),
		doRequest(router, http.MethodGet, "/v1/products", map[string]string{"Authorization": "Bearer forged"}),
		doRequest(router, http.MethodGet, "/v1/products", nil),
	}
	for _, w := range responses {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, w.Body.String())
	}
}

// denyAll is an authorizer without a custom challenge.
type denyAll struct{}

func (denyAll) Authorize(*http.Request) (*authDomain.Principal, error) {
	return nil, apperrors.ErrUnauthorized
}

func TestGateMiddleware_DefaultDetail(t *testing.T) {
	router := newGateRouter(denyAll{}, nil)

	w := doRequest(router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, w.Body.String())
}

func TestRequireActiveSeller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	claims := &authDomain.Claims{Subject: "johndoe"}

	newRouter := func(authenticator *usecaseMocks.MockAuthenticator, principal *authDomain.Principal) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if principal != nil {
				c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
			}
			c.Next()
		})
		router.Use(RequireActiveSeller(authenticator, discardLogger()))
		router.GET("/me", func(c *gin.Context) {
			seller, ok := GetSeller(c.Request.Context())
			require.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"username": seller.Username})
		})
		return router
	}

	bearer := &authDomain.Principal{Kind: authDomain.PrincipalBearer, Subject: "johndoe", Claims: claims}

	t.Run("active seller", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Principal", mock.Anything, claims).
			Return(&sellerDomain.Seller{Username: "johndoe"}, nil)

		w := doRequest(newRouter(authenticator, bearer), http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":"johndoe"}`, w.Body.String())
	})

	t.Run("no principal", func(t *testing.T) {
		w := doRequest(newRouter(&usecaseMocks.MockAuthenticator{}, nil), http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})

	t.Run("api key principal", func(t *testing.T) {
		apiKey := &authDomain.Principal{Kind: authDomain.PrincipalAPIKey}
		w := doRequest(newRouter(&usecaseMocks.MockAuthenticator{}, apiKey), http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("disabled seller", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Principal", mock.Anything, claims).Return(nil, authDomain.ErrSellerDisabled)

		w := doRequest(newRouter(authenticator, bearer), http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"detail":"Inactive seller"}`, w.Body.String())
	})

	t.Run("subject gone", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Principal", mock.Anything, claims).
			Return(nil, apperrors.Wrap(apperrors.ErrUnauthorized, "token subject no longer exists"))

		w := doRequest(newRouter(authenticator, bearer), http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		authenticator := &usecaseMocks.MockAuthenticator{}
		authenticator.On("Principal", mock.Anything, claims).Return(nil, errors.New("database unavailable"))

		w := doRequest(newRouter(authenticator, bearer), http.MethodGet, "/me", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()

	_, ok := GetPrincipal(ctx)
	assert.False(t, ok)
	_, ok = GetSeller(ctx)
	assert.False(t, ok)

	principal := &authDomain.Principal{Kind: authDomain.PrincipalBearer, Subject: "johndoe"}
	seller := &sellerDomain.Seller{Username: "johndoe"}
	ctx = WithSeller(WithPrincipal(ctx, principal), seller)

	gotPrincipal, ok := GetPrincipal(ctx)
	assert.True(t, ok)
	assert.Same(t, principal, gotPrincipal)

	gotSeller, ok := GetSeller(ctx)
	assert.True(t, ok)
	assert.Same(t, seller, gotSeller)
}
