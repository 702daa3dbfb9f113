package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authService "github.com/allisson/storefront/internal/auth/service"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/httputil"
)

const defaultDenialDetail = "Not authenticated"

// Authorizer decides whether a request carries an acceptable credential.
type Authorizer interface {
	// Authorize returns the principal behind the request credential or an error
	// wrapping ErrUnauthorized.
	Authorize(r *http.Request) (*authDomain.Principal, error)
}

// Challenger is implemented by authorizers that customize the 401 response.
type Challenger interface {
	// Challenge returns the detail message and the WWW-Authenticate scheme (may be empty).
	Challenge() (detail string, scheme string)
}

// APIKeyPolicy accepts requests whose Header value is one of Keys.
type APIKeyPolicy struct {
	Header string
	Keys   []string
}

// Authorize compares the presented key against every allowed key in constant time.
func (p APIKeyPolicy) Authorize(r *http.Request) (*authDomain.Principal, error) {
	presented := r.Header.Get(p.Header)
	if presented == "" {
		return nil, authDomain.ErrMissingCredentials
	}

	matched := 0
	for _, key := range p.Keys {
		matched |= subtle.ConstantTimeCompare([]byte(presented), []byte(key))
	}
	if matched != 1 {
		return nil, authDomain.ErrInvalidAPIKey
	}

	return &authDomain.Principal{Kind: authDomain.PrincipalAPIKey}, nil
}

// Challenge implements Challenger.
func (p APIKeyPolicy) Challenge() (string, string) {
	return "Invalid or missing API key", ""
}

// BearerPolicy accepts requests carrying a valid access token in the Authorization header.
type BearerPolicy struct {
	Codec authService.TokenCodec
}

// Authorize extracts "Bearer <token>" (scheme is case-insensitive) and validates the token.
func (p BearerPolicy) Authorize(r *http.Request) (*authDomain.Principal, error) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return nil, authDomain.ErrMissingCredentials
	}

	claims, err := p.Codec.Validate(token)
	if err != nil {
		return nil, err
	}

	return &authDomain.Principal{
		Kind:    authDomain.PrincipalBearer,
		Subject: claims.Subject,
		Claims:  claims,
	}, nil
}

// Challenge implements Challenger.
func (p BearerPolicy) Challenge() (string, string) {
	return "Could not validate credentials", "Bearer"
}

// bearerToken parses an Authorization header value.
func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// BypassMatcher matches request paths that skip a gate. Entries ending in "/*" match
// every path under that prefix; other entries match exactly.
type BypassMatcher struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewBypassMatcher builds a BypassMatcher from paths.
func NewBypassMatcher(paths []string) BypassMatcher {
	m := BypassMatcher{exact: make(map[string]struct{}, len(paths))}
	for _, path := range paths {
		if prefix, ok := strings.CutSuffix(path, "*"); ok && strings.HasSuffix(prefix, "/") {
			m.prefixes = append(m.prefixes, prefix)
			continue
		}
		m.exact[path] = struct{}{}
	}
	return m
}

// Match reports whether path skips the gate.
func (m BypassMatcher) Match(path string) bool {
	if _, ok := m.exact[path]; ok {
		return true
	}
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// GateMiddleware lets a request through when its path is bypassed or authorizer accepts
// it. Rejected requests get 401 with a single generic {"detail": ...} body whatever the
// underlying reason; the reason is only logged.
//
// Usage:
//
//	router.Use(GateMiddleware(APIKeyPolicy{Header: "X-API-Key", Keys: keys}, bypass, logger))
//	router.GET("/protected", func(c *gin.Context) {
//	    principal, _ := GetPrincipal(c.Request.Context())
//	    // ...
//	})
func GateMiddleware(authorizer Authorizer, bypass BypassMatcher, logger *slog.Logger) gin.HandlerFunc {
	detail, scheme := defaultDenialDetail, ""
	if challenger, ok := authorizer.(Challenger); ok {
		detail, scheme = challenger.Challenge()
	}

	return func(c *gin.Context) {
		if bypass.Match(c.Request.URL.Path) {
			c.Next()
			return
		}

		principal, err := authorizer.Authorize(c.Request)
		if err != nil {
			logger.Debug("request denied by gate",
				slog.String("path", c.Request.URL.Path),
				slog.String("client_ip", c.ClientIP()),
				slog.String("reason", err.Error()))

			if scheme != "" {
				c.Header("WWW-Authenticate", scheme)
			}
			httputil.AbortWithDetail(c, http.StatusUnauthorized, detail)
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireActiveSeller resolves the seller behind the bearer principal and stores it in
// the request context. It MUST run after a GateMiddleware using BearerPolicy.
//
// Error handling:
//   - No bearer principal or unknown subject → 401 Unauthorized
//   - Disabled seller → 403 Forbidden
//   - Other errors → 500 Internal Server Error
func RequireActiveSeller(authenticator authUseCase.Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil || principal.Kind != authDomain.PrincipalBearer {
			logger.Debug("active seller required: no bearer principal in context")
			c.Header("WWW-Authenticate", "Bearer")
			httputil.AbortWithDetail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		seller, err := authenticator.Principal(c.Request.Context(), principal.Claims)
		if err != nil {
			switch {
			case apperrors.Is(err, apperrors.ErrUnauthorized):
				c.Header("WWW-Authenticate", "Bearer")
				httputil.AbortWithDetail(c, http.StatusUnauthorized, "Could not validate credentials")
			case apperrors.Is(err, apperrors.ErrForbidden):
				httputil.AbortWithDetail(c, http.StatusForbidden, "Inactive seller")
			default:
				httputil.HandleErrorGin(c, err, logger)
				c.Abort()
			}
			logger.Debug("active seller required", slog.String("reason", err.Error()))
			return
		}

		ctx := WithSeller(c.Request.Context(), seller)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
