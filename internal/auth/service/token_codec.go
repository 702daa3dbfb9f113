package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	"github.com/allisson/storefront/internal/clock"
	apperrors "github.com/allisson/storefront/internal/errors"
)

// tokenClaims is the JWT payload: registered claims plus the optional extras.
type tokenClaims struct {
	Name  string `json:"name,omitempty"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// tokenCodec implements TokenCodec as HMAC-signed compact JWS.
type tokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	clock  clock.Clock
	parser *jwt.Parser
}

// NewTokenCodec creates a TokenCodec signing with secret under algorithm (HS256, HS384
// or HS512). When issuer is not empty it is written to issued tokens and required on
// validation.
func NewTokenCodec(secret []byte, algorithm, issuer string, c clock.Clock) (TokenCodec, error) {
	if len(secret) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token signing secret is empty")
	}

	var method jwt.SigningMethod
	switch algorithm {
	case jwt.SigningMethodHS256.Alg():
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "unsupported token algorithm %q", algorithm)
	}

	if c == nil {
		c = clock.New()
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.Now),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &tokenCodec{
		secret: secret,
		method: method,
		issuer: issuer,
		clock:  c,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Issue signs claims. Timestamps have second precision: iat is truncated and exp is
// rounded up, so the token stays valid for at least ttl.
func (t *tokenCodec) Issue(claims authDomain.Claims, ttl time.Duration) (string, time.Time, error) {
	if claims.Subject == "" {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, "token subject is empty")
	}

	issuedAt := t.clock.Now()
	now := issuedAt.Truncate(time.Second)
	expiresAt := ceilSecond(issuedAt.Add(ttl))

	id := claims.ID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	payload := tokenClaims{
		Name:  claims.Name,
		Scope: claims.Scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			Issuer:    t.issuer,
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(t.method, payload).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return token, expiresAt, nil
}

// Validate parses token and maps every failure onto the token error taxonomy.
func (t *tokenCodec) Validate(token string) (*authDomain.Claims, error) {
	payload := &tokenClaims{}
	if _, err := t.parser.ParseWithClaims(token, payload, t.keyFunc); err != nil {
		return nil, mapTokenError(err)
	}

	if payload.Subject == "" || payload.ExpiresAt == nil {
		return nil, authDomain.ErrTokenMalformed
	}

	claims := &authDomain.Claims{
		Subject:   payload.Subject,
		Name:      payload.Name,
		Scope:     payload.Scope,
		Issuer:    payload.Issuer,
		ID:        payload.ID,
		ExpiresAt: payload.ExpiresAt.UTC(),
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.UTC()
	}

	return claims, nil
}

func (t *tokenCodec) keyFunc(*jwt.Token) (any, error) {
	return t.secret, nil
}

func mapTokenError(err error) error {
	switch {
	case apperrors.Is(err, jwt.ErrTokenExpired):
		return authDomain.ErrTokenExpired
	case apperrors.Is(err, jwt.ErrTokenSignatureInvalid), apperrors.Is(err, jwt.ErrTokenUnverifiable):
		return authDomain.ErrTokenSignature
	default:
		return authDomain.ErrTokenMalformed
	}
}

func ceilSecond(ts time.Time) time.Time {
	truncated := ts.Truncate(time.Second)
	if truncated.Before(ts) {
		return truncated.Add(time.Second)
	}
	return truncated
}
