package app

import (
	"fmt"
	"sync"

	authHTTP "github.com/allisson/storefront/internal/auth/http"
	authService "github.com/allisson/storefront/internal/auth/service"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
)

type authComponents struct {
	passwordHasher authService.PasswordHasher
	kmsService     authService.KMSService
	tokenCodec     authService.TokenCodec
	authenticator  authUseCase.Authenticator
	tokenHandler   *authHTTP.TokenHandler

	passwordHasherInit sync.Once
	kmsServiceInit     sync.Once
	tokenCodecInit     sync.Once
	authenticatorInit  sync.Once
	tokenHandlerInit   sync.Once
}

// PasswordHasher returns the Argon2id password hasher.
func (c *Container) PasswordHasher() authService.PasswordHasher {
	c.passwordHasherInit.Do(func() {
		c.passwordHasher = authService.NewPasswordHasher()
	})
	return c.passwordHasher
}

// KMSService returns the service that opens gocloud.dev secret keepers.
func (c *Container) KMSService() authService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = authService.NewKMSService()
	})
	return c.kmsService
}

// TokenCodec returns the access token codec. The signing secret is decrypted through
// the KMS when AUTH_TOKEN_SECRET_CIPHERTEXT is set.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	c.tokenCodecInit.Do(func() {
		var err error
		c.tokenCodec, err = c.initTokenCodec()
		c.setError("tokenCodec", err)
	})
	return c.tokenCodec, c.storedError("tokenCodec")
}

// Authenticator returns the login use case, instrumented with business metrics.
func (c *Container) Authenticator() (authUseCase.Authenticator, error) {
	c.authenticatorInit.Do(func() {
		var err error
		c.authenticator, err = c.initAuthenticator()
		c.setError("authenticator", err)
	})
	return c.authenticator, c.storedError("authenticator")
}

// TokenHandler returns the HTTP handler of the token endpoint.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	c.tokenHandlerInit.Do(func() {
		var err error
		c.tokenHandler, err = c.initTokenHandler()
		c.setError("tokenHandler", err)
	})
	return c.tokenHandler, c.storedError("tokenHandler")
}

func (c *Container) initTokenCodec() (authService.TokenCodec, error) {
	secret, err := authService.ResolveSigningSecret(c.background, c.KMSService(), authService.SigningSecretSource{
		Plaintext:  c.config.AuthTokenSecret,
		Ciphertext: c.config.AuthTokenSecretCiphertext,
		KeyURI:     c.config.KMSKeyURI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token signing secret: %w", err)
	}

	codec, err := authService.NewTokenCodec(secret, c.config.AuthTokenAlgorithm, c.config.AuthTokenIssuer, c.Clock())
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	return codec, nil
}

func (c *Container) initAuthenticator() (authUseCase.Authenticator, error) {
	sellerRepo, err := c.SellerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get seller repository for authenticator: %w", err)
	}

	codec, err := c.TokenCodec()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for authenticator: %w", err)
	}

	authenticator, err := authUseCase.NewAuthenticator(
		sellerRepo,
		c.PasswordHasher(),
		codec,
		c.config.AuthTokenExpiration,
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	return authUseCase.NewAuthenticatorWithMetrics(authenticator, businessMetrics), nil
}

func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	authenticator, err := c.Authenticator()
	if err != nil {
		return nil, err
	}
	return authHTTP.NewTokenHandler(authenticator, c.Logger()), nil
}
