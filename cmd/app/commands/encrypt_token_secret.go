package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	authService "github.com/allisson/storefront/internal/auth/service"
)

// generatedSecretSize is the byte length of secrets generated when none is given.
const generatedSecretSize = 32

// RunEncryptTokenSecret encrypts a token signing secret with the KMS key at keyURI and
// prints the base64 ciphertext to store in AUTH_TOKEN_SECRET_CIPHERTEXT. A random
// secret is generated when secret is empty.
func RunEncryptTokenSecret(
	ctx context.Context,
	kms authService.KMSService,
	logger *slog.Logger,
	keyURI string,
	secret string,
	writer io.Writer,
) error {
	if keyURI == "" {
		return fmt.Errorf("a KMS key URI is required (--kms-key-uri or KMS_KEY_URI)")
	}

	plaintext := []byte(secret)
	if len(plaintext) == 0 {
		plaintext = make([]byte, generatedSecretSize)
		if _, err := rand.Read(plaintext); err != nil {
			return fmt.Errorf("failed to generate secret: %w", err)
		}
		plaintext = []byte(base64.RawURLEncoding.EncodeToString(plaintext))
		logger.Info("generated random token signing secret")
	}

	ciphertext, err := authService.EncryptSigningSecret(ctx, kms, keyURI, plaintext)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(writer, "AUTH_TOKEN_SECRET_CIPHERTEXT=%s\n", ciphertext)
	return nil
}
