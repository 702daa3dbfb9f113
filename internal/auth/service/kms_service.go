package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	apperrors "github.com/allisson/storefront/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the KMS provider addressed by keyURI.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// SigningSecretSource describes where the token signing secret comes from.
type SigningSecretSource struct {
	// Plaintext is used as is when Ciphertext is empty.
	Plaintext string
	// Ciphertext is the standard base64 encoding of the KMS encrypted secret.
	Ciphertext string
	// KeyURI addresses the KMS key that decrypts Ciphertext.
	KeyURI string
}

// ResolveSigningSecret returns the token signing secret, decrypting it through the KMS
// when the source holds a ciphertext.
func ResolveSigningSecret(ctx context.Context, kms KMSService, src SigningSecretSource) ([]byte, error) {
	if src.Ciphertext == "" {
		if src.Plaintext == "" {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token signing secret is not configured")
		}
		return []byte(src.Plaintext), nil
	}

	if src.KeyURI == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "encrypted token secret requires a KMS key URI")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(src.Ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token secret ciphertext is not valid base64")
	}

	keeper, err := kms.OpenKeeper(ctx, src.KeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	secret, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "decrypted token secret is empty")
	}
	return secret, nil
}

// EncryptSigningSecret encrypts secret with the KMS key at keyURI and returns the
// ciphertext in the form expected by ResolveSigningSecret.
func EncryptSigningSecret(ctx context.Context, kms KMSService, keyURI string, secret []byte) (string, error) {
	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt token secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
