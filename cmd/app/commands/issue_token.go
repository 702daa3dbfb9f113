package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
)

// RunIssueToken logs in as a seller and prints the issued access token.
func RunIssueToken(
	ctx context.Context,
	authenticator authUseCase.Authenticator,
	logger *slog.Logger,
	username string,
	password string,
	format string,
	io IOTuple,
) error {
	if password == "" {
		var err error
		if password, err = promptPassword(io, "Password: "); err != nil {
			return err
		}
	}

	token, err := authenticator.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	if format == "json" {
		if err := writeJSON(io.Writer, map[string]string{
			"access_token": token.AccessToken,
			"token_type":   token.TokenType,
			"expires_at":   token.ExpiresAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, token.AccessToken)
	}

	logger.Info("token issued", slog.String("username", username), slog.Time("expires_at", token.ExpiresAt))
	return nil
}
