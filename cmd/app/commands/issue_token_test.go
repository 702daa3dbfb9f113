package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authMocks "github.com/allisson/storefront/internal/auth/usecase/mocks"
)

func TestRunIssueToken(t *testing.T) {
	ctx := context.Background()
	token := &authDomain.IssuedToken{
		AccessToken: "header.payload.signature",
		TokenType:   authDomain.TokenTypeBearer,
		ExpiresAt:   time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC),
	}

	t.Run("text", func(t *testing.T) {
		authenticator := &authMocks.MockAuthenticator{}
		authenticator.On("Login", ctx, "alice", "Secret123").Return(token, nil)

		var out bytes.Buffer
		err := RunIssueToken(ctx, authenticator, discardLogger(), "alice", "Secret123", "text", IOTuple{Writer: &out})

		require.NoError(t, err)
		assert.Equal(t, "header.payload.signature\n", out.String())
		authenticator.AssertExpectations(t)
	})

	t.Run("json-with-prompt", func(t *testing.T) {
		authenticator := &authMocks.MockAuthenticator{}
		authenticator.On("Login", ctx, "alice", "Secret123").Return(token, nil)

		var out bytes.Buffer
		err := RunIssueToken(ctx, authenticator, discardLogger(), "alice", "", "json", IOTuple{
			Reader: strings.NewReader("Secret123\n"),
			Writer: &out,
		})
		require.NoError(t, err)

		var result map[string]string
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(out.String(), "Password: ")), &result))
		assert.Equal(t, "header.payload.signature", result["access_token"])
		assert.Equal(t, "bearer", result["token_type"])
		assert.Equal(t, "2025-01-01T12:30:00Z", result["expires_at"])
	})

	t.Run("login-failure", func(t *testing.T) {
		authenticator := &authMocks.MockAuthenticator{}
		authenticator.On("Login", ctx, "alice", "wrong").Return(nil, authDomain.ErrAuthenticationFailed)

		err := RunIssueToken(ctx, authenticator, discardLogger(), "alice", "wrong", "text", IOTuple{Writer: io.Discard})
		require.Error(t, err)
		assert.ErrorIs(t, err, authDomain.ErrAuthenticationFailed)
	})
}
