package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher()
	assert.NotNil(t, hasher)
	assert.IsType(t, &passwordHasher{}, hasher)
}

func TestPasswordHasher_Hash(t *testing.T) {
	hasher := NewPasswordHasher()

	t.Run("Success_UsesArgon2id", func(t *testing.T) {
		hash, err := hasher.Hash("secret-password")
		require.NoError(t, err)

		assert.NotEqual(t, "secret-password", hash)
		assert.Contains(t, hash, "$argon2id$")
	})

	t.Run("Success_SaltsEachHash", func(t *testing.T) {
		hash1, err := hasher.Hash("secret-password")
		require.NoError(t, err)
		hash2, err := hasher.Hash("secret-password")
		require.NoError(t, err)

		assert.NotEqual(t, hash1, hash2)
		assert.True(t, hasher.Verify("secret-password", hash1))
		assert.True(t, hasher.Verify("secret-password", hash2))
	})
}

func TestPasswordHasher_Verify(t *testing.T) {
	hasher := NewPasswordHasher()

	argonHash, err := hasher.Hash("secret-password")
	require.NoError(t, err)

	bcryptHash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		hash      string
		want      bool
	}{
		{name: "argon2id match", plaintext: "secret-password", hash: argonHash, want: true},
		{name: "argon2id mismatch", plaintext: "wrong-password", hash: argonHash, want: false},
		{name: "bcrypt match", plaintext: "secret-password", hash: string(bcryptHash), want: true},
		{name: "bcrypt mismatch", plaintext: "wrong-password", hash: string(bcryptHash), want: false},
		{name: "empty hash", plaintext: "secret-password", hash: "", want: false},
		{name: "garbage hash", plaintext: "secret-password", hash: "not-a-hash", want: false},
		{name: "truncated argon2id", plaintext: "secret-password", hash: argonHash[:20], want: false},
		{name: "truncated bcrypt", plaintext: "secret-password", hash: "$2b$10$abc", want: false},
		{name: "unknown scheme", plaintext: "secret-password", hash: "$scrypt$ln=15$abc$def", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, hasher.Verify(tt.plaintext, tt.hash))
			})
		})
	}
}
