package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/pantoken/internal/errors"
	"github.com/allisson/pantoken/internal/tokenization/domain"
)

const testAdminKey = "correct-horse-battery-staple" //nolint:gosec // test fixture

func TestNewAdminVerifier(t *testing.T) {
	secretService := NewSecretService()

	t.Run("Error_NothingConfigured", func(t *testing.T) {
		_, err := NewAdminVerifier("", "", secretService)
		assert.ErrorIs(t, err, ErrAdminCredentialNotSet)
	})

	t.Run("Error_PlainKeyTooShort", func(t *testing.T) {
		_, err := NewAdminVerifier("short", "", secretService)
		assert.ErrorIs(t, err, ErrAdminKeyTooShort)
	})

	t.Run("Error_HashNotArgon2id", func(t *testing.T) {
		_, err := NewAdminVerifier("", "$2a$10$notargon", secretService)
		assert.ErrorIs(t, err, ErrInvalidAdminKeyHash)
	})

	t.Run("Success_HashTakesPrecedence", func(t *testing.T) {
		hash, err := secretService.HashAdminKey("hashed-admin-key-value")
		require.NoError(t, err)

		verifier, err := NewAdminVerifier(testAdminKey, hash, secretService)
		require.NoError(t, err)

		assert.NoError(t, verifier.Verify("hashed-admin-key-value"))
		assert.ErrorIs(t, verifier.Verify(testAdminKey), domain.ErrUnauthorized)
	})
}

func TestPlainAdminVerifier_Verify(t *testing.T) {
	verifier, err := NewAdminVerifier(testAdminKey, "", NewSecretService())
	require.NoError(t, err)

	tests := []struct {
		name       string
		credential string
		wantErr    bool
	}{
		{"Success_Match", testAdminKey, false},
		{"Error_Empty", "", true},
		{"Error_Prefix", testAdminKey[:10], true},
		{"Error_Longer", testAdminKey + "x", true},
		{"Error_CaseDiffers", "Correct-horse-battery-staple", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifier.Verify(tt.credential)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}
}

func TestHashedAdminVerifier_Verify(t *testing.T) {
	secretService := NewSecretService()
	plain, hash, err := secretService.GenerateAdminKey()
	require.NoError(t, err)

	verifier, err := NewAdminVerifier("", hash, secretService)
	require.NoError(t, err)

	assert.NoError(t, verifier.Verify(plain))
	assert.ErrorIs(t, verifier.Verify(""), domain.ErrUnauthorized)
	assert.ErrorIs(t, verifier.Verify(plain+"x"), domain.ErrUnauthorized)
}
