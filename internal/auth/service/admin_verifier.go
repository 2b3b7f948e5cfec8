package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	apperrors "github.com/allisson/pantoken/internal/errors"
	"github.com/allisson/pantoken/internal/tokenization/domain"
)

// MinAdminKeyLength is the shortest plain admin key accepted at startup.
const MinAdminKeyLength = 16

var (
	// ErrAdminCredentialNotSet indicates neither a plain key nor a hash was configured.
	ErrAdminCredentialNotSet = apperrors.New("admin credential is not set")

	// ErrAdminKeyTooShort indicates a plain admin key below MinAdminKeyLength.
	ErrAdminKeyTooShort = apperrors.New("admin key is too short")

	// ErrInvalidAdminKeyHash indicates an admin key hash that is not an Argon2id PHC string.
	ErrInvalidAdminKeyHash = apperrors.New("admin key hash must be an argon2id PHC string")
)

// NewAdminVerifier builds the verifier for the configured admin credential. A hash takes
// precedence over a plain key. Both empty is a startup error.
func NewAdminVerifier(plainKey, keyHash string, secretService SecretService) (AdminVerifier, error) {
	keyHash = strings.TrimSpace(keyHash)
	if keyHash != "" {
		if !strings.HasPrefix(keyHash, "$argon2id$") {
			return nil, ErrInvalidAdminKeyHash
		}
		return &hashedAdminVerifier{hash: keyHash, secretService: secretService}, nil
	}

	if plainKey == "" {
		return nil, ErrAdminCredentialNotSet
	}
	if len(plainKey) < MinAdminKeyLength {
		return nil, ErrAdminKeyTooShort
	}

	return &plainAdminVerifier{digest: sha256.Sum256([]byte(plainKey))}, nil
}

// plainAdminVerifier compares SHA-256 digests so the comparison length never depends
// on the presented credential.
type plainAdminVerifier struct {
	digest [sha256.Size]byte
}

func (v *plainAdminVerifier) Verify(credential string) error {
	presented := sha256.Sum256([]byte(credential))
	if subtle.ConstantTimeCompare(presented[:], v.digest[:]) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

type hashedAdminVerifier struct {
	hash          string
	secretService SecretService
}

func (v *hashedAdminVerifier) Verify(credential string) error {
	if !v.secretService.CompareAdminKey(credential, v.hash) {
		return domain.ErrUnauthorized
	}
	return nil
}
