package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/pantoken/internal/errors"
)

// adminKeyBytes is the entropy of a generated admin key.
const adminKeyBytes = 32

type secretService struct {
	hasher *pwdhash.PasswordHasher
}

// NewSecretService returns a SecretService hashing with Argon2id under the Moderate policy.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		// built-in policy
		panic(err)
	}
	return &secretService{hasher: hasher}
}

func (s *secretService) GenerateAdminKey() (string, string, error) {
	raw := make([]byte, adminKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate admin key")
	}
	key := base64.RawURLEncoding.EncodeToString(raw)

	hash, err := s.HashAdminKey(key)
	if err != nil {
		return "", "", err
	}
	return key, hash, nil
}

func (s *secretService) HashAdminKey(key string) (string, error) {
	hash, err := s.hasher.Hash([]byte(key))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash admin key")
	}
	return hash, nil
}

// CompareAdminKey treats a malformed hash as a mismatch.
func (s *secretService) CompareAdminKey(key, hash string) bool {
	ok, err := s.hasher.Verify([]byte(key), hash)
	return err == nil && ok
}
