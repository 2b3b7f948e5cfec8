package service

import (
	cryptoDomain "github.com/allisson/pantoken/internal/crypto/domain"
)

// AEADManagerService builds the record cipher for the configured algorithm.
type AEADManagerService struct{}

func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher returns ErrInvalidKeySize unless key is exactly 32 bytes, and
// ErrUnsupportedAlgorithm for anything but AES-GCM and ChaCha20-Poly1305.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	var (
		cipher AEAD
		err    error
	)
	switch alg {
	case cryptoDomain.AESGCM:
		cipher, err = NewAESGCM(key)
	case cryptoDomain.ChaCha20:
		cipher, err = NewChaCha20Poly1305(key)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	if err != nil {
		return nil, err
	}
	return cipher, nil
}
