// Package service provides the authenticated ciphers that seal PAN records and the
// KMS integration used to unwrap the master key at startup.
package service

import (
	cryptoDomain "github.com/allisson/pantoken/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt seals plaintext under a fresh random nonce and binds aad to the result.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt opens ciphertext. Any mismatch in ciphertext, nonce, aad or key fails
	// with ErrDecryptionFailed and returns no plaintext.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}
