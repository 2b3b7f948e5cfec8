package domain

import (
	"github.com/allisson/pantoken/internal/errors"
)

// Cryptographic error definitions. They wrap the shared sentinels from internal/errors
// so the HTTP layer maps them without knowing about this package.
var (
	// ErrUnsupportedAlgorithm indicates the configured algorithm is not aes-gcm or chacha20-poly1305.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidNonceSize indicates a stored nonce that is not 12 bytes.
	ErrInvalidNonceSize = errors.Wrap(errors.ErrInvalidInput, "invalid nonce size")

	// ErrDecryptionFailed indicates authentication failed while opening a ciphertext.
	// The cause (wrong key, modified ciphertext, nonce or associated data) is never disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrMasterKeyNotSet indicates no master key was configured.
	ErrMasterKeyNotSet = errors.New("master key is not set")

	// ErrInvalidMasterKeyEncoding indicates the configured master key is neither hex nor base64.
	ErrInvalidMasterKeyEncoding = errors.New("master key must be hex or base64 encoded")
)
