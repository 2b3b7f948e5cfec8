package domain

import "strings"

// Algorithm identifies the AEAD construction used to seal PAN records.
//
// Both supported algorithms use a 256-bit key, a 96-bit nonce and a 128-bit tag, so
// records sealed under either one have the same stored shape.
type Algorithm string

const (
	// AESGCM is AES-256 in Galois/Counter Mode. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305. Preferred on hardware without AES acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the required master key length in bytes.
	KeySize = 32

	// NonceSize is the nonce length in bytes for every supported algorithm.
	NonceSize = 12
)

// ParseAlgorithm resolves a configured algorithm name. Matching is case-insensitive
// and "chacha20" is accepted as shorthand for ChaCha20.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(AESGCM), "aes-256-gcm":
		return AESGCM, nil
	case string(ChaCha20), "chacha20":
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
