package domain

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// MasterKey holds the 256-bit key every PAN record is sealed under.
//
// It is loaded once at startup, held by the tokenization use case and never logged,
// persisted or returned through any API.
type MasterKey struct {
	Key []byte
}

// String redacts the key material.
func (m *MasterKey) String() string {
	return "MasterKey(redacted)"
}

// Close zeroes the key material.
func (m *MasterKey) Close() {
	if m == nil {
		return
	}
	Zero(m.Key)
	m.Key = nil
}

// KMSKeeper is the subset of a gocloud.dev secrets.Keeper used to unwrap a master key.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// ParseMasterKey decodes a 32-byte master key. A 64-character value is always read as hex
// and must be valid hex; any other length is read as standard base64 and must decode to
// exactly 32 bytes. Base64 of 32 bytes is 44 characters, so the two forms never overlap.
func ParseMasterKey(encoded string) (*MasterKey, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrMasterKeyNotSet
	}

	key, err := decodeKey(encoded)
	if err != nil {
		return nil, err
	}
	if len(key) != KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(key))
	}

	return &MasterKey{Key: key}, nil
}

// DecryptMasterKey unwraps a base64 KMS ciphertext with keeper and returns the master key.
func DecryptMasterKey(ctx context.Context, keeper KMSKeeper, encoded string) (*MasterKey, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrMasterKeyNotSet
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterKeyEncoding, err)
	}

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt master key with KMS: %w", err)
	}
	if len(key) != KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(key))
	}

	return &MasterKey{Key: key}, nil
}

func decodeKey(encoded string) ([]byte, error) {
	if len(encoded) == hex.EncodedLen(KeySize) {
		key, err := hex.DecodeString(encoded)
		if err != nil {
			return nil, ErrInvalidMasterKeyEncoding
		}
		return key, nil
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidMasterKeyEncoding
	}
	return key, nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
