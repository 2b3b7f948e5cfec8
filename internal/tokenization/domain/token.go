package domain

import (
	"time"
)

const (
	// TokenBytes is the amount of randomness in a token.
	TokenBytes = 16
	// TokenLength is the hex-encoded token length.
	TokenLength = TokenBytes * 2

	associatedDataPrefix = "pantoken:v1:"
)

// Token is an opaque surrogate for a PAN: 32 lowercase hex characters drawn from a
// cryptographically secure source. It carries no information about the PAN.
type Token string

// ParseToken checks that s has the token shape without touching any store.
func ParseToken(s string) (Token, error) {
	if len(s) != TokenLength {
		return "", ErrInvalidToken
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", ErrInvalidToken
		}
	}
	return Token(s), nil
}

// AssociatedData returns the AEAD associated data binding a ciphertext to this token.
// A ciphertext moved under another token fails authentication.
func (t Token) AssociatedData() []byte {
	return []byte(associatedDataPrefix + string(t))
}

// EncryptedRecord is the only persisted form of a PAN. Records are write-once.
type EncryptedRecord struct {
	Token          Token
	Ciphertext     []byte
	Nonce          []byte
	AssociatedData []byte
	CreatedAt      time.Time
}

// TokenDetails is what non-admin callers may learn about a token.
type TokenDetails struct {
	Token     Token
	MaskedPAN MaskedPAN
	CreatedAt time.Time
}
