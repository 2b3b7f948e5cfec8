// Package usecase defines interfaces and implementations for tokenization use cases.
package usecase

import (
	"context"

	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
)

// RecordRepository persists encrypted PAN records. Records are write-once: there is no
// update or delete.
type RecordRepository interface {
	// Put atomically inserts record. Returns ErrDuplicateToken or ErrDuplicateNonce when
	// either value is already stored, ErrStoreUnavailable when the store cannot be reached.
	Put(ctx context.Context, record *tokenizationDomain.EncryptedRecord) error

	// Get returns the record for token or ErrTokenNotFound.
	Get(ctx context.Context, token tokenizationDomain.Token) (*tokenizationDomain.EncryptedRecord, error)

	// Exists reports whether token is stored.
	Exists(ctx context.Context, token tokenizationDomain.Token) (bool, error)
}

// TokenizationUseCase defines the PAN tokenization operations.
type TokenizationUseCase interface {
	// Tokenize validates rawInput as a PAN, seals it under a fresh token and returns
	// the token with the masked PAN. Invalid input never reaches the store.
	Tokenize(ctx context.Context, rawInput string) (*tokenizationDomain.TokenDetails, error)

	// Reveal returns the PAN behind token. The credential is checked before any store
	// access; a mismatch returns ErrUnauthorized.
	Reveal(ctx context.Context, token, credential string) (tokenizationDomain.PAN, error)

	// Authorize checks credential against the admin credential without touching the
	// store. A mismatch returns ErrUnauthorized.
	Authorize(credential string) error

	// Describe returns the masked PAN and creation time of token without exposing
	// the PAN or any cryptographic material.
	Describe(ctx context.Context, token string) (*tokenizationDomain.TokenDetails, error)
}
