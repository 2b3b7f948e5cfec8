// Package service provides token generation for the tokenization module.
package service

import (
	"context"

	"github.com/allisson/pantoken/internal/tokenization/domain"
)

// ExistsFunc reports whether token is already taken. It is normally backed by the
// record store's Exists operation.
type ExistsFunc func(ctx context.Context, token domain.Token) (bool, error)

// TokenGenerator defines the interface for token generation.
type TokenGenerator interface {
	// Generate returns a token for which exists reported false. It gives up with
	// ErrTokenSpaceExhausted after a bounded number of taken candidates and returns
	// any error from exists unchanged.
	Generate(ctx context.Context, exists ExistsFunc) (domain.Token, error)
}
