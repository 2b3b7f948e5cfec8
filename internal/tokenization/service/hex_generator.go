package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/allisson/pantoken/internal/tokenization/domain"
)

// DefaultMaxGenerateAttempts bounds how many taken candidates Generate tolerates.
const DefaultMaxGenerateAttempts = 5

type hexGenerator struct {
	random      io.Reader
	maxAttempts int
}

// NewHexGenerator creates a generator of 128-bit random tokens rendered as 32 lowercase
// hex characters. A maxAttempts below 1 falls back to DefaultMaxGenerateAttempts.
func NewHexGenerator(maxAttempts int) TokenGenerator {
	return newHexGenerator(rand.Reader, maxAttempts)
}

func newHexGenerator(random io.Reader, maxAttempts int) *hexGenerator {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxGenerateAttempts
	}
	return &hexGenerator{random: random, maxAttempts: maxAttempts}
}

func (g *hexGenerator) Generate(ctx context.Context, exists ExistsFunc) (domain.Token, error) {
	buf := make([]byte, domain.TokenBytes)

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		candidate := domain.Token(hex.EncodeToString(buf))

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", domain.ErrTokenSpaceExhausted
}
