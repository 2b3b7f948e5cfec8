// Package testing provides shared test utilities for tokenization module tests.
package testing

import (
	"crypto/rand"
	"fmt"
	"math/big"

	cryptoDomain "github.com/allisson/pantoken/internal/crypto/domain"
	"github.com/allisson/pantoken/internal/tokenization/domain"
)

// Well-known test card numbers.
const (
	VisaPAN       = "4111111111111111"
	MastercardPAN = "5555555555554444"
	AmexPAN       = "378282246310005"
)

// CreateMasterKey creates a test master key with a random 32-byte key.
func CreateMasterKey() *cryptoDomain.MasterKey {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return &cryptoDomain.MasterKey{Key: key}
}

// GeneratePAN returns a random Luhn-valid PAN of length digits starting with prefix.
func GeneratePAN(prefix string, length int) string {
	if length < len(prefix)+1 {
		panic(fmt.Sprintf("length %d too short for prefix %q", length, prefix))
	}

	payload := make([]byte, length-1)
	copy(payload, prefix)
	for i := len(prefix); i < len(payload); i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic(err)
		}
		payload[i] = byte('0' + n.Int64())
	}

	return string(payload) + string(domain.LuhnCheckDigit(string(payload)))
}
