package dto

import (
	"time"

	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
)

// TokenResponse describes a token without revealing the card number.
type TokenResponse struct {
	Token     string    `json:"token"`
	MaskedPAN string    `json:"masked_pan"`
	CreatedAt time.Time `json:"created_at"`
}

// MapTokenDetailsToResponse converts token details to an API response.
func MapTokenDetailsToResponse(details *tokenizationDomain.TokenDetails) TokenResponse {
	return TokenResponse{
		Token:     string(details.Token),
		MaskedPAN: string(details.MaskedPAN),
		CreatedAt: details.CreatedAt,
	}
}

// LegacyEncryptResponse is the body of POST /encrypt.
type LegacyEncryptResponse struct {
	Token     string `json:"token"`
	MaskedPAN string `json:"masked_pan"`
}

// RevealResponse carries a plaintext card number and is only ever sent to an admin.
type RevealResponse struct {
	Token     string `json:"token,omitempty"`
	PAN       string `json:"pan"`
	MaskedPAN string `json:"masked_pan"`
}

// MapPANToRevealResponse builds a reveal response for token.
func MapPANToRevealResponse(token string, pan tokenizationDomain.PAN) RevealResponse {
	return RevealResponse{
		Token:     token,
		PAN:       string(pan),
		MaskedPAN: string(tokenizationDomain.MaskPAN(pan)),
	}
}
