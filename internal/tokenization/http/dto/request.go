// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/pantoken/internal/validation"
)

// maxPANInputLength bounds the raw card number including separators.
const maxPANInputLength = 64

// TokenizeRequest contains the card number to tokenize.
type TokenizeRequest struct {
	PAN string `json:"pan"`
}

// Validate checks the request shape. Length and checksum are enforced by the domain.
func (r *TokenizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PAN,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxPANInputLength),
			customValidation.CardNumberCharset,
		),
	)
}

// RevealRequest contains the token whose PAN an admin wants back.
type RevealRequest struct {
	Token string `json:"token"`
}

// Validate checks if the reveal request is valid.
func (r *RevealRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
	)
}
