// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/pantoken/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// CardNumberCharset validates that a string holds only digits, spaces and hyphens.
// Length and checksum are checked by the domain, which never echoes the value.
var CardNumberCharset = validation.NewStringRuleWithError(
	func(s string) bool {
		for _, r := range s {
			if (r < '0' || r > '9') && r != ' ' && r != '-' {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_card_number_charset", "must contain only digits, spaces or hyphens"),
)
