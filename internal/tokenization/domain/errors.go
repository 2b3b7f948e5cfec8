package domain

import (
	"github.com/allisson/pantoken/internal/errors"
)

// Tokenization errors. None of the messages carry PAN material.
var (
	// ErrInvalidPAN indicates the candidate is not a well-formed PAN (length, characters or checksum).
	ErrInvalidPAN = errors.Wrap(errors.ErrInvalidInput, "invalid PAN")

	// ErrInvalidToken indicates a token that is not 32 lowercase hex characters.
	ErrInvalidToken = errors.Wrap(errors.ErrInvalidInput, "invalid token format")

	// ErrTokenSpaceExhausted indicates every candidate token generated in the attempt
	// budget already existed. Reaching it points to a broken random source.
	ErrTokenSpaceExhausted = errors.New("token space exhausted")

	// ErrDuplicateToken is returned by a store when the token is already present.
	ErrDuplicateToken = errors.Wrap(errors.ErrConflict, "duplicate token")

	// ErrDuplicateNonce is returned by a store when the nonce is already in use.
	ErrDuplicateNonce = errors.Wrap(errors.ErrConflict, "duplicate nonce")

	// ErrStoreConflict indicates the record could not be persisted within the retry budget.
	ErrStoreConflict = errors.Wrap(errors.ErrConflict, "record store conflict")

	// ErrStoreUnavailable indicates the record store could not be reached.
	ErrStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "record store unavailable")

	// ErrTokenNotFound indicates no record exists for the token.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrUnauthorized indicates the caller's admin credential did not match.
	ErrUnauthorized = errors.Wrap(errors.ErrUnauthorized, "invalid admin credential")

	// ErrTamperDetected indicates a stored record failed authentication on decrypt.
	ErrTamperDetected = errors.Wrap(errors.ErrIntegrity, "tamper detected")
)
