// Package errors holds the sentinel errors shared by every layer. Domain packages wrap
// them with their own errors and the HTTP layer maps them to status codes, so handlers
// never import a domain package just to classify a failure.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates the record store cannot be reached.
	ErrUnavailable = errors.New("unavailable")

	// ErrIntegrity indicates stored data failed authentication. Its message must never
	// reach a caller.
	ErrIntegrity = errors.New("integrity check failed")
)

func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message and keeps it matchable with Is. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
