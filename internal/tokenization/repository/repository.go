// Package repository implements persistence for encrypted PAN records.
//
// Every implementation enforces uniqueness of both the token and the nonce, and inserts
// atomically. Records are never updated or deleted.
package repository

import (
	"fmt"

	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
)

// nonceConstraintName is the unique constraint on pan_records.nonce in every schema.
const nonceConstraintName = "pan_records_nonce_key"

// storeUnavailable keeps the driver error in the chain for logs while classifying it
// as ErrStoreUnavailable for callers.
func storeUnavailable(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", tokenizationDomain.ErrStoreUnavailable, op, err)
}

func cloneRecord(record *tokenizationDomain.EncryptedRecord) *tokenizationDomain.EncryptedRecord {
	return &tokenizationDomain.EncryptedRecord{
		Token:          record.Token,
		Ciphertext:     append([]byte(nil), record.Ciphertext...),
		Nonce:          append([]byte(nil), record.Nonce...),
		AssociatedData: append([]byte(nil), record.AssociatedData...),
		CreatedAt:      record.CreatedAt,
	}
}
