package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
)

// recordStore is the behavior shared by every repository implementation.
type recordStore interface {
	Put(ctx context.Context, record *tokenizationDomain.EncryptedRecord) error
	Get(ctx context.Context, token tokenizationDomain.Token) (*tokenizationDomain.EncryptedRecord, error)
	Exists(ctx context.Context, token tokenizationDomain.Token) (bool, error)
}

func newTestRecord(seq int) *tokenizationDomain.EncryptedRecord {
	token := tokenizationDomain.Token(fmt.Sprintf("%032x", seq))
	return &tokenizationDomain.EncryptedRecord{
		Token:          token,
		Ciphertext:     []byte(fmt.Sprintf("ciphertext-%d-with-tag", seq)),
		Nonce:          []byte(fmt.Sprintf("nonce-%07d", seq)),
		AssociatedData: token.AssociatedData(),
		CreatedAt:      time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
	}
}

// runRecordStoreContract exercises the uniqueness and lookup rules every store must honor.
func runRecordStoreContract(t *testing.T, store recordStore) {
	ctx := context.Background()

	t.Run("PutAndGet", func(t *testing.T) {
		record := newTestRecord(1)
		require.NoError(t, store.Put(ctx, record))

		got, err := store.Get(ctx, record.Token)
		require.NoError(t, err)
		assert.Equal(t, record.Token, got.Token)
		assert.Equal(t, record.Ciphertext, got.Ciphertext)
		assert.Equal(t, record.Nonce, got.Nonce)
		assert.Equal(t, record.AssociatedData, got.AssociatedData)
		assert.WithinDuration(t, record.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("Exists", func(t *testing.T) {
		record := newTestRecord(2)
		exists, err := store.Exists(ctx, record.Token)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, store.Put(ctx, record))

		exists, err = store.Exists(ctx, record.Token)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("DuplicateToken", func(t *testing.T) {
		record := newTestRecord(3)
		require.NoError(t, store.Put(ctx, record))

		again := newTestRecord(4)
		again.Token = record.Token
		err := store.Put(ctx, again)
		assert.ErrorIs(t, err, tokenizationDomain.ErrDuplicateToken)

		got, err := store.Get(ctx, record.Token)
		require.NoError(t, err)
		assert.Equal(t, record.Ciphertext, got.Ciphertext, "first record must not be overwritten")
	})

	t.Run("DuplicateNonce", func(t *testing.T) {
		record := newTestRecord(5)
		require.NoError(t, store.Put(ctx, record))

		again := newTestRecord(6)
		again.Nonce = record.Nonce
		err := store.Put(ctx, again)
		assert.ErrorIs(t, err, tokenizationDomain.ErrDuplicateNonce)

		exists, err := store.Exists(ctx, again.Token)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		got, err := store.Get(ctx, newTestRecord(999).Token)
		assert.ErrorIs(t, err, tokenizationDomain.ErrTokenNotFound)
		assert.Nil(t, got)
	})
}
