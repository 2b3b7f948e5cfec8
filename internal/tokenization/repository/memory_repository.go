package repository

import (
	"context"
	"sync"

	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
)

// MemoryRecordRepository keeps records in process memory. Contents are lost on restart,
// so it is only suitable for tests and local development.
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	records map[tokenizationDomain.Token]*tokenizationDomain.EncryptedRecord
	nonces  map[string]struct{}
}

// NewMemoryRecordRepository creates an empty MemoryRecordRepository.
func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{
		records: make(map[tokenizationDomain.Token]*tokenizationDomain.EncryptedRecord),
		nonces:  make(map[string]struct{}),
	}
}

// Put inserts record if neither its token nor its nonce is already stored.
func (m *MemoryRecordRepository) Put(ctx context.Context, record *tokenizationDomain.EncryptedRecord) error {
	if err := ctx.Err(); err != nil {
		return storeUnavailable("insert record", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.Token]; ok {
		return tokenizationDomain.ErrDuplicateToken
	}
	if _, ok := m.nonces[string(record.Nonce)]; ok {
		return tokenizationDomain.ErrDuplicateNonce
	}

	m.records[record.Token] = cloneRecord(record)
	m.nonces[string(record.Nonce)] = struct{}{}
	return nil
}

// Get returns a copy of the record for token.
func (m *MemoryRecordRepository) Get(
	ctx context.Context,
	token tokenizationDomain.Token,
) (*tokenizationDomain.EncryptedRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeUnavailable("get record", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[token]
	if !ok {
		return nil, tokenizationDomain.ErrTokenNotFound
	}
	return cloneRecord(record), nil
}

// Exists reports whether token is stored.
func (m *MemoryRecordRepository) Exists(ctx context.Context, token tokenizationDomain.Token) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, storeUnavailable("check token", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.records[token]
	return ok, nil
}

// Len returns the number of stored records.
func (m *MemoryRecordRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// PingContext reports the store as reachable until ctx is done.
func (m *MemoryRecordRepository) PingContext(ctx context.Context) error {
	return ctx.Err()
}
