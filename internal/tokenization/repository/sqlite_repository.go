package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
)

// SQLiteRecordRepository implements record persistence for SQLite databases.
type SQLiteRecordRepository struct {
	db *sql.DB
}

// NewSQLiteRecordRepository creates a new SQLiteRecordRepository.
func NewSQLiteRecordRepository(db *sql.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{db: db}
}

// Put inserts record. Constraint violations on the primary key or the nonce index map
// to ErrDuplicateToken and ErrDuplicateNonce.
func (s *SQLiteRecordRepository) Put(ctx context.Context, record *tokenizationDomain.EncryptedRecord) error {
	query := `INSERT INTO pan_records (token, ciphertext, nonce, associated_data, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		string(record.Token),
		record.Ciphertext,
		record.Nonce,
		record.AssociatedData,
		record.CreatedAt.UTC(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			if strings.Contains(sqliteErr.Error(), "pan_records.nonce") {
				return tokenizationDomain.ErrDuplicateNonce
			}
			return tokenizationDomain.ErrDuplicateToken
		}
		return storeUnavailable("insert record", err)
	}
	return nil
}

// Get retrieves the record for token.
func (s *SQLiteRecordRepository) Get(
	ctx context.Context,
	token tokenizationDomain.Token,
) (*tokenizationDomain.EncryptedRecord, error) {
	query := `SELECT token, ciphertext, nonce, associated_data, created_at
			  FROM pan_records
			  WHERE token = ?`

	return scanRecord(s.db.QueryRowContext(ctx, query, string(token)))
}

// Exists reports whether token is stored.
func (s *SQLiteRecordRepository) Exists(ctx context.Context, token tokenizationDomain.Token) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM pan_records WHERE token = ?)`

	return scanExists(s.db.QueryRowContext(ctx, query, string(token)))
}

func scanRecord(row *sql.Row) (*tokenizationDomain.EncryptedRecord, error) {
	var record tokenizationDomain.EncryptedRecord
	var token string

	err := row.Scan(
		&token,
		&record.Ciphertext,
		&record.Nonce,
		&record.AssociatedData,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tokenizationDomain.ErrTokenNotFound
		}
		return nil, storeUnavailable("get record", err)
	}

	record.Token = tokenizationDomain.Token(token)
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}

func scanExists(row *sql.Row) (bool, error) {
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, storeUnavailable("check token", err)
	}
	return exists, nil
}
