package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
)

const pgUniqueViolation = "23505"

// PostgreSQLRecordRepository implements record persistence for PostgreSQL databases.
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecordRepository creates a new PostgreSQLRecordRepository.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{db: db}
}

// Put inserts record into the PostgreSQL database.
func (p *PostgreSQLRecordRepository) Put(ctx context.Context, record *tokenizationDomain.EncryptedRecord) error {
	query := `INSERT INTO pan_records (token, ciphertext, nonce, associated_data, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := p.db.ExecContext(
		ctx,
		query,
		string(record.Token),
		record.Ciphertext,
		record.Nonce,
		record.AssociatedData,
		record.CreatedAt.UTC(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			if pqErr.Constraint == nonceConstraintName {
				return tokenizationDomain.ErrDuplicateNonce
			}
			return tokenizationDomain.ErrDuplicateToken
		}
		return storeUnavailable("insert record", err)
	}
	return nil
}

// Get retrieves the record for token.
func (p *PostgreSQLRecordRepository) Get(
	ctx context.Context,
	token tokenizationDomain.Token,
) (*tokenizationDomain.EncryptedRecord, error) {
	query := `SELECT token, ciphertext, nonce, associated_data, created_at
			  FROM pan_records
			  WHERE token = $1`

	return scanRecord(p.db.QueryRowContext(ctx, query, string(token)))
}

// Exists reports whether token is stored.
func (p *PostgreSQLRecordRepository) Exists(ctx context.Context, token tokenizationDomain.Token) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM pan_records WHERE token = $1)`

	return scanExists(p.db.QueryRowContext(ctx, query, string(token)))
}
