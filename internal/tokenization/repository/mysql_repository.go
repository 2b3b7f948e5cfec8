package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	tokenizationDomain "github.com/allisson/pantoken/internal/tokenization/domain"
)

const mysqlDuplicateEntry = 1062

// MySQLRecordRepository implements record persistence for MySQL databases.
// The DSN must set parseTime=true.
type MySQLRecordRepository struct {
	db *sql.DB
}

// NewMySQLRecordRepository creates a new MySQLRecordRepository.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}

// Put inserts record into the MySQL database.
func (m *MySQLRecordRepository) Put(ctx context.Context, record *tokenizationDomain.EncryptedRecord) error {
	query := `INSERT INTO pan_records (token, ciphertext, nonce, associated_data, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := m.db.ExecContext(
		ctx,
		query,
		string(record.Token),
		record.Ciphertext,
		record.Nonce,
		record.AssociatedData,
		record.CreatedAt.UTC(),
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			if strings.Contains(mysqlErr.Message, nonceConstraintName) {
				return tokenizationDomain.ErrDuplicateNonce
			}
			return tokenizationDomain.ErrDuplicateToken
		}
		return storeUnavailable("insert record", err)
	}
	return nil
}

// Get retrieves the record for token.
func (m *MySQLRecordRepository) Get(
	ctx context.Context,
	token tokenizationDomain.Token,
) (*tokenizationDomain.EncryptedRecord, error) {
	query := `SELECT token, ciphertext, nonce, associated_data, created_at
			  FROM pan_records
			  WHERE token = ?`

	return scanRecord(m.db.QueryRowContext(ctx, query, string(token)))
}

// Exists reports whether token is stored.
func (m *MySQLRecordRepository) Exists(ctx context.Context, token tokenizationDomain.Token) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM pan_records WHERE token = ?)`

	return scanExists(m.db.QueryRowContext(ctx, query, string(token)))
}
