package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// BlobSchema creates the table used by PostgresBlobRepository.
const BlobSchema = `CREATE TABLE IF NOT EXISTS console_blobs (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

type blobRow struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostgresBlobRepository keeps blobs in the console_blobs table.
type PostgresBlobRepository struct {
	db *sqlx.DB
}

// NewPostgresBlobRepository constructs the repository.
func NewPostgresBlobRepository(db *sqlx.DB) *PostgresBlobRepository {
	return &PostgresBlobRepository{db: db}
}

// EnsureSchema creates the backing table when missing.
func (r *PostgresBlobRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, BlobSchema); err != nil {
		return fmt.Errorf("ensure console_blobs: %w", err)
	}
	return nil
}

// Get returns the blob stored under key.
func (r *PostgresBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT key, value, updated_at FROM console_blobs WHERE key = $1`
	var row blobRow
	if err := r.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}
	return []byte(row.Value), nil
}

// Put upserts the blob stored under key.
func (r *PostgresBlobRepository) Put(ctx context.Context, key string, value []byte) error {
	const query = `INSERT INTO console_blobs (key, value, updated_at)
VALUES (:key, :value, :updated_at)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	row := blobRow{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *PostgresBlobRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM console_blobs WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}
