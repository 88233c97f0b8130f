package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bookswap/internal/common"
	"github.com/dmitrijs2005/bookswap/internal/dbx"
)

// SQLiteRepository stores the credential in the local client database,
// table credentials(key, value), under the common.CredentialSlot key.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, common.CredentialSlot).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential: %w", err)
	}
	return value, nil
}

// Set replaces the slot wholesale. The delete+insert pair runs in one
// transaction so a reader never observes a half-replaced slot.
func (r *SQLiteRepository) Set(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM credentials WHERE key = ?`, common.CredentialSlot); err != nil {
			return fmt.Errorf("failed to clear credential slot: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO credentials(key, value) VALUES(?, ?)`, common.CredentialSlot, token); err != nil {
			return fmt.Errorf("failed to set credential: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE key = ?`, common.CredentialSlot); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}
