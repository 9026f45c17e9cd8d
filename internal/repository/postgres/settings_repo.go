package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
)

const adminKey = "admin_identity"

// SettingsRepo implements SettingsRepository using PostgreSQL.
type SettingsRepo struct{ db *DB }

// NewSettingsRepo constructs a settings repository.
func NewSettingsRepo(db *DB) *SettingsRepo { return &SettingsRepo{db: db} }

// SetAdmin stores the admin identity, replacing any previous value.
func (r *SettingsRepo) SetAdmin(ctx context.Context, admin model.Identity) error {
	const q = `
INSERT INTO settings (name, value) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.db.Pool.Exec(ctx, q, adminKey, string(admin))
	return err
}

// GetAdmin loads the admin identity.
func (r *SettingsRepo) GetAdmin(ctx context.Context) (model.Identity, error) {
	const q = `SELECT value FROM settings WHERE name=$1`
	var v string
	if err := r.db.Pool.QueryRow(ctx, q, adminKey).Scan(&v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errs.ErrNotFound
		}
		return "", err
	}
	return model.Identity(v), nil
}
