package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
)

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGSecretStore implements SecretStore using PostgreSQL.
type PGSecretStore struct{ pool pgxQuerier }

// NewPGSecretStore constructs a PostgreSQL-backed secret store.
func NewPGSecretStore(pool pgxQuerier) *PGSecretStore {
	return &PGSecretStore{pool: pool}
}

// Put inserts or replaces the proof secret for an identity.
func (r *PGSecretStore) Put(ctx context.Context, s *Secret) error {
	const q = `
INSERT INTO identity_secrets (identity, secret_hash, salt)
VALUES ($1, $2, $3)
ON CONFLICT (identity)
DO UPDATE SET secret_hash = EXCLUDED.secret_hash, salt = EXCLUDED.salt`
	_, err := r.pool.Exec(ctx, q, string(s.Identity), s.SecretHash, s.Salt)
	return err
}

// Get loads the proof secret for an identity.
func (r *PGSecretStore) Get(ctx context.Context, identity model.Identity) (*Secret, error) {
	const q = `
SELECT identity, secret_hash, salt, created_at
FROM identity_secrets WHERE identity=$1`
	row := r.pool.QueryRow(ctx, q, string(identity))
	var s Secret
	var id string
	if err := row.Scan(&id, &s.SecretHash, &s.Salt, &s.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	s.Identity = model.Identity(id)
	return &s, nil
}
