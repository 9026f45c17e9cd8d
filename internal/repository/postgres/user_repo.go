package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// CreateWithTipLink inserts the user and its paired active tip link in one
// transaction, so registration commits both rows or neither.
func (r *UserRepo) CreateWithTipLink(ctx context.Context, u *model.User) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const insUser = `
INSERT INTO users (id, username, owner_identity, credential_ref, total_sent, total_received, created_at)
VALUES ($1,$2,$3,$4,0,0,$5)`
	if _, err = tx.Exec(ctx, insUser,
		u.ID, u.Username, string(u.OwnerIdentity), u.CredentialRef, u.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			err = errs.ErrUsernameTaken
		}
		return err
	}

	const insLink = `
INSERT INTO tip_links (username, owner_identity, total_tips, tip_count, active)
VALUES ($1,$2,0,0,true)`
	if _, err = tx.Exec(ctx, insLink, u.Username, string(u.OwnerIdentity)); err != nil {
		return err
	}
	return nil
}

// GetByUsername selects a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `
SELECT id, username, owner_identity, credential_ref, total_sent, total_received, created_at
FROM users WHERE username=$1`
	row := r.db.Pool.QueryRow(ctx, q, username)

	var u model.User
	var owner string
	var sent, received pgtype.Numeric
	err := row.Scan(&u.ID, &u.Username, &owner, &u.CredentialRef, &sent, &received, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	u.OwnerIdentity = model.Identity(owner)
	u.TotalSent = bigFrom(sent)
	u.TotalReceived = bigFrom(received)
	return &u, nil
}

// Count returns the number of registered users.
func (r *UserRepo) Count(ctx context.Context) (uint64, error) {
	const q = `SELECT COUNT(*) FROM users`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return uint64(n), nil
}
