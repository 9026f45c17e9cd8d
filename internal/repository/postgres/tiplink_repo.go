package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
)

// TipLinkRepo implements TipLinkRepository using PostgreSQL.
type TipLinkRepo struct{ db *DB }

// NewTipLinkRepo constructs a tip link repository.
func NewTipLinkRepo(db *DB) *TipLinkRepo { return &TipLinkRepo{db: db} }

// Get selects a tip link by username.
func (r *TipLinkRepo) Get(ctx context.Context, username string) (*model.TipLink, error) {
	const q = `
SELECT username, owner_identity, total_tips, tip_count, active
FROM tip_links WHERE username=$1`
	row := r.db.Pool.QueryRow(ctx, q, username)

	var l model.TipLink
	var owner string
	var tips pgtype.Numeric
	var count int64
	if err := row.Scan(&l.Username, &owner, &tips, &count, &l.Active); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	l.OwnerIdentity = model.Identity(owner)
	l.TotalTips = bigFrom(tips)
	l.TipCount = uint64(count)
	return &l, nil
}

// Toggle flips the active flag and returns the new value.
func (r *TipLinkRepo) Toggle(ctx context.Context, username string) (bool, error) {
	const q = `UPDATE tip_links SET active = NOT active WHERE username=$1 RETURNING active`
	var active bool
	if err := r.db.Pool.QueryRow(ctx, q, username).Scan(&active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, errs.ErrNotFound
		}
		return false, err
	}
	return active, nil
}
