package limiter

import (
	"context"
	"crypto/sha256"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG is a PostgreSQL-backed limiter implementation with sliding window and lockout.
type PG struct {
	pool     pgxQuerier
	window   time.Duration
	maxFails int
	blockFor time.Duration
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPG constructs a PostgreSQL-backed limiter.
func NewPG(pool *pgxpool.Pool, window time.Duration, maxFails int, blockFor time.Duration) *PG {
	return &PG{pool: pool, window: window, maxFails: maxFails, blockFor: blockFor}
}

// NewPGWithQuerier constructs a PostgreSQL-backed limiter over any querier.
func NewPGWithQuerier(q pgxQuerier, window time.Duration, maxFails int, blockFor time.Duration) *PG {
	return &PG{pool: q, window: window, maxFails: maxFails, blockFor: blockFor}
}

// HashSource returns a stable hash of a caller source (e.g. IP) to avoid storing it raw.
func HashSource(source string) []byte {
	h := sha256.Sum256([]byte(source))
	return h[:]
}

// Allow reports whether a proof attempt is currently allowed and a retry-after duration.
func (l *PG) Allow(ctx context.Context, identity string, sourceHash []byte) (bool, time.Duration, error) {
	const q = `SELECT blocked_until, updated_at FROM proof_attempts WHERE identity=$1 AND source_hash=$2`
	var blockedUntil time.Time
	var updatedAt time.Time
	err := l.pool.QueryRow(ctx, q, identity, sourceHash).Scan(&blockedUntil, &updatedAt)
	switch err {
	case nil:
		if blockedUntil.After(time.Now()) {
			return false, time.Until(blockedUntil), nil
		}
		return true, 0, nil
	case pgx.ErrNoRows:
		return true, 0, nil
	default:
		return false, 0, err
	}
}

// Success resets counters for (identity, source).
func (l *PG) Success(ctx context.Context, identity string, sourceHash []byte) error {
	const q = `
INSERT INTO proof_attempts (identity, source_hash, fail_count, blocked_until, updated_at)
VALUES ($1,$2,0,'epoch',now())
ON CONFLICT (identity, source_hash)
DO UPDATE SET fail_count=0, blocked_until='epoch', updated_at=now()`
	_, err := l.pool.Exec(ctx, q, identity, sourceHash)
	return err
}

// Failure records a failed attempt; may set a block until a future time.
func (l *PG) Failure(ctx context.Context, identity string, sourceHash []byte) (bool, time.Duration, error) {
	now := time.Now()

	const q = `
INSERT INTO proof_attempts (identity, source_hash, fail_count, blocked_until, updated_at)
VALUES ($1,$2,1,'epoch',now())
ON CONFLICT (identity, source_hash) DO UPDATE
SET
  fail_count = CASE WHEN EXCLUDED.updated_at - proof_attempts.updated_at > $3::interval THEN 1 ELSE proof_attempts.fail_count + 1 END,
  updated_at = now()
RETURNING fail_count`
	var fails int
	if err := l.pool.QueryRow(ctx, q, identity, sourceHash, l.window).Scan(&fails); err != nil {
		return false, 0, err
	}
	if fails >= l.maxFails {
		blockUntil := now.Add(l.blockFor)
		const upd = `UPDATE proof_attempts SET blocked_until=$3 WHERE identity=$1 AND source_hash=$2`
		if _, err := l.pool.Exec(ctx, upd, identity, sourceHash, blockUntil); err != nil {
			return false, 0, err
		}
		return true, l.blockFor, nil
	}
	return false, 0, nil
}
