package postgres

import (
	"context"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
)

// PaymentRepo implements PaymentRepository using PostgreSQL.
type PaymentRepo struct{ db *DB }

// NewPaymentRepo constructs a payment repository.
func NewPaymentRepo(db *DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Append stores a payment and applies both parties' aggregate updates in one
// transaction. Ids come from the payment_counter row, bumped in the same
// transaction as the insert, so the sequence stays gapless: a rolled back append
// rolls the counter back with it.
func (r *PaymentRepo) Append(ctx context.Context, p *model.Payment) (id model.PaymentID, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
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

	return r.appendTx(ctx, tx, p)
}

// AppendTip behaves like Append and additionally bumps the tip link aggregates
// for tipUsername, all within the same transaction.
func (r *PaymentRepo) AppendTip(ctx context.Context, p *model.Payment, tipUsername string) (id model.PaymentID, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
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

	id, err = r.appendTx(ctx, tx, p)
	if err != nil {
		return 0, err
	}

	const bump = `
UPDATE tip_links
SET total_tips = total_tips + $2, tip_count = tip_count + 1
WHERE username = $1`
	tag, err := tx.Exec(ctx, bump, tipUsername, numeric(p.Amount))
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		err = errs.ErrNotFound
		return 0, err
	}
	return id, nil
}

func (r *PaymentRepo) appendTx(ctx context.Context, tx pgx.Tx, p *model.Payment) (model.PaymentID, error) {
	const next = `UPDATE payment_counter SET next_id = next_id + 1 RETURNING next_id - 1`
	var id int64
	if err := tx.QueryRow(ctx, next).Scan(&id); err != nil {
		return 0, err
	}

	const ins = `
INSERT INTO payments (id, from_identity, to_identity, amount, asset, memo, kind, ts)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := tx.Exec(ctx, ins,
		id, string(p.From), string(p.To), numeric(p.Amount),
		string(p.Asset), p.Memo, string(p.Kind), p.Timestamp,
	); err != nil {
		return 0, err
	}

	// Zero rows affected means the identity has no registered user: not an error.
	const creditSent = `UPDATE users SET total_sent = total_sent + $2 WHERE owner_identity = $1`
	if _, err := tx.Exec(ctx, creditSent, string(p.From), numeric(p.Amount)); err != nil {
		return 0, err
	}
	const creditReceived = `UPDATE users SET total_received = total_received + $2 WHERE owner_identity = $1`
	if _, err := tx.Exec(ctx, creditReceived, string(p.To), numeric(p.Amount)); err != nil {
		return 0, err
	}

	return model.PaymentID(id), nil
}

// ListByIdentity returns up to limit payments involving the identity, newest first.
func (r *PaymentRepo) ListByIdentity(ctx context.Context, identity model.Identity, limit int) ([]model.Payment, error) {
	const q = `
SELECT id, from_identity, to_identity, amount, asset, memo, kind, ts
FROM payments
WHERE from_identity=$1 OR to_identity=$1
ORDER BY id DESC
LIMIT $2`
	rows, err := r.db.Pool.Query(ctx, q, string(identity), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var (
			p          model.Payment
			id         int64
			from, to   string
			amount     pgtype.Numeric
			asset, knd string
		)
		if err = rows.Scan(&id, &from, &to, &amount, &asset, &p.Memo, &knd, &p.Timestamp); err != nil {
			return nil, err
		}
		p.ID = model.PaymentID(id)
		p.From = model.Identity(from)
		p.To = model.Identity(to)
		p.Amount = bigFrom(amount)
		p.Asset = model.Identity(asset)
		p.Kind = model.PaymentKind(knd)
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountAndVolume returns the number of payment rows and the sum of their amounts.
func (r *PaymentRepo) CountAndVolume(ctx context.Context) (uint64, *big.Int, error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(amount),0) FROM payments`
	var n int64
	var vol pgtype.Numeric
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&n, &vol); err != nil {
		return 0, nil, err
	}
	return uint64(n), bigFrom(vol), nil
}
