package transfer

import (
	"context"
	"errors"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
)

type pgxPool interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PG is a PostgreSQL-backed transfer service over a per-(identity, asset)
// balances table. A transfer debits the sender's row with a funds check and
// credits the recipient in one transaction, so a failed transfer has no effect.
type PG struct{ pool pgxPool }

// NewPG constructs a balance-backed transfer service.
func NewPG(pool pgxPool) *PG { return &PG{pool: pool} }

func amountParam(v *big.Int) pgtype.Numeric {
	if v == nil {
		v = big.NewInt(0)
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Valid: true}
}

// Transfer moves amount of asset between identities.
func (t *PG) Transfer(ctx context.Context, from, to, asset model.Identity, amount *big.Int) (err error) {
	if amount == nil || amount.Sign() <= 0 {
		return errs.ErrInvalidAmount
	}

	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{})
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

	const debit = `
UPDATE balances SET amount = amount - $3
WHERE identity=$1 AND asset=$2 AND amount >= $3`
	tag, err := tx.Exec(ctx, debit, string(from), string(asset), amountParam(amount))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = errs.ErrInsufficientFunds
		return err
	}

	const credit = `
INSERT INTO balances (identity, asset, amount) VALUES ($1,$2,$3)
ON CONFLICT (identity, asset) DO UPDATE SET amount = balances.amount + EXCLUDED.amount`
	if _, err = tx.Exec(ctx, credit, string(to), string(asset), amountParam(amount)); err != nil {
		return err
	}
	return nil
}

// Credit funds an identity's balance directly. It exists for bootstrap and tests;
// the accounting core never calls it.
func (t *PG) Credit(ctx context.Context, identity, asset model.Identity, amount *big.Int) (err error) {
	if amount == nil || amount.Sign() <= 0 {
		return errs.ErrInvalidAmount
	}

	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{})
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

	const credit = `
INSERT INTO balances (identity, asset, amount) VALUES ($1,$2,$3)
ON CONFLICT (identity, asset) DO UPDATE SET amount = balances.amount + EXCLUDED.amount`
	if _, err = tx.Exec(ctx, credit, string(identity), string(asset), amountParam(amount)); err != nil {
		return err
	}
	return nil
}

// Balance reads the current balance for (identity, asset); absent rows read as zero.
func (t *PG) Balance(ctx context.Context, identity, asset model.Identity) (*big.Int, error) {
	const sel = `SELECT amount FROM balances WHERE identity=$1 AND asset=$2`
	var n pgtype.Numeric
	if err := t.pool.QueryRow(ctx, sel, string(identity), string(asset)).Scan(&n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	v := new(big.Int)
	if n.Valid && n.Int != nil {
		v.Set(n.Int)
		if n.Exp > 0 {
			v.Mul(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
		}
	}
	return v, nil
}
