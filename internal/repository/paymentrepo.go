package repository

import (
	"context"
	"math/big"

	"github.com/stellarpass/ledger/internal/model"
)

// PaymentRepository owns the append-only payment log and applies all aggregate
// updates transactionally with each append. The log is never compacted; ids come
// from a separately persisted counter that moves with each insert.
type PaymentRepository interface {
	// Append assigns the next sequential id, inserts the payment row, and credits
	// both parties' sent/received totals in a single transaction. Crediting an
	// identity with no registered user is a no-op.
	Append(ctx context.Context, p *model.Payment) (model.PaymentID, error)

	// AppendTip behaves like Append and additionally bumps the tip link aggregates
	// for tipUsername within the same transaction.
	AppendTip(ctx context.Context, p *model.Payment, tipUsername string) (model.PaymentID, error)

	// ListByIdentity returns up to limit payments involving the identity, newest first.
	ListByIdentity(ctx context.Context, identity model.Identity, limit int) ([]model.Payment, error)

	// CountAndVolume returns the number of payment rows and the sum of their amounts.
	CountAndVolume(ctx context.Context) (uint64, *big.Int, error)
}
