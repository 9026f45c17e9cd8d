package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/stellarpass/ledger/internal/auth"
	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
	"github.com/stellarpass/ledger/internal/repository"
	"github.com/stellarpass/ledger/internal/transfer"
)

// Ledger owns the append-only payment log and is the single point where the
// external transfer service is invoked.
type Ledger struct {
	payments  repository.PaymentRepository
	transfers transfer.Service
	log       *zap.Logger
	now       func() time.Time
}

// NewLedger constructs the payment ledger service.
func NewLedger(payments repository.PaymentRepository, transfers transfer.Service, log *zap.Logger) *Ledger {
	return &Ledger{payments: payments, transfers: transfers, log: log, now: time.Now}
}

// RecordPayment validates the payment, moves funds through the transfer service,
// and appends the ledger entry with both parties' statistics updated atomically.
// The caller must control from. A transfer failure aborts the whole operation
// with no ledger or statistics change.
func (s *Ledger) RecordPayment(ctx context.Context, proof auth.Capability, from, to model.Identity, amount *big.Int, asset model.Identity, memo string, kind model.PaymentKind) (model.PaymentID, error) {
	if !proof.Controls(from) {
		return 0, errs.ErrUnauthorized
	}
	return s.record(ctx, from, to, amount, asset, memo, kind, "")
}

// record is the shared payment path. Authorization is the caller's
// responsibility: every public entrypoint checks its capability before
// delegating here, so one logical action needs exactly one proof.
func (s *Ledger) record(ctx context.Context, from, to model.Identity, amount *big.Int, asset model.Identity, memo string, kind model.PaymentKind, tipUsername string) (model.PaymentID, error) {
	if to == "" || asset == "" {
		return 0, fmt.Errorf("validation: empty recipient/asset")
	}
	if !kind.Valid() {
		return 0, fmt.Errorf("validation: unknown payment kind %q", kind)
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, errs.ErrInvalidAmount
	}

	if err := s.transfers.Transfer(ctx, from, to, asset, amount); err != nil {
		return 0, fmt.Errorf("transfer: %w", err)
	}

	p := &model.Payment{
		From:      from,
		To:        to,
		Amount:    amount,
		Asset:     asset,
		Memo:      memo,
		Kind:      kind,
		Timestamp: s.now(),
	}

	var (
		id  model.PaymentID
		err error
	)
	if tipUsername == "" {
		id, err = s.payments.Append(ctx, p)
	} else {
		id, err = s.payments.AppendTip(ctx, p, tipUsername)
	}
	if err != nil {
		return 0, err
	}

	s.log.Info("payment recorded",
		zap.Uint64("id", uint64(id)),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("amount", amount.String()),
		zap.String("kind", string(kind)),
	)
	return id, nil
}
