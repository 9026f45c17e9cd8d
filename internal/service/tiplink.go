package service

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"github.com/stellarpass/ledger/internal/auth"
	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
	"github.com/stellarpass/ledger/internal/repository"
)

// TipLinks owns the username -> tip link mapping and the tip payment path.
type TipLinks struct {
	links  repository.TipLinkRepository
	ledger *Ledger
	log    *zap.Logger
}

// NewTipLinks constructs the tip link service around the shared payment path.
func NewTipLinks(links repository.TipLinkRepository, ledger *Ledger, log *zap.Logger) *TipLinks {
	return &TipLinks{links: links, ledger: ledger, log: log}
}

// SendTip resolves the link, then runs the ordinary payment path to the link
// owner with kind tip; the link's total_tips/tip_count move in the same
// transaction as the ledger append. The caller must control from.
func (s *TipLinks) SendTip(ctx context.Context, proof auth.Capability, from model.Identity, username string, amount *big.Int, asset model.Identity, message string) (model.PaymentID, error) {
	if !proof.Controls(from) {
		return 0, errs.ErrUnauthorized
	}

	link, err := s.links.Get(ctx, username)
	if err != nil {
		return 0, err
	}
	if !link.Active {
		return 0, errs.ErrInactive
	}

	id, err := s.ledger.record(ctx, from, link.OwnerIdentity, amount, asset, message, model.KindTip, username)
	if err != nil {
		return 0, err
	}

	s.log.Info("tip sent",
		zap.Uint64("payment_id", uint64(id)),
		zap.String("username", username),
	)
	return id, nil
}

// Toggle flips the link's active gate and returns the new value. Only the link
// owner may toggle; anyone else gets errs.ErrUnauthorized.
func (s *TipLinks) Toggle(ctx context.Context, proof auth.Capability, username string) (bool, error) {
	link, err := s.links.Get(ctx, username)
	if err != nil {
		return false, err
	}
	if !proof.Controls(link.OwnerIdentity) {
		return false, errs.ErrUnauthorized
	}

	active, err := s.links.Toggle(ctx, username)
	if err != nil {
		return false, err
	}
	s.log.Info("tip link toggled",
		zap.String("username", username),
		zap.Bool("active", active),
	)
	return active, nil
}

// TipLink returns the link for a username. Pure read, no authorization.
func (s *TipLinks) TipLink(ctx context.Context, username string) (*model.TipLink, error) {
	return s.links.Get(ctx, username)
}
