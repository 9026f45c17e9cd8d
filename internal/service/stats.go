package service

import (
	"context"

	"github.com/stellarpass/ledger/internal/model"
	"github.com/stellarpass/ledger/internal/repository"
)

// Stats provides read-only views over the registry and ledger. No mutation,
// no authorization.
type Stats struct {
	users    repository.UserRepository
	payments repository.PaymentRepository
}

// NewStats constructs the stats/query service.
func NewStats(users repository.UserRepository, payments repository.PaymentRepository) *Stats {
	return &Stats{users: users, payments: payments}
}

// UserPayments returns up to limit payments involving the identity, newest
// first. Each call rescans from the current log state.
func (s *Stats) UserPayments(ctx context.Context, identity model.Identity, limit int) ([]model.Payment, error) {
	if limit <= 0 {
		return nil, nil
	}
	return s.payments.ListByIdentity(ctx, identity, limit)
}

// GlobalStats returns the user count, payment count, and total payment volume.
// Volume is computed by full scan of the log, never from a cached aggregate.
func (s *Stats) GlobalStats(ctx context.Context) (model.Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	count, volume, err := s.payments.CountAndVolume(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	return model.Stats{UserCount: users, PaymentCount: count, TotalVolume: volume}, nil
}
