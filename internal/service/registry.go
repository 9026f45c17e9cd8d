// Package service contains the accounting engine's application services: user
// registry, payment ledger, tip links, stats, and system bootstrap. Every
// mutating operation takes a capability proving control of the acting identity
// and checks it before any storage access.
package service

import (
	"errors"
	"math/big"
	"time"

	"context"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/stellarpass/ledger/internal/auth"
	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
	"github.com/stellarpass/ledger/internal/repository"
)

// Registry owns the username -> user mapping.
type Registry struct {
	users repository.UserRepository
	log   *zap.Logger
	now   func() time.Time
}

// NewRegistry constructs the user registry service.
func NewRegistry(users repository.UserRepository, log *zap.Logger) *Registry {
	return &Registry{users: users, log: log, now: time.Now}
}

// Register creates a user with zeroed accumulators and its paired active tip
// link; both commit together or not at all. The caller must control owner.
// Fails with errs.ErrUsernameTaken if the username exists.
func (s *Registry) Register(ctx context.Context, proof auth.Capability, username string, owner model.Identity, credentialRef string) error {
	if username == "" || owner == "" {
		return errors.New("validation: empty username/owner identity")
	}
	if !proof.Controls(owner) {
		return errs.ErrUnauthorized
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return err
	}
	u := &model.User{
		ID:            uid,
		Username:      username,
		OwnerIdentity: owner,
		CredentialRef: credentialRef,
		TotalSent:     big.NewInt(0),
		TotalReceived: big.NewInt(0),
		CreatedAt:     s.now(),
	}
	if err := s.users.CreateWithTipLink(ctx, u); err != nil {
		return err
	}

	s.log.Info("user registered",
		zap.String("username", username),
		zap.String("owner", string(owner)),
	)
	return nil
}

// Lookup returns the user for a username. Pure read, no authorization.
func (s *Registry) Lookup(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}
