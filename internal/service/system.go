package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/stellarpass/ledger/internal/auth"
	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
	"github.com/stellarpass/ledger/internal/repository"
)

// System handles engine bootstrap. The admin identity is stored but consulted
// by no other operation.
type System struct {
	settings repository.SettingsRepository
	log      *zap.Logger
}

// NewSystem constructs the system service.
func NewSystem(settings repository.SettingsRepository, log *zap.Logger) *System {
	return &System{settings: settings, log: log}
}

// Initialize records the admin identity. The caller must control it. Calling
// again replaces the stored value, matching the bootstrap semantics of the
// hosting environment.
func (s *System) Initialize(ctx context.Context, proof auth.Capability, admin model.Identity) error {
	if !proof.Controls(admin) {
		return errs.ErrUnauthorized
	}
	if err := s.settings.SetAdmin(ctx, admin); err != nil {
		return err
	}
	s.log.Info("initialized", zap.String("admin", string(admin)))
	return nil
}

// Admin returns the stored admin identity.
func (s *System) Admin(ctx context.Context) (model.Identity, error) {
	return s.settings.GetAdmin(ctx)
}
