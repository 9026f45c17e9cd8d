package repository

import (
	"context"

	"github.com/stellarpass/ledger/internal/model"
)

// SettingsRepository is the small fixed-configuration tier of the store.
type SettingsRepository interface {
	// SetAdmin stores the admin identity, replacing any previous value.
	SetAdmin(ctx context.Context, admin model.Identity) error

	// GetAdmin loads the admin identity.
	GetAdmin(ctx context.Context) (model.Identity, error)
}
