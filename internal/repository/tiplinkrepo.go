package repository

import (
	"context"

	"github.com/stellarpass/ledger/internal/model"
)

// TipLinkRepository provides access to per-user tip links.
type TipLinkRepository interface {
	// Get loads a tip link by username.
	Get(ctx context.Context, username string) (*model.TipLink, error)

	// Toggle flips the active flag and returns the new value.
	Toggle(ctx context.Context, username string) (bool, error)
}
