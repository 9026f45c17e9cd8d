// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/stellarpass/ledger/internal/model"
)

// UserRepository provides access to registered users and their aggregates.
type UserRepository interface {
	// CreateWithTipLink inserts the user row and its paired active tip link in one
	// transaction. Fails with errs.ErrUsernameTaken if the username exists.
	CreateWithTipLink(ctx context.Context, u *model.User) error

	// GetByUsername loads a user by username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Count returns the number of registered users.
	Count(ctx context.Context) (uint64, error)
}
