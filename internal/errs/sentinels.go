// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrUsernameTaken indicates the username already exists in the registry.
	ErrUsernameTaken = errors.New("username taken")

	// ErrInvalidAmount indicates a payment amount that is missing or not positive.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInactive indicates the tip link is currently disabled by its owner.
	ErrInactive = errors.New("tip link inactive")

	// ErrUnauthorized indicates the caller does not control the required identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates a temporary lock on identity proof attempts.
	ErrRateLimited = errors.New("rate limited")

	// ErrInsufficientFunds indicates the transfer backend rejected a debit.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
