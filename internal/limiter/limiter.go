// Package limiter defines interfaces and implementations for proof-attempt rate limiting.
package limiter

import (
	"context"
	"time"
)

// Limiter controls identity proof attempts and temporary lockouts.
type Limiter interface {
	// Allow reports whether a proof attempt is currently allowed and optional retry-after.
	Allow(ctx context.Context, identity string, sourceHash []byte) (bool, time.Duration, error)
	// Success resets counters after a successful proof.
	Success(ctx context.Context, identity string, sourceHash []byte) error
	// Failure records a failed attempt; may place a temporary block.
	Failure(ctx context.Context, identity string, sourceHash []byte) (bool, time.Duration, error)
}
