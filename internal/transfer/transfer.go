// Package transfer defines the external value-transfer boundary of the engine and
// a PostgreSQL-backed balance implementation. The ledger only requires the Service
// contract: synchronous, fallible, and without effect on failure.
package transfer

import (
	"context"
	"math/big"

	"github.com/stellarpass/ledger/internal/model"
)

// Service moves value between identities. Implementations perform their own
// balance checks and must leave no effect when they return an error.
type Service interface {
	// Transfer moves amount of asset from one identity to another.
	Transfer(ctx context.Context, from, to, asset model.Identity, amount *big.Int) error
}
