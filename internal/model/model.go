// Package model defines domain entities used by services and repositories.
package model

import (
	"math/big"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Identity is an externally verifiable principal: a user's owning account or the
// account of a transferable asset. The engine never interprets its contents.
type Identity string

// PaymentID is the strictly increasing, never reused ledger sequence number.
type PaymentID uint64

// PaymentKind classifies a ledger entry.
type PaymentKind string

const (
	KindTransfer PaymentKind = "transfer"
	KindTip      PaymentKind = "tip"
	KindReward   PaymentKind = "reward"
	KindGift     PaymentKind = "gift"
)

// Valid reports whether k is one of the known payment kinds.
func (k PaymentKind) Valid() bool {
	switch k {
	case KindTransfer, KindTip, KindReward, KindGift:
		return true
	}
	return false
}

// User is a registered account. Accumulators are maintained incrementally by the
// payment path and must always equal the corresponding ledger sums.
type User struct {
	ID            uuid.UUID // surrogate PK
	Username      string    // unique, immutable
	OwnerIdentity Identity  // identity authorized to act as this user
	CredentialRef string    // opaque external-auth pointer
	TotalSent     *big.Int
	TotalReceived *big.Int
	CreatedAt     time.Time // ledger timestamp at registration
}

// Payment is an immutable, append-only ledger entry.
type Payment struct {
	ID        PaymentID
	From      Identity
	To        Identity
	Amount    *big.Int // always > 0
	Asset     Identity
	Memo      string
	Kind      PaymentKind
	Timestamp time.Time
}

// TipLink is the per-user tip page record, created and destroyed together with
// its User. TotalTips/TipCount cover exactly the tip payments to OwnerIdentity.
type TipLink struct {
	Username      string
	OwnerIdentity Identity // copied from User at registration, immutable
	TotalTips     *big.Int
	TipCount      uint64
	Active        bool
}

// Stats is the aggregate view over the whole ledger.
type Stats struct {
	UserCount    uint64
	PaymentCount uint64
	TotalVolume  *big.Int
}
