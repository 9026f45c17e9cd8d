// Package auth models the host authorization environment: identities enroll a
// proof secret, prove control of themselves, and receive a short-lived capability
// token. Every mutating ledger operation demands a Capability and checks it before
// touching storage.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
)

// Capability names the single identity the caller has proven control of.
// It is only constructible through Verifier.Verify, so internal helpers cannot
// fabricate authorization.
type Capability struct {
	identity  model.Identity
	expiresAt time.Time
}

// Identity returns the proven identity.
func (c Capability) Identity() model.Identity { return c.identity }

// Controls reports whether the capability proves control of id.
func (c Capability) Controls(id model.Identity) bool {
	return c.identity != "" && c.identity == id
}

// ExpiresAt returns the capability expiry (for diagnostics).
func (c Capability) ExpiresAt() time.Time { return c.expiresAt }

// Issuer signs capability tokens for proven identities.
type Issuer struct {
	signKey []byte
	ttl     time.Duration
}

// NewIssuer constructs an Issuer with an HS256 signing key and token TTL.
func NewIssuer(signKey []byte, ttl time.Duration) *Issuer {
	return &Issuer{signKey: signKey, ttl: ttl}
}

// Issue creates a signed HS256 token whose subject is the given identity.
func (i *Issuer) Issue(identity model.Identity) (string, time.Time, error) {
	if identity == "" {
		return "", time.Time{}, errors.New("empty identity")
	}
	now := time.Now()
	exp := now.Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   string(identity),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.signKey)
	return signed, exp, err
}

// Verifier validates capability tokens produced by an Issuer with the same key.
type Verifier struct {
	signKey []byte
}

// NewVerifier constructs a Verifier with the HS256 signing key.
func NewVerifier(signKey []byte) *Verifier {
	return &Verifier{signKey: signKey}
}

// Verify parses and validates a token and returns the capability it carries.
// Any signature, expiry, or claim problem maps to errs.ErrUnauthorized.
func (v *Verifier) Verify(token string) (Capability, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return Capability{}, errs.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" || claims.ExpiresAt == nil {
		return Capability{}, errs.ErrUnauthorized
	}
	return Capability{
		identity:  model.Identity(claims.Subject),
		expiresAt: claims.ExpiresAt.Time,
	}, nil
}
