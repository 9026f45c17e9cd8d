package auth

import (
	"context"
	"errors"
	"time"

	pkgcrypto "github.com/stellarpass/ledger/internal/crypto"
	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/limiter"
	"github.com/stellarpass/ledger/internal/model"
)

// Secret is an enrolled identity proof record.
type Secret struct {
	Identity   model.Identity
	SecretHash []byte
	Salt       []byte
	CreatedAt  time.Time
}

// SecretStore persists identity proof secrets.
type SecretStore interface {
	// Put inserts or replaces the proof secret for an identity.
	Put(ctx context.Context, s *Secret) error
	// Get loads the proof secret for an identity.
	Get(ctx context.Context, identity model.Identity) (*Secret, error)
}

// Service enrolls identities and exchanges successful proofs for capability tokens.
type Service struct {
	secrets SecretStore
	issuer  *Issuer
	lim     limiter.Limiter
}

// NewService constructs the proof service.
func NewService(secrets SecretStore, issuer *Issuer, lim limiter.Limiter) *Service {
	return &Service{secrets: secrets, issuer: issuer, lim: lim}
}

// Enroll stores an Argon2id digest of the identity's proof secret.
func (s *Service) Enroll(ctx context.Context, identity model.Identity, secret string) error {
	if identity == "" || secret == "" {
		return errors.New("empty identity/secret")
	}
	salt, err := pkgcrypto.RandBytes(16)
	if err != nil {
		return err
	}
	rec := &Secret{
		Identity:   identity,
		SecretHash: pkgcrypto.HashSecret([]byte(secret), salt),
		Salt:       salt,
	}
	return s.secrets.Put(ctx, rec)
}

// Prove verifies the secret with rate limiting by (identity, source) and returns
// a signed capability token on success. A missing identity and a wrong secret are
// indistinguishable to the caller.
func (s *Service) Prove(ctx context.Context, identity model.Identity, secret, source string) (string, time.Time, error) {
	srcHash := limiter.HashSource(source)

	allowed, _, err := s.lim.Allow(ctx, string(identity), srcHash)
	if err != nil {
		return "", time.Time{}, err
	}
	if !allowed {
		return "", time.Time{}, errs.ErrRateLimited
	}

	rec, err := s.secrets.Get(ctx, identity)
	if err != nil || !pkgcrypto.VerifySecret([]byte(secret), rec.Salt, rec.SecretHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, string(identity), srcHash); ferr == nil && blocked {
			return "", time.Time{}, errs.ErrRateLimited
		}
		return "", time.Time{}, errs.ErrUnauthorized
	}

	// best-effort counter reset
	_ = s.lim.Success(ctx, string(identity), srcHash)

	return s.issuer.Issue(identity)
}
