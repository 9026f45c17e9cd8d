package service

import (
	"context"
	"math/big"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/stellarpass/ledger/internal/auth"
	"github.com/stellarpass/ledger/internal/errs"
	"github.com/stellarpass/ledger/internal/model"
	"github.com/stellarpass/ledger/internal/repository"
)

// fakeStore is an in-memory stand-in for all repositories, mirroring their
// transactional contracts: an append either applies the payment row, the
// credits, and the optional tip bump together, or nothing at all.
type fakeStore struct {
	users    map[string]*model.User
	links    map[string]*model.TipLink
	payments []model.Payment
	nextID   uint64
	admin    model.Identity

	createErr   error
	appendErr   error
	setAdminErr error
}

var (
	_ repository.UserRepository     = (*fakeStore)(nil)
	_ repository.PaymentRepository  = (*fakeStore)(nil)
	_ repository.TipLinkRepository  = (*fakeStore)(nil)
	_ repository.SettingsRepository = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[string]*model.User{},
		links: map[string]*model.TipLink{},
	}
}

func copyUser(u *model.User) *model.User {
	c := *u
	c.TotalSent = new(big.Int).Set(u.TotalSent)
	c.TotalReceived = new(big.Int).Set(u.TotalReceived)
	return &c
}

func copyLink(l *model.TipLink) *model.TipLink {
	c := *l
	c.TotalTips = new(big.Int).Set(l.TotalTips)
	return &c
}

func (f *fakeStore) CreateWithTipLink(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.users[u.Username]; exists {
		return errs.ErrUsernameTaken
	}
	f.users[u.Username] = copyUser(u)
	f.links[u.Username] = &model.TipLink{
		Username:      u.Username,
		OwnerIdentity: u.OwnerIdentity,
		TotalTips:     big.NewInt(0),
		Active:        true,
	}
	return nil
}

func (f *fakeStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return copyUser(u), nil
}

func (f *fakeStore) Count(context.Context) (uint64, error) {
	return uint64(len(f.users)), nil
}

func (f *fakeStore) Append(_ context.Context, p *model.Payment) (model.PaymentID, error) {
	return f.append(p, "")
}

func (f *fakeStore) AppendTip(_ context.Context, p *model.Payment, tipUsername string) (model.PaymentID, error) {
	if _, ok := f.links[tipUsername]; !ok {
		return 0, errs.ErrNotFound
	}
	return f.append(p, tipUsername)
}

func (f *fakeStore) append(p *model.Payment, tipUsername string) (model.PaymentID, error) {
	if f.appendErr != nil {
		return 0, f.appendErr
	}
	id := model.PaymentID(f.nextID)
	f.nextID++

	cp := *p
	cp.ID = id
	cp.Amount = new(big.Int).Set(p.Amount)
	f.payments = append(f.payments, cp)

	for _, u := range f.users {
		if u.OwnerIdentity == p.From {
			u.TotalSent.Add(u.TotalSent, p.Amount)
		}
		if u.OwnerIdentity == p.To {
			u.TotalReceived.Add(u.TotalReceived, p.Amount)
		}
	}
	if tipUsername != "" {
		l := f.links[tipUsername]
		l.TotalTips.Add(l.TotalTips, p.Amount)
		l.TipCount++
	}
	return id, nil
}

func (f *fakeStore) ListByIdentity(_ context.Context, identity model.Identity, limit int) ([]model.Payment, error) {
	var out []model.Payment
	for i := len(f.payments) - 1; i >= 0 && len(out) < limit; i-- {
		p := f.payments[i]
		if p.From == identity || p.To == identity {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) CountAndVolume(context.Context) (uint64, *big.Int, error) {
	vol := big.NewInt(0)
	for i := range f.payments {
		vol.Add(vol, f.payments[i].Amount)
	}
	return uint64(len(f.payments)), vol, nil
}

func (f *fakeStore) Get(_ context.Context, username string) (*model.TipLink, error) {
	l, ok := f.links[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return copyLink(l), nil
}

func (f *fakeStore) Toggle(_ context.Context, username string) (bool, error) {
	l, ok := f.links[username]
	if !ok {
		return false, errs.ErrNotFound
	}
	l.Active = !l.Active
	return l.Active, nil
}

func (f *fakeStore) SetAdmin(_ context.Context, admin model.Identity) error {
	if f.setAdminErr != nil {
		return f.setAdminErr
	}
	f.admin = admin
	return nil
}

func (f *fakeStore) GetAdmin(context.Context) (model.Identity, error) {
	if f.admin == "" {
		return "", errs.ErrNotFound
	}
	return f.admin, nil
}

type transferCall struct {
	from, to, asset model.Identity
	amount          *big.Int
}

type fakeTransfer struct {
	err   error
	calls []transferCall
}

func (t *fakeTransfer) Transfer(_ context.Context, from, to, asset model.Identity, amount *big.Int) error {
	if t.err != nil {
		return t.err
	}
	t.calls = append(t.calls, transferCall{from: from, to: to, asset: asset, amount: new(big.Int).Set(amount)})
	return nil
}

var testIssuer = auth.NewIssuer([]byte("test-key"), time.Minute)
var testVerifier = auth.NewVerifier([]byte("test-key"))

// capFor mints a capability proving control of identity.
func capFor(t *testing.T, identity model.Identity) auth.Capability {
	t.Helper()
	tok, _, err := testIssuer.Issue(identity)
	if err != nil {
		t.Fatalf("issue capability: %v", err)
	}
	c, err := testVerifier.Verify(tok)
	if err != nil {
		t.Fatalf("verify capability: %v", err)
	}
	return c
}

// harness wires all services over one fake store and transfer backend.
type harness struct {
	store    *fakeStore
	transfer *fakeTransfer
	registry *Registry
	ledger   *Ledger
	tips     *TipLinks
	stats    *Stats
	system   *System
}

func newHarness() *harness {
	store := newFakeStore()
	trans := &fakeTransfer{}
	log := zap.NewNop()
	ledger := NewLedger(store, trans, log)
	return &harness{
		store:    store,
		transfer: trans,
		registry: NewRegistry(store, log),
		ledger:   ledger,
		tips:     NewTipLinks(store, ledger, log),
		stats:    NewStats(store, store),
		system:   NewSystem(store, log),
	}
}
