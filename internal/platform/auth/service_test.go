package auth

import (
	"context"
	"testing"
)

type fakeAccountStore struct {
	accounts map[string]*Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[string]*Account{}}
}

func (f *fakeAccountStore) GetByUsername(_ context.Context, username string) (*Account, error) {
	a, ok := f.accounts[username]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountStore) Create(_ context.Context, a *Account) error {
	cp := *a
	f.accounts[a.Username] = &cp
	return nil
}

func (f *fakeAccountStore) Delete(_ context.Context, username string) (int64, error) {
	if _, ok := f.accounts[username]; !ok {
		return 0, nil
	}
	delete(f.accounts, username)
	return 1, nil
}

func newTestService(store AccountStore) *Service {
	return &Service{store: store, secret: []byte("test-secret")}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(newFakeAccountStore())
	ctx := context.Background()

	if err := svc.Register(ctx, "hr1", "long-enough-password", RoleHR); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(ctx, "hr1", "long-enough-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a signed token")
	}

	if _, err := svc.Login(ctx, "hr1", "wrong"); err != ErrAuthFailed {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestService(newFakeAccountStore())
	if err := svc.Register(context.Background(), "x", "pw", "Superuser"); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newTestService(newFakeAccountStore())
	ctx := context.Background()
	if err := svc.Register(ctx, "a", "pw123456", RoleViewer); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := svc.Register(ctx, "a", "pw123456", RoleViewer); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	store := newFakeAccountStore()
	svc := newTestService(store)
	ctx := context.Background()
	if err := svc.Register(ctx, "off", "pw123456", RoleViewer); err != nil {
		t.Fatalf("register: %v", err)
	}
	store.accounts["off"].IsDisabled = true
	if _, err := svc.Login(ctx, "off", "pw123456"); err != ErrAuthFailed {
		t.Fatalf("expected ErrAuthFailed for disabled account, got %v", err)
	}
}
