package identity_test

import (
	"context"
	"errors"
	"testing"

	"crbklasemen/pkg/identity"
	"crbklasemen/pkg/testdb"

	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) *identity.Service {
	return identity.NewService(testdb.Open(t)).WithCost(bcrypt.MinCost)
}

func TestProvisionAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	ident, err := svc.Provision(ctx, nil, "  Staff@Ceria.Bet ", "rahasia1")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if ident.ID == "" || ident.Email != "staff@ceria.bet" {
		t.Fatalf("unexpected identity %+v", ident)
	}
	if _, err := svc.Authenticate(ctx, "staff@ceria.bet", "rahasia1"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "staff@ceria.bet", "salah"); !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost@ceria.bet", "rahasia1"); !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email got %v", err)
	}
}

func TestProvisionRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.Provision(ctx, nil, "dup@ceria.bet", "rahasia1"); err != nil {
		t.Fatalf("first provision: %v", err)
	}
	if _, err := svc.Provision(ctx, nil, "DUP@ceria.bet", "lainnya1"); !errors.Is(err, identity.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse got %v", err)
	}
}

func TestProvisionPolicy(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.Provision(ctx, nil, "a@b.c", "12345"); !errors.Is(err, identity.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword got %v", err)
	}
	if _, err := svc.Provision(ctx, nil, "not-an-email", "123456"); !errors.Is(err, identity.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	if _, err := svc.Provision(ctx, nil, "ops@ceria.bet", "lama123"); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if err := svc.SetPassword(ctx, "ops@ceria.bet", "baru123"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ops@ceria.bet", "lama123"); err == nil {
		t.Fatalf("old password must stop working")
	}
	if _, err := svc.Authenticate(ctx, "ops@ceria.bet", "baru123"); err != nil {
		t.Fatalf("new password: %v", err)
	}
	if err := svc.SetPassword(ctx, "ghost@ceria.bet", "baru123"); err == nil {
		t.Fatalf("expected error for unknown email")
	}
}
