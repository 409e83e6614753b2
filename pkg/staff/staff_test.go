package staff_test

import (
	"context"
	"errors"
	"testing"

	"crbklasemen/models"
	"crbklasemen/pkg/identity"
	"crbklasemen/pkg/staff"
	"crbklasemen/pkg/testdb"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *identity.Service, *staff.Service) {
	gdb := testdb.Open(t)
	ids := identity.NewService(gdb).WithCost(bcrypt.MinCost)
	return gdb, ids, staff.NewService(gdb, ids)
}

func TestCreateLinksIdentity(t *testing.T) {
	ctx := context.Background()
	_, ids, svc := setup(t)

	admin := models.Admin{Username: "rina", Email: "Rina@Ceria.bet", Divisi: "CS"}
	if err := svc.Create(ctx, &admin, "rahasia1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if admin.ID == "" || admin.IdentityID == "" {
		t.Fatalf("expected id and identity link, got %+v", admin)
	}
	ident, err := ids.Authenticate(ctx, "rina@ceria.bet", "rahasia1")
	if err != nil || ident.ID != admin.IdentityID {
		t.Fatalf("identity %+v err=%v does not match admin %+v", ident, err, admin)
	}
}

func TestCreateDuplicateEmailCommitsNothing(t *testing.T) {
	ctx := context.Background()
	gdb, ids, svc := setup(t)

	if _, err := ids.Provision(ctx, nil, "taken@ceria.bet", "rahasia1"); err != nil {
		t.Fatalf("provision: %v", err)
	}
	admin := models.Admin{Username: "dup", Email: "taken@ceria.bet"}
	err := svc.Create(ctx, &admin, "rahasia2")
	if !errors.Is(err, identity.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse got %v", err)
	}
	var admins int64
	gdb.Model(&models.Admin{}).Count(&admins)
	if admins != 0 {
		t.Fatalf("expected no admin record, found %d", admins)
	}
}

func TestCreateRollsBackIdentityWhenRecordFails(t *testing.T) {
	ctx := context.Background()
	gdb, _, svc := setup(t)

	// make the second phase fail after the identity insert succeeded
	if err := gdb.Migrator().DropTable(&models.Admin{}); err != nil {
		t.Fatalf("drop admins: %v", err)
	}
	admin := models.Admin{Username: "ghost", Email: "ghost@ceria.bet"}
	if err := svc.Create(ctx, &admin, "rahasia1"); err == nil {
		t.Fatalf("expected create to fail without admins table")
	}
	var idents int64
	gdb.Model(&models.Identity{}).Where("email = ?", "ghost@ceria.bet").Count(&idents)
	if idents != 0 {
		t.Fatalf("identity must be rolled back, found %d", idents)
	}
}

func TestUpdateKeepsEmailAndDeleteKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	_, ids, svc := setup(t)

	admin := models.Admin{Username: "budi", Email: "budi@ceria.bet", Divisi: "Marketing"}
	if err := svc.Create(ctx, &admin, "rahasia1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	upd := models.Admin{Username: "budi s", Email: "other@ceria.bet", Divisi: "Finance", Keterangan: "pindah"}
	if err := svc.Update(ctx, admin.ID, &upd); err != nil {
		t.Fatalf("update: %v", err)
	}
	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %+v err=%v", list, err)
	}
	got := list[0]
	if got.Email != "budi@ceria.bet" || got.IdentityID != admin.IdentityID {
		t.Fatalf("email and identity link must not change: %+v", got)
	}
	if got.Username != "budi s" || got.Divisi != "Finance" || got.Keterangan != "pindah" {
		t.Fatalf("editable fields not updated: %+v", got)
	}

	if err := svc.Delete(ctx, admin.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ids.Authenticate(ctx, "budi@ceria.bet", "rahasia1"); err != nil {
		t.Fatalf("identity must survive admin deletion: %v", err)
	}
}

func TestEnsureSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	_, _, svc := setup(t)

	created, err := svc.EnsureSeed(ctx, "root@ceria.bet", "rahasia1")
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}
	created, err = svc.EnsureSeed(ctx, "root@ceria.bet", "rahasia1")
	if err != nil || created {
		t.Fatalf("second seed: created=%v err=%v", created, err)
	}
}
