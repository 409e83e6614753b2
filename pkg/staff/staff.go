// Package staff manages admin records together with the identity each one
// signs in with.
package staff

import (
	"context"
	"fmt"
	"strings"

	"crbklasemen/models"
	"crbklasemen/pkg/docstore"
	"crbklasemen/pkg/identity"

	"gorm.io/gorm"
)

type Service struct {
	db         *gorm.DB
	identities *identity.Service
	admins     *docstore.Collection[models.Admin]
}

func NewService(db *gorm.DB, identities *identity.Service) *Service {
	return &Service{
		db:         db,
		identities: identities,
		admins:     docstore.New[models.Admin](db, "admins", ""),
	}
}

func (s *Service) List(ctx context.Context) ([]models.Admin, error) {
	return s.admins.List(ctx, nil)
}

// Create provisions the identity for admin.Email and then stores the admin
// record carrying the identity id. Both writes share one transaction: if the
// record cannot be stored the identity is rolled back too, and if the email is
// taken (identity.ErrEmailInUse) nothing is written.
func (s *Service) Create(ctx context.Context, admin *models.Admin, password string) error {
	admin.Email = identity.NormalizeEmail(admin.Email)
	admin.Username = strings.TrimSpace(admin.Username)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ident, err := s.identities.Provision(ctx, tx, admin.Email, password)
		if err != nil {
			return err
		}
		admin.IdentityID = ident.ID
		if err := s.admins.WithTx(tx).Create(ctx, admin); err != nil {
			return fmt.Errorf("store admin record: %w", err)
		}
		return nil
	})
}

// Update overwrites the editable fields. Email and the identity link are fixed
// at creation and ignored here.
func (s *Service) Update(ctx context.Context, id string, admin *models.Admin) error {
	return s.admins.Replace(ctx, id, admin, "email", "identity_id")
}

// Delete removes the admin record only. The identity keeps working until it
// is removed from the identity service separately.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.admins.Delete(ctx, id)
}

// EnsureSeed creates the bootstrap admin when no identity uses email yet.
func (s *Service) EnsureSeed(ctx context.Context, email, password string) (bool, error) {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Identity{}).
		Where("email = ?", identity.NormalizeEmail(email)).Count(&cnt).Error; err != nil {
		return false, err
	}
	if cnt > 0 {
		return false, nil
	}
	admin := models.Admin{Username: "admin", Email: email, Divisi: "Administrator", Keterangan: "seed"}
	if err := s.Create(ctx, &admin, password); err != nil {
		return false, err
	}
	return true, nil
}
