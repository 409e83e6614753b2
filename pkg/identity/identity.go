// Package identity is the sign-in account service: it provisions email and
// password identities and authenticates them. Admin records elsewhere refer to
// an identity only by its id.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crbklasemen/models"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLen is the basic password policy.
const MinPasswordLen = 6

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = fmt.Errorf("password too short (min %d)", MinPasswordLen)
	ErrInvalidEmail       = errors.New("invalid email")
)

type Service struct {
	db   *gorm.DB
	cost int
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost (tests use bcrypt.MinCost).
func (s *Service) WithCost(cost int) *Service {
	cp := *s
	cp.cost = cost
	return &cp
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Provision creates a new identity. When tx is non-nil the insert joins that
// transaction so the caller can roll it back together with its own writes.
func (s *Service) Provision(ctx context.Context, tx *gorm.DB, email, password string) (models.Identity, error) {
	if tx == nil {
		tx = s.db
	}
	tx = tx.WithContext(ctx)
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.Identity{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLen {
		return models.Identity{}, ErrWeakPassword
	}
	// pre-check existing (optimistic)
	var cnt int64
	if err := tx.Model(&models.Identity{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
		return models.Identity{}, fmt.Errorf("check email: %w", err)
	}
	if cnt > 0 {
		return models.Identity{}, ErrEmailInUse
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.Identity{}, err
	}
	ident := models.Identity{Email: email, HashedPassword: hashed}
	if err := tx.Create(&ident).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return models.Identity{}, ErrEmailInUse
		}
		return models.Identity{}, fmt.Errorf("create identity: %w", err)
	}
	return ident, nil
}

// Authenticate checks an email and password pair.
func (s *Service) Authenticate(ctx context.Context, email, password string) (models.Identity, error) {
	var ident models.Identity
	if err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&ident).Error; err != nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(ident.HashedPassword, []byte(password)); err != nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	return ident, nil
}

// Lookup finds an identity by id.
func (s *Service) Lookup(ctx context.Context, id string) (models.Identity, error) {
	var ident models.Identity
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&ident).Error
	return ident, err
}

// SetPassword replaces the password of the identity registered under email.
func (s *Service) SetPassword(ctx context.Context, email, password string) error {
	if len(password) < MinPasswordLen {
		return ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&models.Identity{}).
		Where("email = ?", NormalizeEmail(email)).
		Update("hashed_password", hashed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "UNIQUE constraint failed")
}
