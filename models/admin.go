package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a staff record. It is linked to an Identity by IdentityID only by
// convention: deleting an Admin leaves the Identity in place.
type Admin struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
	Username   string    `gorm:"size:255;not null" json:"username"`
	Email      string    `gorm:"size:255;not null;index" json:"email"`
	Divisi     string    `gorm:"size:255" json:"divisi"`
	Keterangan string    `gorm:"size:512" json:"keterangan"`
	IdentityID string    `gorm:"size:36;index" json:"identityId"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	a.ID = newID(a.ID)
	return nil
}
