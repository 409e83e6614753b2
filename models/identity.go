package models

import (
	"time"

	"gorm.io/gorm"
)

// Identity is a sign-in account of the identity service.
type Identity struct {
	ID             string `gorm:"primaryKey;size:36"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Email          string `gorm:"size:255;not null;uniqueIndex"`
	HashedPassword []byte `gorm:"not null"`
}

func (i *Identity) BeforeCreate(tx *gorm.DB) error {
	i.ID = newID(i.ID)
	return nil
}
