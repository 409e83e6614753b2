package models

import (
	"time"

	"gorm.io/gorm"
)

// Event is a promotional event announcement.
type Event struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
	JudulEvent string    `gorm:"size:255;not null" json:"judulEvent"`
	Deskripsi  string    `gorm:"type:text" json:"deskripsi"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	e.ID = newID(e.ID)
	return nil
}
