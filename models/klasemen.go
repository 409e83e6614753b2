package models

import (
	"time"

	"gorm.io/gorm"
)

// Keterangan is the status label of a klasemen entry.
type Keterangan string

const (
	KeteranganAktif      Keterangan = "Aktif"
	KeteranganTidakAktif Keterangan = "Tidak aktif"
	KeteranganExpired    Keterangan = "Expired"
)

// Valid reports whether k is one of the known labels.
func (k Keterangan) Valid() bool {
	switch k {
	case KeteranganAktif, KeteranganTidakAktif, KeteranganExpired:
		return true
	}
	return false
}

// Klasemen is one row of the leaderboard. Top is meant to be unique but the
// store does not enforce it.
type Klasemen struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"-"`
	Top        int        `gorm:"index;not null" json:"top"`
	UserID     string     `gorm:"size:255;not null" json:"userId"`
	Winloss    float64    `gorm:"not null" json:"winloss"`
	Turnover   float64    `gorm:"not null" json:"turnover"`
	Hadiah     string     `gorm:"size:255" json:"hadiah"`
	Catatan    string     `gorm:"size:512" json:"catatan"`
	Keterangan Keterangan `gorm:"size:32;index;not null" json:"keterangan"`
}

func (k *Klasemen) BeforeCreate(tx *gorm.DB) error {
	k.ID = newID(k.ID)
	return nil
}
