package models

import (
	"time"

	"gorm.io/gorm"
)

type HadiahType string

const (
	HadiahBarang      HadiahType = "Barang"
	HadiahCredit      HadiahType = "Credit"
	HadiahMerchandise HadiahType = "Merchandise"
)

type HadiahStatus string

const (
	StatusClaim      HadiahStatus = "Claim"
	StatusBelumClaim HadiahStatus = "Belum Claim"
	StatusExpired    HadiahStatus = "Expired"
)

// Hadiah is a prize scoped to one period label (Month, e.g. "November 2025").
// The label is matched by exact string equality only.
type Hadiah struct {
	ID             string       `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"-"`
	Top            int          `gorm:"index;not null" json:"top"`
	IDUsername     string       `gorm:"column:id_username;size:255;not null" json:"idUsername"`
	MinimalWinloss float64      `gorm:"not null" json:"minimalWinloss"`
	To             float64      `gorm:"column:turnover_target;not null" json:"to"`
	Hadiah         string       `gorm:"size:255;not null" json:"hadiah"`
	HadiahType     HadiahType   `gorm:"size:32;not null" json:"hadiahType"`
	Status         HadiahStatus `gorm:"size:32;not null" json:"status"`
	Month          string       `gorm:"size:32;index;not null" json:"month"`
	Visible        bool         `gorm:"index;not null" json:"visible"`
}

func (h *Hadiah) BeforeCreate(tx *gorm.DB) error {
	h.ID = newID(h.ID)
	return nil
}

func (t HadiahType) Valid() bool {
	switch t {
	case HadiahBarang, HadiahCredit, HadiahMerchandise:
		return true
	}
	return false
}

func (s HadiahStatus) Valid() bool {
	switch s {
	case StatusClaim, StatusBelumClaim, StatusExpired:
		return true
	}
	return false
}
