package models

import (
	"time"

	"gorm.io/gorm"
)

type HairProfile struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID string `gorm:"type:uuid;uniqueIndex;not null" json:"client_id"`
	Client   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	HairType       string `gorm:"size:50" json:"hair_type"`
	Length         string `gorm:"size:50" json:"length"`
	Color          string `gorm:"size:50" json:"color"`
	ScalpCondition string `gorm:"size:100" json:"scalp_condition"`
	Allergies      string `gorm:"size:255" json:"allergies"`
	Notes          string `gorm:"type:text" json:"notes"`

	// atributos livres, serializados como JSON
	Attributes string `gorm:"type:text" json:"-"`

	PhotoURL string `gorm:"size:512" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *HairProfile) BeforeCreate(*gorm.DB) error {
	newID(&h.ID)
	return nil
}
