package models

import (
	"time"

	"gorm.io/gorm"
)

type Specialty struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Active      bool   `gorm:"default:true" json:"active"`

	// contador denormalizado de estilistas com a especialidade ativa
	StylistCount int `gorm:"default:0" json:"stylist_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Specialty) BeforeCreate(*gorm.DB) error {
	newID(&s.ID)
	return nil
}

type StylistSpecialty struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	StylistID   string    `gorm:"type:uuid;uniqueIndex:idx_stylist_specialty;not null" json:"stylist_id"`
	Stylist     User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	SpecialtyID string    `gorm:"type:uuid;uniqueIndex:idx_stylist_specialty;not null" json:"specialty_id"`
	Specialty   Specialty `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"specialty"`

	Active     bool      `gorm:"default:true" json:"active"`
	AssignedAt time.Time `json:"assigned_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *StylistSpecialty) BeforeCreate(*gorm.DB) error {
	newID(&a.ID)
	return nil
}
