package models

import (
	"time"

	"gorm.io/gorm"
)

type TimeSlot struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	StylistID string `gorm:"type:uuid;index:idx_slot_stylist_weekday;not null" json:"stylist_id"`
	Stylist   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Weekday int `gorm:"index:idx_slot_stylist_weekday" json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *TimeSlot) BeforeCreate(*gorm.DB) error {
	newID(&s.ID)
	return nil
}
