package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalUID string `gorm:"size:128;uniqueIndex" json:"-"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;index;default:'client'" json:"role"`
	Active       bool   `gorm:"default:true" json:"active"`

	LoyaltyPoints int `gorm:"default:0" json:"loyalty_points"`

	LastSignInAt *time.Time `json:"last_sign_in_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	newID(&u.ID)
	return nil
}
