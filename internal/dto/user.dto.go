package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

// UserDTO é a forma pública do usuário; nunca carrega senha.
type UserDTO struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Role          string     `json:"role"`
	Active        bool       `json:"active"`
	LoyaltyPoints int        `json:"loyalty_points"`
	LastSignInAt  *time.Time `json:"last_sign_in_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		Active:        u.Active,
		LoyaltyPoints: u.LoyaltyPoints,
		LastSignInAt:  u.LastSignInAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func NewUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, NewUserDTO(&users[i]))
	}
	return out
}

type SessionDTO struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CurrentUserDTO é a identidade corrente consumida pelo app após o login.
type CurrentUserDTO struct {
	User        UserDTO         `json:"user"`
	HairProfile *HairProfileDTO `json:"hair_profile,omitempty"`
	Menu        []role.MenuItem `json:"menu"`
}

type LoyaltyDTO struct {
	UserID  string `json:"user_id"`
	Balance int    `json:"balance"`
}
