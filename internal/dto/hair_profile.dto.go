package dto

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type HairProfileDTO struct {
	ClientID       string            `json:"client_id"`
	HairType       string            `json:"hair_type"`
	Length         string            `json:"length"`
	Color          string            `json:"color"`
	ScalpCondition string            `json:"scalp_condition"`
	Allergies      string            `json:"allergies"`
	Notes          string            `json:"notes"`
	Attributes     map[string]string `json:"attributes"`
	PhotoURL       string            `json:"photo_url"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func NewHairProfileDTO(p *models.HairProfile) *HairProfileDTO {
	attrs := map[string]string{}
	if p.Attributes != "" {
		_ = json.Unmarshal([]byte(p.Attributes), &attrs)
	}
	return &HairProfileDTO{
		ClientID:       p.ClientID,
		HairType:       p.HairType,
		Length:         p.Length,
		Color:          p.Color,
		ScalpCondition: p.ScalpCondition,
		Allergies:      p.Allergies,
		Notes:          p.Notes,
		Attributes:     attrs,
		PhotoURL:       p.PhotoURL,
		UpdatedAt:      p.UpdatedAt,
	}
}
