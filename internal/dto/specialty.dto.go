package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type AssignmentDTO struct {
	ID            string    `json:"id"`
	StylistID     string    `json:"stylist_id"`
	SpecialtyID   string    `json:"specialty_id"`
	SpecialtyName string    `json:"specialty_name"`
	Active        bool      `json:"active"`
	AssignedAt    time.Time `json:"assigned_at"`
}

func NewAssignmentDTO(a *models.StylistSpecialty) AssignmentDTO {
	return AssignmentDTO{
		ID:            a.ID,
		StylistID:     a.StylistID,
		SpecialtyID:   a.SpecialtyID,
		SpecialtyName: a.Specialty.Name,
		Active:        a.Active,
		AssignedAt:    a.AssignedAt,
	}
}
