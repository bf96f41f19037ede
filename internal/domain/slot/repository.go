package slot

import (
	"context"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.TimeSlot) error
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	Update(ctx context.Context, s *models.TimeSlot) error

	// ListByStylist lista os horários do estilista; weekday nil traz a semana toda.
	ListByStylist(ctx context.Context, stylistID string, weekday *int, activeOnly bool) ([]models.TimeSlot, error)
}
