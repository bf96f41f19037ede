package repository

import (
	"context"

	"gorm.io/gorm"

	domainSlot "github.com/BruksfildServices01/salon-manager/internal/domain/slot"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

func (r *SlotGormRepository) Create(ctx context.Context, s *models.TimeSlot) error {
	return translate(r.db.WithContext(ctx).Omit("Stylist").Create(s).Error)
}

func (r *SlotGormRepository) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	var s models.TimeSlot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SlotGormRepository) Update(ctx context.Context, s *models.TimeSlot) error {
	return r.db.WithContext(ctx).
		Model(&models.TimeSlot{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"weekday":    s.Weekday,
			"start_time": s.StartTime,
			"end_time":   s.EndTime,
			"active":     s.Active,
		}).Error
}

func (r *SlotGormRepository) ListByStylist(
	ctx context.Context,
	stylistID string,
	weekday *int,
	activeOnly bool,
) ([]models.TimeSlot, error) {

	q := r.db.WithContext(ctx).Where("stylist_id = ?", stylistID)
	if weekday != nil {
		q = q.Where("weekday = ?", *weekday)
	}
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var out []models.TimeSlot
	if err := q.
		Order("weekday ASC").
		Order("start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domainSlot.Repository = (*SlotGormRepository)(nil)
