package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainHair "github.com/BruksfildServices01/salon-manager/internal/domain/hairprofile"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type HairProfileGormRepository struct {
	db *gorm.DB
}

func NewHairProfileGormRepository(db *gorm.DB) *HairProfileGormRepository {
	return &HairProfileGormRepository{db: db}
}

func (r *HairProfileGormRepository) GetByClientID(ctx context.Context, clientID string) (*models.HairProfile, error) {
	var p models.HairProfile
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *HairProfileGormRepository) Upsert(ctx context.Context, p *models.HairProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Omit("Client").
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "client_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"hair_type", "length", "color", "scalp_condition",
					"allergies", "notes", "attributes", "updated_at",
				}),
			}).
			Create(p).Error; err != nil {
			return translate(err)
		}

		// no conflito p ainda carrega o id gerado; devolve a linha gravada
		var stored models.HairProfile
		if err := tx.Where("client_id = ?", p.ClientID).First(&stored).Error; err != nil {
			return translate(err)
		}
		*p = stored
		return nil
	})
}

func (r *HairProfileGormRepository) SetPhotoURL(ctx context.Context, clientID, url string) error {
	res := r.db.WithContext(ctx).
		Model(&models.HairProfile{}).
		Where("client_id = ?", clientID).
		Update("photo_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ domainHair.Repository = (*HairProfileGormRepository)(nil)
