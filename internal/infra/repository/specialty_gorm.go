package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainSpecialty "github.com/BruksfildServices01/salon-manager/internal/domain/specialty"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

type SpecialtyGormRepository struct {
	db *gorm.DB
}

func NewSpecialtyGormRepository(db *gorm.DB) *SpecialtyGormRepository {
	return &SpecialtyGormRepository{db: db}
}

// --------------------------------------------------
// Specialty
// --------------------------------------------------

func (r *SpecialtyGormRepository) Create(ctx context.Context, s *models.Specialty) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *SpecialtyGormRepository) GetByID(ctx context.Context, id string) (*models.Specialty, error) {
	var s models.Specialty
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SpecialtyGormRepository) GetByName(ctx context.Context, name string) (*models.Specialty, error) {
	var s models.Specialty
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SpecialtyGormRepository) List(ctx context.Context, activeOnly bool) ([]models.Specialty, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var out []models.Specialty
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SpecialtyGormRepository) Update(ctx context.Context, s *models.Specialty) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.Specialty{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":        s.Name,
			"description": s.Description,
			"active":      s.Active,
		}).Error)
}

// --------------------------------------------------
// Assignments
// --------------------------------------------------

func (r *SpecialtyGormRepository) GetAssignment(
	ctx context.Context,
	stylistID string,
	specialtyID string,
) (*models.StylistSpecialty, error) {

	var a models.StylistSpecialty
	if err := r.db.WithContext(ctx).
		Where("stylist_id = ? AND specialty_id = ?", stylistID, specialtyID).
		First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *SpecialtyGormRepository) Assign(ctx context.Context, a *models.StylistSpecialty) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.ID == "" {
			if err := tx.Omit("Stylist", "Specialty").Create(a).Error; err != nil {
				return translate(err)
			}
		} else {
			res := tx.Model(&models.StylistSpecialty{}).
				Where("id = ? AND active = ?", a.ID, false).
				Updates(map[string]any{
					"active":      true,
					"assigned_at": a.AssignedAt,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// outra requisição reativou antes
				return domain.ErrDuplicate
			}
		}

		return tx.Model(&models.Specialty{}).
			Where("id = ?", a.SpecialtyID).
			UpdateColumn("stylist_count", gorm.Expr("stylist_count + 1")).Error
	})
}

func (r *SpecialtyGormRepository) Unassign(ctx context.Context, a *models.StylistSpecialty) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.StylistSpecialty{}).
			Where("id = ? AND active = ?", a.ID, true).
			Update("active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// já inativa: o contador não muda
			return nil
		}

		return tx.Model(&models.Specialty{}).
			Where("id = ? AND stylist_count > 0", a.SpecialtyID).
			UpdateColumn("stylist_count", gorm.Expr("stylist_count - 1")).Error
	})
}

func (r *SpecialtyGormRepository) ListForStylist(ctx context.Context, stylistID string) ([]models.StylistSpecialty, error) {
	var out []models.StylistSpecialty
	if err := r.db.WithContext(ctx).
		Preload("Specialty").
		Where("stylist_id = ? AND active = ?", stylistID, true).
		Order("assigned_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SpecialtyGormRepository) ListStylists(ctx context.Context, specialtyID string) ([]models.User, error) {
	var out []models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN stylist_specialties ss ON ss.stylist_id = users.id").
		Where("ss.specialty_id = ? AND ss.active = ? AND users.active = ? AND users.role = ?",
			specialtyID, true, true, role.Stylist.String()).
		Order("users.name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SpecialtyGormRepository) Recount(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []struct {
			SpecialtyID string
			Total       int
		}
		if err := tx.Model(&models.StylistSpecialty{}).
			Select("stylist_specialties.specialty_id, COUNT(*) AS total").
			Joins("JOIN users ON users.id = stylist_specialties.stylist_id").
			Where("stylist_specialties.active = ? AND users.role = ?", true, role.Stylist.String()).
			Group("stylist_specialties.specialty_id").
			Scan(&rows).Error; err != nil {
			return err
		}

		var ids []string
		if err := tx.Model(&models.Specialty{}).Pluck("id", &ids).Error; err != nil {
			return err
		}
		for _, id := range ids {
			counts[id] = 0
		}
		for _, row := range rows {
			counts[row.SpecialtyID] = row.Total
		}

		for id, n := range counts {
			if err := tx.Model(&models.Specialty{}).
				Where("id = ?", id).
				UpdateColumn("stylist_count", n).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// deactivateAssignments desliga as especialidades de quem deixou de ser
// estilista e devolve os contadores. Roda dentro da transação do chamador.
func deactivateAssignments(tx *gorm.DB, stylistID string) error {
	var specialtyIDs []string
	if err := tx.Model(&models.StylistSpecialty{}).
		Where("stylist_id = ? AND active = ?", stylistID, true).
		Pluck("specialty_id", &specialtyIDs).Error; err != nil {
		return err
	}
	if len(specialtyIDs) == 0 {
		return nil
	}

	if err := tx.Model(&models.StylistSpecialty{}).
		Where("stylist_id = ? AND active = ?", stylistID, true).
		Update("active", false).Error; err != nil {
		return err
	}

	return tx.Model(&models.Specialty{}).
		Where("id IN ? AND stylist_count > 0", specialtyIDs).
		UpdateColumn("stylist_count", gorm.Expr("stylist_count - 1")).Error
}

// Compile-time check
var _ domainSpecialty.Repository = (*SpecialtyGormRepository)(nil)
