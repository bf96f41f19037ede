package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserGormRepository) GetByExternalUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("external_uid = ?", uid).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserGormRepository) List(ctx context.Context, f domainUser.Filter) ([]models.User, int64, error) {
	_, limit, offset := domain.Page(f.Page, f.Limit)

	q := r.db.WithContext(ctx).Model(&models.User{})

	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := q.
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update grava nome, telefone e papel. Quem deixa de ser estilista perde
// as especialidades na mesma transação.
func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", u.ID).
			Updates(map[string]any{
				"name":  u.Name,
				"phone": u.Phone,
				"role":  u.Role,
			})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if u.Role != role.Stylist.String() {
			return deactivateAssignments(tx, u.ID)
		}
		return nil
	})
}

func (r *UserGormRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserGormRepository) AddLoyaltyPoints(ctx context.Context, id string, delta int) (int, error) {
	var balance int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND loyalty_points + ? >= 0", id, delta).
			Update("loyalty_points", gorm.Expr("loyalty_points + ?", delta))
		if res.Error != nil {
			return res.Error
		}

		var u models.User
		if err := tx.Select("id", "loyalty_points").Where("id = ?", id).First(&u).Error; err != nil {
			return translate(err)
		}
		if res.RowsAffected == 0 {
			return domainUser.ErrInsufficientPoints
		}

		balance = u.LoyaltyPoints
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *UserGormRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *UserGormRepository) TouchSignIn(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_sign_in_at", at).Error
}

// Compile-time check
var _ domainUser.Repository = (*UserGormRepository)(nil)
