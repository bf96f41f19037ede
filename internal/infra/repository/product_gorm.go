package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domainCatalog "github.com/BruksfildServices01/salon-manager/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) Create(ctx context.Context, p *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *ProductGormRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProductGormRepository) List(ctx context.Context, f domainCatalog.Filter) ([]models.Product, error) {
	q := r.db.WithContext(ctx)

	if category := strings.ToLower(strings.TrimSpace(f.Category)); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Compile-time check
var _ domainCatalog.Repository = (*ProductGormRepository)(nil)
