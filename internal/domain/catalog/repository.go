package catalog

import (
	"context"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type Filter struct {
	Category string
	Active   *bool
	Query    string
}

type Repository interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, f Filter) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
}
