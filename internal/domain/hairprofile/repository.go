package hairprofile

import (
	"context"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type Repository interface {
	GetByClientID(ctx context.Context, clientID string) (*models.HairProfile, error)

	// Upsert cria ou substitui o perfil do cliente.
	Upsert(ctx context.Context, p *models.HairProfile) error

	SetPhotoURL(ctx context.Context, clientID, url string) error
}
