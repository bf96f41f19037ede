package user

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

var ErrInsufficientPoints = errors.New("insufficient loyalty points")

type Filter struct {
	Role   string
	Active *bool
	Query  string
	Page   int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, u *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByExternalUID(ctx context.Context, uid string) (*models.User, error)

	List(ctx context.Context, f Filter) ([]models.User, int64, error)

	// Update grava os campos de perfil (nome, telefone, papel).
	Update(ctx context.Context, u *models.User) error

	// SetActive altera apenas a flag active.
	SetActive(ctx context.Context, id string, active bool) error

	// AddLoyaltyPoints soma delta de forma atômica e devolve o novo saldo.
	// Retorna ErrInsufficientPoints se o saldo ficaria negativo.
	AddLoyaltyPoints(ctx context.Context, id string, delta int) (int, error)

	UpdatePasswordHash(ctx context.Context, id, hash string) error
	TouchSignIn(ctx context.Context, id string, at time.Time) error
}
