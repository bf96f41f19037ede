package specialty

import (
	"context"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Specialty) error
	GetByID(ctx context.Context, id string) (*models.Specialty, error)
	GetByName(ctx context.Context, name string) (*models.Specialty, error)
	List(ctx context.Context, activeOnly bool) ([]models.Specialty, error)
	Update(ctx context.Context, s *models.Specialty) error

	// -------- Assignments --------
	GetAssignment(ctx context.Context, stylistID, specialtyID string) (*models.StylistSpecialty, error)

	// Assign cria (ou reativa) a atribuição e incrementa o contador da
	// especialidade na mesma transação.
	Assign(ctx context.Context, a *models.StylistSpecialty) error

	// Unassign desativa a atribuição e decrementa o contador (mínimo zero).
	Unassign(ctx context.Context, a *models.StylistSpecialty) error

	ListForStylist(ctx context.Context, stylistID string) ([]models.StylistSpecialty, error)
	ListStylists(ctx context.Context, specialtyID string) ([]models.User, error)

	// Recount recalcula todos os contadores a partir das atribuições
	// ativas e devolve o novo valor por especialidade.
	Recount(ctx context.Context) (map[string]int, error)
}
