package specialty

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainSpecialty "github.com/BruksfildServices01/salon-manager/internal/domain/specialty"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

type Assignments struct {
	repo  domainSpecialty.Repository
	users domainUser.Repository
	clock timezone.Clock
	audit audit.Publisher
}

func NewAssignments(
	repo domainSpecialty.Repository,
	users domainUser.Repository,
	clock timezone.Clock,
	audit audit.Publisher,
) *Assignments {
	return &Assignments{
		repo:  repo,
		users: users,
		clock: clock,
		audit: audit,
	}
}

// ======================================================
// ASSIGN
// ======================================================

func (uc *Assignments) Assign(ctx context.Context, actorID, stylistID, specialtyID string) (*models.StylistSpecialty, error) {

	// --------------------------------------------------
	// 1️⃣ Estilista ativo
	// --------------------------------------------------
	if _, err := uc.activeStylist(ctx, stylistID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Especialidade ativa
	// --------------------------------------------------
	s, err := getSpecialty(ctx, uc.repo, specialtyID)
	if err != nil {
		return nil, err
	}
	if !s.Active {
		return nil, httperr.ErrBusiness(httperr.CodeSpecialtyInactive)
	}

	// --------------------------------------------------
	// 3️⃣ Cria ou reativa
	// --------------------------------------------------
	a, err := uc.repo.GetAssignment(ctx, stylistID, specialtyID)
	switch {
	case err == nil && a.Active:
		return nil, httperr.ErrBusiness(httperr.CodeAlreadyAssigned)
	case err == nil:
		// reativação: mantém o registro
	case errors.Is(err, domain.ErrNotFound):
		a = &models.StylistSpecialty{
			StylistID:   stylistID,
			SpecialtyID: specialtyID,
		}
	default:
		return nil, err
	}

	a.Active = true
	a.AssignedAt = uc.clock.Now()

	if err := uc.repo.Assign(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrBusiness(httperr.CodeAlreadyAssigned)
		}
		return nil, err
	}
	a.Specialty = *s
	a.Specialty.StylistCount++

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   audit.ActionSpecialtyAssigned,
		Entity:   "stylist_specialty",
		EntityID: a.ID,
		Metadata: map[string]any{"stylist_id": stylistID, "specialty_id": specialtyID},
	})
	return a, nil
}

// ======================================================
// UNASSIGN
// ======================================================

func (uc *Assignments) Unassign(ctx context.Context, actorID, stylistID, specialtyID string) error {
	a, err := uc.repo.GetAssignment(ctx, stylistID, specialtyID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(httperr.CodeAssignmentNotFound)
	}
	if err != nil {
		return err
	}
	if !a.Active {
		return httperr.ErrBusiness(httperr.CodeAssignmentNotFound)
	}

	if err := uc.repo.Unassign(ctx, a); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   audit.ActionSpecialtyRemoved,
		Entity:   "stylist_specialty",
		EntityID: a.ID,
		Metadata: map[string]any{"stylist_id": stylistID, "specialty_id": specialtyID},
	})
	return nil
}

// ======================================================
// QUERIES
// ======================================================

func (uc *Assignments) ListForStylist(ctx context.Context, stylistID string) ([]models.StylistSpecialty, error) {
	if _, err := uc.stylist(ctx, stylistID); err != nil {
		return nil, err
	}
	return uc.repo.ListForStylist(ctx, stylistID)
}

func (uc *Assignments) ListStylists(ctx context.Context, specialtyID string) ([]models.User, error) {
	if _, err := getSpecialty(ctx, uc.repo, specialtyID); err != nil {
		return nil, err
	}
	return uc.repo.ListStylists(ctx, specialtyID)
}

func (uc *Assignments) stylist(ctx context.Context, id string) (*models.User, error) {
	u, err := uc.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	if u.Role != role.Stylist.String() {
		return nil, httperr.ErrBusiness(httperr.CodeNotAStylist)
	}
	return u, nil
}

func (uc *Assignments) activeStylist(ctx context.Context, id string) (*models.User, error) {
	u, err := uc.stylist(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, httperr.ErrBusiness(httperr.CodeNotAStylist)
	}
	return u, nil
}
