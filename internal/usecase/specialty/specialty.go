package specialty

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainSpecialty "github.com/BruksfildServices01/salon-manager/internal/domain/specialty"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreateSpecialtyInput struct {
	ActorID     string
	Name        string
	Description string
}

type CreateSpecialty struct {
	repo  domainSpecialty.Repository
	audit audit.Publisher
}

func NewCreateSpecialty(repo domainSpecialty.Repository, audit audit.Publisher) *CreateSpecialty {
	return &CreateSpecialty{repo: repo, audit: audit}
}

func (uc *CreateSpecialty) Execute(ctx context.Context, in CreateSpecialtyInput) (*models.Specialty, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingField)
	}

	if _, err := uc.repo.GetByName(ctx, name); err == nil {
		return nil, httperr.ErrBusiness(httperr.CodeSpecialtyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	s := &models.Specialty{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Active:      true,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrBusiness(httperr.CodeSpecialtyExists)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   audit.ActionSpecialtyCreated,
		Entity:   "specialty",
		EntityID: s.ID,
		Metadata: map[string]any{"name": s.Name},
	})
	return s, nil
}

// ======================================================
// LIST
// ======================================================

type ListSpecialties struct {
	repo domainSpecialty.Repository
}

func NewListSpecialties(repo domainSpecialty.Repository) *ListSpecialties {
	return &ListSpecialties{repo: repo}
}

func (uc *ListSpecialties) Execute(ctx context.Context, activeOnly bool) ([]models.Specialty, error) {
	return uc.repo.List(ctx, activeOnly)
}

// ======================================================
// UPDATE
// ======================================================

type UpdateSpecialtyInput struct {
	ActorID     string
	ID          string
	Name        *string
	Description *string
	Active      *bool
}

type UpdateSpecialty struct {
	repo  domainSpecialty.Repository
	audit audit.Publisher
}

func NewUpdateSpecialty(repo domainSpecialty.Repository, audit audit.Publisher) *UpdateSpecialty {
	return &UpdateSpecialty{repo: repo, audit: audit}
}

// Execute aplica um patch parcial. Desativar uma especialidade não mexe nas
// atribuições: elas continuam valendo se a especialidade for reativada.
func (uc *UpdateSpecialty) Execute(ctx context.Context, in UpdateSpecialtyInput) (*models.Specialty, error) {
	s, err := getSpecialty(ctx, uc.repo, in.ID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrBusiness(httperr.CodeMissingField)
		}
		if !strings.EqualFold(name, s.Name) {
			if other, err := uc.repo.GetByName(ctx, name); err == nil && other.ID != s.ID {
				return nil, httperr.ErrBusiness(httperr.CodeSpecialtyExists)
			} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
		}
		s.Name = name
		changed["name"] = name
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
		changed["description"] = s.Description
	}
	if in.Active != nil {
		s.Active = *in.Active
		changed["active"] = s.Active
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrBusiness(httperr.CodeSpecialtyExists)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   audit.ActionSpecialtyUpdated,
		Entity:   "specialty",
		EntityID: s.ID,
		Metadata: changed,
	})
	return s, nil
}

func getSpecialty(ctx context.Context, repo domainSpecialty.Repository, id string) (*models.Specialty, error) {
	s, err := repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeSpecialtyNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ======================================================
// RECOUNT
// ======================================================

type RecountSpecialties struct {
	repo  domainSpecialty.Repository
	audit audit.Publisher
}

func NewRecountSpecialties(repo domainSpecialty.Repository, audit audit.Publisher) *RecountSpecialties {
	return &RecountSpecialties{repo: repo, audit: audit}
}

// Execute recalcula os contadores; actorID vazio indica execução pelo CLI.
func (uc *RecountSpecialties) Execute(ctx context.Context, actorID string) (map[string]int, error) {
	counts, err := uc.repo.Recount(ctx)
	if err != nil {
		return nil, err
	}

	ev := audit.Event{
		Action:   audit.ActionSpecialtyRecount,
		Entity:   "specialty",
		Metadata: counts,
	}
	if actorID != "" {
		ev.ActorID = &actorID
	}
	uc.audit.Dispatch(ev)
	return counts, nil
}
