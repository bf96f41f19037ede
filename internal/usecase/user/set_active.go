package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// SetUserActive implementa a "exclusão" lógica: só a flag active muda.
type SetUserActive struct {
	repo     domainUser.Repository
	provider identity.Provider
	sessions SessionRevoker
	audit    audit.Publisher
}

func NewSetUserActive(
	repo domainUser.Repository,
	provider identity.Provider,
	sessions SessionRevoker,
	audit audit.Publisher,
) *SetUserActive {
	return &SetUserActive{
		repo:     repo,
		provider: provider,
		sessions: sessions,
		audit:    audit,
	}
}

func (uc *SetUserActive) Execute(ctx context.Context, actorID, userID string, active bool) (*models.User, error) {
	if !active && actorID == userID {
		return nil, httperr.ErrBusiness(httperr.CodeCannotDeactivateSelf)
	}

	u, err := uc.repo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}

	if u.Active == active {
		return u, nil
	}

	if err := uc.repo.SetActive(ctx, u.ID, active); err != nil {
		return nil, err
	}
	u.Active = active

	if u.ExternalUID != "" {
		if err := uc.provider.SetDisabled(ctx, u.ExternalUID, !active); err != nil {
			return nil, err
		}
	}

	action := audit.ActionUserReactivated
	if !active {
		action = audit.ActionUserDeactivated
		if err := uc.sessions.RevokeAll(ctx, u.ID); err != nil {
			return nil, err
		}
		if u.ExternalUID != "" {
			if err := uc.provider.RevokeTokens(ctx, u.ExternalUID); err != nil {
				return nil, err
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "user",
		EntityID: u.ID,
	})

	return u, nil
}
