package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

type AdjustLoyalty struct {
	repo  domainUser.Repository
	audit audit.Publisher
}

func NewAdjustLoyalty(repo domainUser.Repository, audit audit.Publisher) *AdjustLoyalty {
	return &AdjustLoyalty{repo: repo, audit: audit}
}

// Add credita pontos (delta > 0).
func (uc *AdjustLoyalty) Add(ctx context.Context, actorID, clientID string, points int) (int, error) {
	if points <= 0 {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidPoints)
	}
	return uc.apply(ctx, actorID, clientID, points, audit.ActionLoyaltyAdded)
}

// Redeem debita pontos; recusa se o saldo ficaria negativo.
func (uc *AdjustLoyalty) Redeem(ctx context.Context, actorID, clientID string, points int) (int, error) {
	if points <= 0 {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidPoints)
	}
	return uc.apply(ctx, actorID, clientID, -points, audit.ActionLoyaltyRedeemed)
}

func (uc *AdjustLoyalty) apply(ctx context.Context, actorID, clientID string, delta int, action string) (int, error) {
	u, err := uc.repo.GetByID(ctx, clientID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return 0, err
	}
	if u.Role != role.Client.String() {
		return 0, httperr.ErrBusiness(httperr.CodeNotAClient)
	}
	if !u.Active {
		return 0, httperr.ErrBusiness(httperr.CodeUserDisabled)
	}

	balance, err := uc.repo.AddLoyaltyPoints(ctx, clientID, delta)
	if errors.Is(err, domainUser.ErrInsufficientPoints) {
		return 0, httperr.ErrBusiness(httperr.CodeInsufficientPoints)
	}
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "user",
		EntityID: clientID,
		Metadata: map[string]any{"delta": delta, "balance": balance},
	})

	return balance, nil
}
