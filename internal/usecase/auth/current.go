package auth

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainHair "github.com/BruksfildServices01/salon-manager/internal/domain/hairprofile"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

type Current struct {
	users domainUser.Repository
	hair  domainHair.Repository
}

func NewCurrent(users domainUser.Repository, hair domainHair.Repository) *Current {
	return &Current{users: users, hair: hair}
}

func (uc *Current) Execute(ctx context.Context, userID string) (*CurrentUser, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, httperr.ErrBusiness(httperr.CodeUserDisabled)
	}

	r := role.Role(u.Role)
	out := &CurrentUser{User: u, Menu: role.Menu(r)}

	if r == role.Client {
		p, err := uc.hair.GetByClientID(ctx, u.ID)
		switch {
		case err == nil:
			out.HairProfile = p
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	return out, nil
}
