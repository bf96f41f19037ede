package user

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

type UpdateUserInput struct {
	ActorID   string
	ActorRole role.Role
	UserID    string

	Name  *string
	Phone *string
	Role  *string
}

type UpdateUser struct {
	repo     domainUser.Repository
	sessions SessionRevoker
	audit    audit.Publisher
}

func NewUpdateUser(repo domainUser.Repository, sessions SessionRevoker, audit audit.Publisher) *UpdateUser {
	return &UpdateUser{repo: repo, sessions: sessions, audit: audit}
}

func (uc *UpdateUser) Execute(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	u, err := uc.repo.GetByID(ctx, in.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}

	// fora o admin, só o próprio usuário edita seu perfil
	if in.ActorID != u.ID && !role.Can(in.ActorRole, role.UsersWrite) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	changed := map[string]any{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrBusiness(httperr.CodeMissingField)
		}
		u.Name = name
		changed["name"] = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
		changed["phone"] = u.Phone
	}

	roleChanged := false
	if in.Role != nil {
		if !role.Can(in.ActorRole, role.UsersWrite) {
			return nil, httperr.ErrBusiness(httperr.CodeForbidden)
		}
		r, ok := role.Parse(*in.Role)
		if !ok {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRole)
		}
		roleChanged = r.String() != u.Role
		u.Role = r.String()
		changed["role"] = u.Role
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	// o papel vai no token: força novo login
	if roleChanged {
		if err := uc.sessions.RevokeAll(ctx, u.ID); err != nil {
			return nil, err
		}
	}

	actor := in.ActorID
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor,
		Action:   audit.ActionUserUpdated,
		Entity:   "user",
		EntityID: u.ID,
		Metadata: changed,
	})

	return u, nil
}
