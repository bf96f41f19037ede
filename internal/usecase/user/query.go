package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

type ListUsersInput struct {
	Actor  role.Role
	Role   string
	Active *bool
	Query  string
	Page   int
	Limit  int
}

type ListUsersOutput struct {
	Users []models.User
	Total int64
	Page  int
	Limit int
}

type ListUsers struct {
	repo domainUser.Repository
}

func NewListUsers(repo domainUser.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(ctx context.Context, in ListUsersInput) (*ListUsersOutput, error) {
	filter := domainUser.Filter{
		Active: in.Active,
		Query:  in.Query,
		Page:   in.Page,
		Limit:  in.Limit,
	}

	if in.Role != "" {
		r, ok := role.Parse(in.Role)
		if !ok {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRole)
		}
		filter.Role = r.String()
	}

	// estilista só enxerga clientes
	if !role.Can(in.Actor, role.UsersRead) {
		if !role.Can(in.Actor, role.ClientsRead) {
			return nil, httperr.ErrBusiness(httperr.CodeForbidden)
		}
		if filter.Role != "" && filter.Role != role.Client.String() {
			return nil, httperr.ErrBusiness(httperr.CodeForbidden)
		}
		filter.Role = role.Client.String()
	}

	users, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page, limit, _ := domain.Page(in.Page, in.Limit)
	return &ListUsersOutput{Users: users, Total: total, Page: page, Limit: limit}, nil
}

type GetUser struct {
	repo domainUser.Repository
}

func NewGetUser(repo domainUser.Repository) *GetUser {
	return &GetUser{repo: repo}
}

func (uc *GetUser) Execute(ctx context.Context, actor role.Role, id string) (*models.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !role.Can(actor, role.UsersRead) && u.Role != role.Client.String() {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return u, nil
}
