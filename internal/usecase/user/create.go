package user

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateUserInput struct {
	ActorID  *string
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateUser struct {
	repo        domainUser.Repository
	provider    identity.Provider
	checkDomain DomainChecker
	audit       audit.Publisher
	log         *zap.Logger
}

func NewCreateUser(
	repo domainUser.Repository,
	provider identity.Provider,
	checkDomain DomainChecker,
	audit audit.Publisher,
	log *zap.Logger,
) *CreateUser {
	if checkDomain == nil {
		checkDomain = validators.IsEmailDomainValid
	}
	return &CreateUser{
		repo:        repo,
		provider:    provider,
		checkDomain: checkDomain,
		audit:       audit,
		log:         log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateUser) Execute(ctx context.Context, in CreateUserInput) (*models.User, error) {

	// --------------------------------------------------
	// 1️⃣ Campos obrigatórios
	// --------------------------------------------------
	if validators.Blank(in.Name, in.Email, in.Password) {
		return nil, httperr.ErrBusiness(httperr.CodeMissingField)
	}

	email := validators.NormalizeEmail(in.Email)
	if !validators.IsEmail(email) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidEmail)
	}
	if !validators.IsStrongPassword(in.Password) {
		return nil, httperr.ErrBusiness(httperr.CodeWeakPassword)
	}

	r, ok := role.Parse(in.Role)
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRole)
	}

	if !uc.checkDomain(email) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidEmailDomain)
	}

	// --------------------------------------------------
	// 2️⃣ E-mail único
	// --------------------------------------------------
	if _, err := uc.repo.GetByEmail(ctx, email); err == nil {
		return nil, httperr.ErrBusiness(httperr.CodeEmailInUse)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Conta no provedor de identidade
	// --------------------------------------------------
	acc, err := uc.provider.CreateAccount(ctx, identity.AccountInput{
		Email:       email,
		Password:    in.Password,
		DisplayName: strings.TrimSpace(in.Name),
	})
	if err != nil {
		if identity.IsEmailTaken(err) {
			return nil, httperr.ErrBusiness(httperr.CodeEmailInUse)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Perfil
	// --------------------------------------------------
	u := &models.User{
		ExternalUID:  acc.UID,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: acc.PasswordHash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         r.String(),
		Active:       true,
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		// desfaz a conta criada no provedor
		if derr := uc.provider.DeleteAccount(ctx, acc.UID); derr != nil {
			uc.log.Warn("failed to roll back identity account",
				zap.String("uid", acc.UID),
				zap.Error(derr),
			)
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrBusiness(httperr.CodeEmailInUse)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	action := audit.ActionUserCreated
	if in.ActorID == nil {
		action = audit.ActionUserRegistered
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   action,
		Entity:   "user",
		EntityID: u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	return u, nil
}
