package auth

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

type ChangePasswordInput struct {
	UserID      string
	OldPassword string
	NewPassword string
}

type ChangePassword struct {
	users     domainUser.Repository
	passwords identity.PasswordAuthenticator
	sessions  Sessions
	audit     audit.Publisher
}

func NewChangePassword(
	users domainUser.Repository,
	passwords identity.PasswordAuthenticator,
	sessions Sessions,
	audit audit.Publisher,
) *ChangePassword {
	return &ChangePassword{
		users:     users,
		passwords: passwords,
		sessions:  sessions,
		audit:     audit,
	}
}

// Execute troca a senha e derruba todas as sessões do usuário.
func (uc *ChangePassword) Execute(ctx context.Context, in ChangePasswordInput) error {
	if uc.passwords == nil {
		return httperr.ErrBusiness(httperr.CodeNotSupported)
	}
	if validators.Blank(in.OldPassword, in.NewPassword) {
		return httperr.ErrBusiness(httperr.CodeMissingField)
	}
	if !validators.IsStrongPassword(in.NewPassword) {
		return httperr.ErrBusiness(httperr.CodeWeakPassword)
	}

	u, err := uc.users.GetByID(ctx, in.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return err
	}

	if uc.passwords.ComparePassword(u.PasswordHash, in.OldPassword) != nil {
		return httperr.ErrBusiness(httperr.CodeWrongPassword)
	}

	hash, err := uc.passwords.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return err
	}
	if err := uc.sessions.RevokeAll(ctx, u.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &u.ID,
		Action:   audit.ActionPasswordChanged,
		Entity:   "user",
		EntityID: u.ID,
	})
	return nil
}
