package auth

import (
	"context"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
)

type Logout struct {
	sessions Sessions
	audit    audit.Publisher
}

func NewLogout(sessions Sessions, audit audit.Publisher) *Logout {
	return &Logout{sessions: sessions, audit: audit}
}

// Execute encerra a sessão da requisição; tokens do provedor externo não
// têm sessão local e não há o que revogar.
func (uc *Logout) Execute(ctx context.Context, p identity.Principal) error {
	if p.SessionID != "" {
		if err := uc.sessions.Revoke(ctx, p.SessionID); err != nil {
			return err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &p.UserID,
		Action:   audit.ActionLogout,
		Entity:   "user",
		EntityID: p.UserID,
	})
	return nil
}
