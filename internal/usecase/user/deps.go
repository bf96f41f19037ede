package user

import "context"

// SessionRevoker encerra as sessões ativas de um usuário.
type SessionRevoker interface {
	RevokeAll(ctx context.Context, userID string) error
}

// DomainChecker valida se o domínio do e-mail existe.
type DomainChecker func(email string) bool
