package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionRevoked  = errors.New("session revoked")
	ErrUnknownIdentity = errors.New("identity not linked to a user")
)

// AccountInput descreve a conta a criar no provedor.
type AccountInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Account é o resultado da criação. PasswordHash só é preenchido quando
// o próprio serviço guarda a senha (provedor local).
type Account struct {
	UID          string
	PasswordHash string
}

// Provider é o provedor de identidade (contas, bloqueio, revogação).
type Provider interface {
	Name() string
	CreateAccount(ctx context.Context, in AccountInput) (Account, error)
	DeleteAccount(ctx context.Context, uid string) error
	SetDisabled(ctx context.Context, uid string, disabled bool) error
	RevokeTokens(ctx context.Context, uid string) error
}

// PasswordAuthenticator é implementado por provedores que validam senha
// no servidor.
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePassword(hash, password string) error
}

// Principal é a identidade autenticada de uma requisição.
type Principal struct {
	UserID    string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// Authenticator valida o bearer token recebido pela API.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0)
}
