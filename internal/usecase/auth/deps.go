package auth

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

// Sessions é o subconjunto do session store usado pela autenticação.
type Sessions interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	Revoke(ctx context.Context, sessionID string) error
	RevokeAll(ctx context.Context, userID string) error
}

// AttemptLimiter limita tentativas de login com falha por e-mail.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// TokenIssuer assina o token de uma sessão.
type TokenIssuer interface {
	IssueToken(userID, role, sessionID string, now time.Time, ttl time.Duration) (string, time.Time, error)
}

// Session é o resultado de um login bem-sucedido.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// CurrentUser é a identidade corrente com o que o app precisa para montar
// a navegação.
type CurrentUser struct {
	User        *models.User
	HairProfile *models.HairProfile
	Menu        []role.MenuItem
}
