package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

// ======================================================
// USE CASE
// ======================================================

type Login struct {
	users     domainUser.Repository
	passwords identity.PasswordAuthenticator
	sessions  Sessions
	issuer    TokenIssuer
	limiter   AttemptLimiter
	clock     timezone.Clock
	ttl       time.Duration
	audit     audit.Publisher
	log       *zap.Logger
}

// NewLogin monta o login por senha. passwords nil indica um provedor
// externo (o app autentica direto no provedor) e o login responde
// operation_not_supported.
func NewLogin(
	users domainUser.Repository,
	passwords identity.PasswordAuthenticator,
	sessions Sessions,
	issuer TokenIssuer,
	limiter AttemptLimiter,
	clock timezone.Clock,
	ttl time.Duration,
	audit audit.Publisher,
	log *zap.Logger,
) *Login {
	return &Login{
		users:     users,
		passwords: passwords,
		sessions:  sessions,
		issuer:    issuer,
		limiter:   limiter,
		clock:     clock,
		ttl:       ttl,
		audit:     audit,
		log:       log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Login) Execute(ctx context.Context, email, password string) (*Session, error) {

	// --------------------------------------------------
	// 1️⃣ Entrada
	// --------------------------------------------------
	if validators.Blank(email, password) {
		return nil, httperr.ErrBusiness(httperr.CodeMissingField)
	}
	if uc.passwords == nil || uc.issuer == nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotSupported)
	}

	email = validators.NormalizeEmail(email)
	if !validators.IsEmail(email) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidEmail)
	}

	// --------------------------------------------------
	// 2️⃣ Limite de tentativas
	// --------------------------------------------------
	allowed, err := uc.limiter.Allow(ctx, email)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, httperr.ErrBusiness(httperr.CodeTooManyRequests)
	}

	// --------------------------------------------------
	// 3️⃣ Credenciais
	// --------------------------------------------------
	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if u == nil || u.PasswordHash == "" || uc.passwords.ComparePassword(u.PasswordHash, password) != nil {
		uc.fail(ctx, email, u)
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}

	if !u.Active {
		return nil, httperr.ErrBusiness(httperr.CodeUserDisabled)
	}

	if err := uc.limiter.Reset(ctx, email); err != nil {
		uc.log.Warn("failed to reset login attempts", zap.Error(err))
	}

	// --------------------------------------------------
	// 4️⃣ Sessão + token
	// --------------------------------------------------
	now := uc.clock.Now()
	if err := uc.users.TouchSignIn(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastSignInAt = &now

	sessionID, err := uc.sessions.Create(ctx, u.ID, uc.ttl)
	if err != nil {
		return nil, err
	}

	token, exp, err := uc.issuer.IssueToken(u.ID, u.Role, sessionID, now, uc.ttl)
	if err != nil {
		_ = uc.sessions.Revoke(ctx, sessionID)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &u.ID,
		Action:   audit.ActionLoginSucceeded,
		Entity:   "user",
		EntityID: u.ID,
	})

	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

func (uc *Login) fail(ctx context.Context, email string, u *models.User) {
	if err := uc.limiter.Fail(ctx, email); err != nil {
		uc.log.Warn("failed to count login attempt", zap.Error(err))
	}

	ev := audit.Event{
		Action:   audit.ActionLoginFailed,
		Entity:   "user",
		Metadata: map[string]any{"email": email},
	}
	if u != nil {
		ev.EntityID = u.ID
	}
	uc.audit.Dispatch(ev)
}

// issueSession cria sessão e token para um usuário recém-cadastrado.
func issueSession(
	ctx context.Context,
	sessions Sessions,
	issuer TokenIssuer,
	u *models.User,
	now time.Time,
	ttl time.Duration,
) (*Session, error) {
	sessionID, err := sessions.Create(ctx, u.ID, ttl)
	if err != nil {
		return nil, err
	}
	token, exp, err := issuer.IssueToken(u.ID, u.Role, sessionID, now, ttl)
	if err != nil {
		_ = sessions.Revoke(ctx, sessionID)
		return nil, err
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}
