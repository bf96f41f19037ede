package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/session"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/usecasetest"
	userUC "github.com/BruksfildServices01/salon-manager/internal/usecase/user"
)

var now = time.Now().Truncate(time.Second)

type env struct {
	store    *usecasetest.Store
	users    usecasetest.Users
	sessions *session.Store
	limiter  *session.Limiter
	local    *identity.Local
	audit    *usecasetest.Audit
}

func setup(t *testing.T) *env {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := usecasetest.NewStore()
	sessions := session.NewStore(client)
	return &env{
		store:    store,
		users:    usecasetest.Users{Store: store},
		sessions: sessions,
		limiter:  session.NewLimiter(client, 3, time.Minute),
		local:    identity.NewLocal("test-secret", sessions),
		audit:    &usecasetest.Audit{},
	}
}

func (e *env) addUser(t *testing.T, email, password, r string, active bool) *models.User {
	t.Helper()
	hash, err := e.local.HashPassword(password)
	require.NoError(t, err)
	return e.store.AddUser(models.User{
		Name:         "Ana",
		Email:        email,
		PasswordHash: hash,
		Role:         r,
		Active:       active,
	})
}

func (e *env) login(t *testing.T) *Login {
	return NewLogin(e.users, e.local, e.sessions, e.local, e.limiter,
		timezone.Fixed(now), time.Hour, e.audit, zaptest.NewLogger(t))
}

// ======================================================
// Login
// ======================================================

func TestLoginReturnsRoleAndNoPassword(t *testing.T) {
	e := setup(t)
	u := e.addUser(t, "ana@salon.com", "segredo1", "stylist", true)

	s, err := e.login(t).Execute(context.Background(), " ANA@salon.com ", "segredo1")
	require.NoError(t, err)

	assert.Equal(t, u.ID, s.User.ID)
	assert.Equal(t, "stylist", s.User.Role)
	assert.Equal(t, now.Add(time.Hour).Unix(), s.ExpiresAt.Unix())
	require.NotNil(t, e.store.Users[u.ID].LastSignInAt)

	raw, err := json.Marshal(dto.SessionDTO{User: dto.NewUserDTO(s.User), Token: s.Token, ExpiresAt: s.ExpiresAt})
	require.NoError(t, err)
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Contains(t, payload, "token")

	var user map[string]any
	require.NoError(t, json.Unmarshal(payload["user"], &user))
	assert.Equal(t, "stylist", user["role"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")

	p, err := e.local.ParseToken(s.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)
	assert.Equal(t, "stylist", p.Role)

	assert.Equal(t, []string{audit.ActionLoginSucceeded}, e.audit.Actions())
}

func TestLoginInvalidCredentials(t *testing.T) {
	e := setup(t)
	e.addUser(t, "ana@salon.com", "segredo1", "client", true)
	uc := e.login(t)

	_, err := uc.Execute(context.Background(), "ana@salon.com", "errada")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCredentials))

	_, err = uc.Execute(context.Background(), "ninguem@salon.com", "segredo1")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCredentials))

	assert.Equal(t, []string{audit.ActionLoginFailed, audit.ActionLoginFailed}, e.audit.Actions())
}

func TestLoginDisabledUser(t *testing.T) {
	e := setup(t)
	e.addUser(t, "ana@salon.com", "segredo1", "client", false)

	_, err := e.login(t).Execute(context.Background(), "ana@salon.com", "segredo1")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUserDisabled))
}

func TestLoginTooManyAttempts(t *testing.T) {
	e := setup(t)
	e.addUser(t, "ana@salon.com", "segredo1", "client", true)
	uc := e.login(t)

	for i := 0; i < 3; i++ {
		_, err := uc.Execute(context.Background(), "ana@salon.com", "errada")
		require.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCredentials))
	}

	// mesmo com a senha certa, bloqueado até a janela expirar
	_, err := uc.Execute(context.Background(), "ana@salon.com", "segredo1")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTooManyRequests))
}

func TestLoginSuccessResetsAttempts(t *testing.T) {
	e := setup(t)
	e.addUser(t, "ana@salon.com", "segredo1", "client", true)
	uc := e.login(t)

	for i := 0; i < 2; i++ {
		_, _ = uc.Execute(context.Background(), "ana@salon.com", "errada")
	}
	_, err := uc.Execute(context.Background(), "ana@salon.com", "segredo1")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, _ = uc.Execute(context.Background(), "ana@salon.com", "errada")
	}
	_, err = uc.Execute(context.Background(), "ana@salon.com", "segredo1")
	assert.NoError(t, err)
}

func TestLoginNotSupportedWithoutPasswords(t *testing.T) {
	e := setup(t)
	uc := NewLogin(e.users, nil, e.sessions, nil, e.limiter,
		timezone.Fixed(now), time.Hour, e.audit, zaptest.NewLogger(t))

	_, err := uc.Execute(context.Background(), "ana@salon.com", "segredo1")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotSupported))
}

// ======================================================
// Register / Logout / ChangePassword / Current
// ======================================================

func TestRegisterCreatesClientSession(t *testing.T) {
	e := setup(t)
	create := userUC.NewCreateUser(e.users, e.local, usecasetest.AcceptAllDomains, e.audit, zaptest.NewLogger(t))
	uc := NewRegister(create, e.sessions, e.local, timezone.Fixed(now), time.Hour)

	s, err := uc.Execute(context.Background(), RegisterInput{
		Name: "Cli", Email: "cli@salon.com", Password: "segredo1",
	})
	require.NoError(t, err)
	assert.Equal(t, "client", s.User.Role)
	assert.NotEmpty(t, s.Token)

	// o token emitido é aceito enquanto a sessão existir
	p, err := e.local.Authenticate(context.Background(), s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, p.UserID)
}

func TestLogoutRevokesSession(t *testing.T) {
	e := setup(t)
	e.addUser(t, "ana@salon.com", "segredo1", "client", true)

	s, err := e.login(t).Execute(context.Background(), "ana@salon.com", "segredo1")
	require.NoError(t, err)

	p, err := e.local.Authenticate(context.Background(), s.Token)
	require.NoError(t, err)

	require.NoError(t, NewLogout(e.sessions, e.audit).Execute(context.Background(), p))

	_, err = e.local.Authenticate(context.Background(), s.Token)
	assert.ErrorIs(t, err, identity.ErrSessionRevoked)
}

func TestChangePassword(t *testing.T) {
	e := setup(t)
	u := e.addUser(t, "ana@salon.com", "segredo1", "client", true)

	s, err := e.login(t).Execute(context.Background(), "ana@salon.com", "segredo1")
	require.NoError(t, err)

	uc := NewChangePassword(e.users, e.local, e.sessions, e.audit)

	err = uc.Execute(context.Background(), ChangePasswordInput{UserID: u.ID, OldPassword: "errada", NewPassword: "novasenha"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeWrongPassword))

	err = uc.Execute(context.Background(), ChangePasswordInput{UserID: u.ID, OldPassword: "segredo1", NewPassword: "123"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeWeakPassword))

	require.NoError(t, uc.Execute(context.Background(), ChangePasswordInput{
		UserID: u.ID, OldPassword: "segredo1", NewPassword: "novasenha",
	}))

	_, err = e.local.Authenticate(context.Background(), s.Token)
	assert.Error(t, err)

	_, err = e.login(t).Execute(context.Background(), "ana@salon.com", "novasenha")
	assert.NoError(t, err)

	err = NewChangePassword(e.users, nil, e.sessions, e.audit).Execute(context.Background(), ChangePasswordInput{
		UserID: u.ID, OldPassword: "novasenha", NewPassword: "outrasenha",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotSupported))
}

func TestCurrentUser(t *testing.T) {
	e := setup(t)
	cli := e.addUser(t, "cli@salon.com", "segredo1", "client", true)
	sty := e.addUser(t, "sty@salon.com", "segredo1", "stylist", true)
	hair := usecasetest.HairProfiles{Store: e.store}
	require.NoError(t, hair.Upsert(context.Background(), &models.HairProfile{ClientID: cli.ID, HairType: "cacheado"}))

	uc := NewCurrent(e.users, hair)

	cur, err := uc.Execute(context.Background(), cli.ID)
	require.NoError(t, err)
	require.NotNil(t, cur.HairProfile)
	assert.Equal(t, "cacheado", cur.HairProfile.HairType)
	assert.Equal(t, "hair-profile", cur.Menu[1].Key)

	cur, err = uc.Execute(context.Background(), sty.ID)
	require.NoError(t, err)
	assert.Nil(t, cur.HairProfile)
	assert.Equal(t, "my-slots", cur.Menu[0].Key)

	_, err = uc.Execute(context.Background(), "missing")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUnauthorized))
}
