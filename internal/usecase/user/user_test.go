package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/usecasetest"
)

type fixture struct {
	store    *usecasetest.Store
	users    usecasetest.Users
	provider *usecasetest.Provider
	sessions *usecasetest.Sessions
	audit    *usecasetest.Audit
}

func newFixture() *fixture {
	store := usecasetest.NewStore()
	return &fixture{
		store:    store,
		users:    usecasetest.Users{Store: store},
		provider: &usecasetest.Provider{},
		sessions: &usecasetest.Sessions{},
		audit:    &usecasetest.Audit{},
	}
}

func (f *fixture) createUser(t *testing.T) *CreateUser {
	return NewCreateUser(f.users, f.provider, usecasetest.AcceptAllDomains, f.audit, zaptest.NewLogger(t))
}

func strPtr(s string) *string { return &s }

// ======================================================
// CreateUser
// ======================================================

func TestCreateUserRegistersClient(t *testing.T) {
	f := newFixture()

	u, err := f.createUser(t).Execute(context.Background(), CreateUserInput{
		Name:     "  Ana Souza ",
		Email:    "Ana@Example.com",
		Password: "segredo1",
		Role:     "cliente",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, role.Client.String(), u.Role)
	assert.True(t, u.Active)
	assert.Equal(t, "ext-1", u.ExternalUID)
	assert.Equal(t, "hash:segredo1", u.PasswordHash)
	assert.Equal(t, []string{audit.ActionUserRegistered}, f.audit.Actions())
}

func TestCreateUserByAdminIsAudited(t *testing.T) {
	f := newFixture()
	admin := f.store.AddUser(models.User{Name: "Admin", Role: "admin", Active: true})

	_, err := f.createUser(t).Execute(context.Background(), CreateUserInput{
		ActorID:  &admin.ID,
		Name:     "Bia",
		Email:    "bia@example.com",
		Password: "segredo1",
		Role:     "stylist",
	})
	require.NoError(t, err)
	require.Len(t, f.audit.Events, 1)
	assert.Equal(t, audit.ActionUserCreated, f.audit.Events[0].Action)
	assert.Equal(t, admin.ID, *f.audit.Events[0].ActorID)
}

func TestCreateUserValidation(t *testing.T) {
	cases := []struct {
		name string
		in   CreateUserInput
		code string
	}{
		{"missing name", CreateUserInput{Email: "a@b.com", Password: "segredo1", Role: "client"}, httperr.CodeMissingField},
		{"bad email", CreateUserInput{Name: "A", Email: "not-an-email", Password: "segredo1", Role: "client"}, httperr.CodeInvalidEmail},
		{"weak password", CreateUserInput{Name: "A", Email: "a@b.com", Password: "123", Role: "client"}, httperr.CodeWeakPassword},
		{"bad role", CreateUserInput{Name: "A", Email: "a@b.com", Password: "segredo1", Role: "owner"}, httperr.CodeInvalidRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.createUser(t).Execute(context.Background(), tc.in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
			assert.Empty(t, f.store.Users)
		})
	}
}

func TestCreateUserRejectsUnknownDomain(t *testing.T) {
	f := newFixture()
	uc := NewCreateUser(f.users, f.provider, func(string) bool { return false }, f.audit, zaptest.NewLogger(t))

	_, err := uc.Execute(context.Background(), CreateUserInput{
		Name: "A", Email: "a@nowhere.invalid", Password: "segredo1", Role: "client",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidEmailDomain))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture()
	f.store.AddUser(models.User{Email: "ana@example.com", Role: "client", Active: true})

	_, err := f.createUser(t).Execute(context.Background(), CreateUserInput{
		Name: "Ana", Email: "ANA@example.com", Password: "segredo1", Role: "client",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeEmailInUse))
	assert.Empty(t, f.audit.Events)
}

func TestCreateUserProviderFailure(t *testing.T) {
	f := newFixture()
	f.provider.FailWith = errors.New("provider down")

	_, err := f.createUser(t).Execute(context.Background(), CreateUserInput{
		Name: "Ana", Email: "ana@example.com", Password: "segredo1", Role: "client",
	})
	require.Error(t, err)
	assert.Empty(t, f.store.Users)
}

// ======================================================
// ListUsers / GetUser
// ======================================================

func TestListUsersStylistSeesOnlyClients(t *testing.T) {
	f := newFixture()
	f.store.AddUser(models.User{Name: "Cli", Role: "client", Active: true})
	f.store.AddUser(models.User{Name: "Sty", Role: "stylist", Active: true})
	f.store.AddUser(models.User{Name: "Adm", Role: "admin", Active: true})

	uc := NewListUsers(f.users)

	out, err := uc.Execute(context.Background(), ListUsersInput{Actor: role.Stylist})
	require.NoError(t, err)
	require.Len(t, out.Users, 1)
	assert.Equal(t, "Cli", out.Users[0].Name)

	_, err = uc.Execute(context.Background(), ListUsersInput{Actor: role.Stylist, Role: "admin"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = uc.Execute(context.Background(), ListUsersInput{Actor: role.Client})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	out, err = uc.Execute(context.Background(), ListUsersInput{Actor: role.Admin})
	require.NoError(t, err)
	assert.EqualValues(t, 3, out.Total)
	assert.Equal(t, 1, out.Page)
}

func TestGetUserVisibility(t *testing.T) {
	f := newFixture()
	cli := f.store.AddUser(models.User{Name: "Cli", Role: "client", Active: true})
	adm := f.store.AddUser(models.User{Name: "Adm", Role: "admin", Active: true})

	uc := NewGetUser(f.users)

	u, err := uc.Execute(context.Background(), role.Stylist, cli.ID)
	require.NoError(t, err)
	assert.Equal(t, cli.ID, u.ID)

	_, err = uc.Execute(context.Background(), role.Stylist, adm.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = uc.Execute(context.Background(), role.Admin, "missing")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUserNotFound))
}

// ======================================================
// UpdateUser
// ======================================================

func TestUpdateUserRoleChangeRevokesSessions(t *testing.T) {
	f := newFixture()
	adm := f.store.AddUser(models.User{Role: "admin", Active: true})
	u := f.store.AddUser(models.User{Name: "Ana", Role: "client", Active: true})
	_, _ = f.sessions.Create(context.Background(), u.ID, 0)

	uc := NewUpdateUser(f.users, f.sessions, f.audit)
	got, err := uc.Execute(context.Background(), UpdateUserInput{
		ActorID:   adm.ID,
		ActorRole: role.Admin,
		UserID:    u.ID,
		Role:      strPtr("estilista"),
	})
	require.NoError(t, err)
	assert.Equal(t, "stylist", got.Role)
	assert.Equal(t, 0, f.sessions.Count(u.ID))
	assert.Equal(t, []string{audit.ActionUserUpdated}, f.audit.Actions())
}

func TestUpdateUserDemotedStylistLosesSpecialties(t *testing.T) {
	f := newFixture()
	adm := f.store.AddUser(models.User{Role: "admin", Active: true})
	u := f.store.AddUser(models.User{Name: "Bia", Role: "stylist", Active: true})
	f.store.Specialties["corte"] = &models.Specialty{ID: "corte", Name: "Corte", Active: true, StylistCount: 1}
	f.store.Assignments["a-1"] = &models.StylistSpecialty{ID: "a-1", StylistID: u.ID, SpecialtyID: "corte", Active: true}

	uc := NewUpdateUser(f.users, f.sessions, f.audit)
	got, err := uc.Execute(context.Background(), UpdateUserInput{
		ActorID:   adm.ID,
		ActorRole: role.Admin,
		UserID:    u.ID,
		Role:      strPtr("cliente"),
	})
	require.NoError(t, err)
	assert.Equal(t, "client", got.Role)
	assert.False(t, f.store.Assignments["a-1"].Active)
	assert.Equal(t, 0, f.store.Specialties["corte"].StylistCount)
}

func TestUpdateUserPermissions(t *testing.T) {
	f := newFixture()
	u := f.store.AddUser(models.User{Name: "Ana", Role: "client", Active: true})
	other := f.store.AddUser(models.User{Name: "Bia", Role: "client", Active: true})

	uc := NewUpdateUser(f.users, f.sessions, f.audit)

	// o próprio usuário edita nome, mas não o papel
	got, err := uc.Execute(context.Background(), UpdateUserInput{
		ActorID: u.ID, ActorRole: role.Client, UserID: u.ID, Name: strPtr(" Ana Maria "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)

	_, err = uc.Execute(context.Background(), UpdateUserInput{
		ActorID: u.ID, ActorRole: role.Client, UserID: u.ID, Role: strPtr("admin"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = uc.Execute(context.Background(), UpdateUserInput{
		ActorID: u.ID, ActorRole: role.Client, UserID: other.ID, Name: strPtr("X"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

// ======================================================
// SetUserActive
// ======================================================

func TestDeactivateChangesOnlyActiveFlag(t *testing.T) {
	f := newFixture()
	adm := f.store.AddUser(models.User{Role: "admin", Active: true})
	u := f.store.AddUser(models.User{
		ExternalUID:   "ext-9",
		Name:          "Ana",
		Email:         "ana@example.com",
		Phone:         "11999990000",
		Role:          "client",
		Active:        true,
		LoyaltyPoints: 40,
	})
	before := *f.store.Users[u.ID]
	_, _ = f.sessions.Create(context.Background(), u.ID, 0)

	uc := NewSetUserActive(f.users, f.provider, f.sessions, f.audit)
	got, err := uc.Execute(context.Background(), adm.ID, u.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Active)

	after := *f.store.Users[u.ID]
	assert.False(t, after.Active)
	after.Active = true
	assert.Equal(t, before, after)

	assert.True(t, f.provider.Disabled["ext-9"])
	assert.Equal(t, []string{"ext-9"}, f.provider.Revoked)
	assert.Equal(t, 0, f.sessions.Count(u.ID))
	assert.Equal(t, []string{audit.ActionUserDeactivated}, f.audit.Actions())
}

func TestReactivateUser(t *testing.T) {
	f := newFixture()
	adm := f.store.AddUser(models.User{Role: "admin", Active: true})
	u := f.store.AddUser(models.User{ExternalUID: "ext-3", Role: "stylist", Active: false})

	uc := NewSetUserActive(f.users, f.provider, f.sessions, f.audit)
	got, err := uc.Execute(context.Background(), adm.ID, u.ID, true)
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.False(t, f.provider.Disabled["ext-3"])
	assert.Empty(t, f.provider.Revoked)

	// idempotente
	_, err = uc.Execute(context.Background(), adm.ID, u.ID, true)
	require.NoError(t, err)
	assert.Len(t, f.audit.Events, 1)
}

func TestCannotDeactivateSelf(t *testing.T) {
	f := newFixture()
	adm := f.store.AddUser(models.User{Role: "admin", Active: true})

	uc := NewSetUserActive(f.users, f.provider, f.sessions, f.audit)
	_, err := uc.Execute(context.Background(), adm.ID, adm.ID, false)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeCannotDeactivateSelf))
	assert.True(t, f.store.Users[adm.ID].Active)
}

// ======================================================
// AdjustLoyalty
// ======================================================

func TestLoyaltyAddAndRedeem(t *testing.T) {
	f := newFixture()
	sty := f.store.AddUser(models.User{Role: "stylist", Active: true})
	cli := f.store.AddUser(models.User{Role: "client", Active: true, LoyaltyPoints: 5})

	uc := NewAdjustLoyalty(f.users, f.audit)

	balance, err := uc.Add(context.Background(), sty.ID, cli.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, balance)

	balance, err = uc.Redeem(context.Background(), sty.ID, cli.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	_, err = uc.Redeem(context.Background(), sty.ID, cli.ID, 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInsufficientPoints))
	assert.Equal(t, 0, f.store.Users[cli.ID].LoyaltyPoints)

	assert.Equal(t, []string{audit.ActionLoyaltyAdded, audit.ActionLoyaltyRedeemed}, f.audit.Actions())
}

func TestLoyaltyRejects(t *testing.T) {
	f := newFixture()
	sty := f.store.AddUser(models.User{Role: "stylist", Active: true})
	off := f.store.AddUser(models.User{Role: "client", Active: false})

	uc := NewAdjustLoyalty(f.users, f.audit)

	_, err := uc.Add(context.Background(), sty.ID, sty.ID, 10)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotAClient))

	_, err = uc.Add(context.Background(), sty.ID, off.ID, 10)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUserDisabled))

	_, err = uc.Add(context.Background(), sty.ID, off.ID, 0)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidPoints))
}
