package specialty

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/usecasetest"
)

type fixture struct {
	store *usecasetest.Store
	repo  usecasetest.Specialties
	audit *usecasetest.Audit
	uc    *Assignments
}

func newFixture() *fixture {
	store := usecasetest.NewStore()
	repo := usecasetest.Specialties{Store: store}
	a := &usecasetest.Audit{}
	return &fixture{
		store: store,
		repo:  repo,
		audit: a,
		uc: NewAssignments(repo, usecasetest.Users{Store: store},
			timezone.Fixed(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)), a),
	}
}

func (f *fixture) specialty(t *testing.T, name string) *models.Specialty {
	t.Helper()
	s, err := NewCreateSpecialty(f.repo, f.audit).Execute(context.Background(), CreateSpecialtyInput{
		ActorID: "admin-1",
		Name:    name,
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) count(id string) int {
	return f.store.Specialties[id].StylistCount
}

func TestCreateSpecialtyUniqueName(t *testing.T) {
	f := newFixture()
	f.specialty(t, "Coloração")

	_, err := NewCreateSpecialty(f.repo, f.audit).Execute(context.Background(), CreateSpecialtyInput{Name: " coloração "})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSpecialtyExists))

	_, err = NewCreateSpecialty(f.repo, f.audit).Execute(context.Background(), CreateSpecialtyInput{Name: "  "})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeMissingField))
}

func TestUpdateAndDeactivateSpecialty(t *testing.T) {
	f := newFixture()
	s := f.specialty(t, "Corte")
	f.specialty(t, "Escova")

	uc := NewUpdateSpecialty(f.repo, f.audit)

	name := "Escova"
	_, err := uc.Execute(context.Background(), UpdateSpecialtyInput{ID: s.ID, Name: &name})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSpecialtyExists))

	off := false
	got, err := uc.Execute(context.Background(), UpdateSpecialtyInput{ID: s.ID, Active: &off})
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, "Corte", got.Name)

	list, err := NewListSpecialties(f.repo).Execute(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Escova", list[0].Name)

	_, err = uc.Execute(context.Background(), UpdateSpecialtyInput{ID: "missing", Active: &off})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSpecialtyNotFound))
}

func TestAssignIncrementsCounterByOne(t *testing.T) {
	f := newFixture()
	s := f.specialty(t, "Corte")
	sty := f.store.AddUser(models.User{Name: "Bia", Role: "stylist", Active: true})

	a, err := f.uc.Assign(context.Background(), "admin-1", sty.ID, s.ID)
	require.NoError(t, err)
	assert.True(t, a.Active)
	assert.Equal(t, 1, f.count(s.ID))
	assert.Equal(t, 1, a.Specialty.StylistCount)

	_, err = f.uc.Assign(context.Background(), "admin-1", sty.ID, s.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyAssigned))
	assert.Equal(t, 1, f.count(s.ID))
}

func TestUnassignAndReassign(t *testing.T) {
	f := newFixture()
	s := f.specialty(t, "Corte")
	sty := f.store.AddUser(models.User{Name: "Bia", Role: "stylist", Active: true})

	first, err := f.uc.Assign(context.Background(), "admin-1", sty.ID, s.ID)
	require.NoError(t, err)

	require.NoError(t, f.uc.Unassign(context.Background(), "admin-1", sty.ID, s.ID))
	assert.Equal(t, 0, f.count(s.ID))

	err = f.uc.Unassign(context.Background(), "admin-1", sty.ID, s.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAssignmentNotFound))
	assert.Equal(t, 0, f.count(s.ID))

	// reatribuir reaproveita o registro
	again, err := f.uc.Assign(context.Background(), "admin-1", sty.ID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, f.count(s.ID))
	assert.Len(t, f.store.Assignments, 1)

	assert.Equal(t, []string{
		audit.ActionSpecialtyCreated,
		audit.ActionSpecialtyAssigned,
		audit.ActionSpecialtyRemoved,
		audit.ActionSpecialtyAssigned,
	}, f.audit.Actions())
}

// staleSpecialties devolve o vínculo lido antes de outra requisição reativá-lo.
type staleSpecialties struct {
	usecasetest.Specialties
	stale models.StylistSpecialty
}

func (r staleSpecialties) GetAssignment(context.Context, string, string) (*models.StylistSpecialty, error) {
	cp := r.stale
	return &cp, nil
}

func TestReassignRaceCountsOnce(t *testing.T) {
	f := newFixture()
	s := f.specialty(t, "Corte")
	sty := f.store.AddUser(models.User{Name: "Bia", Role: "stylist", Active: true})

	first, err := f.uc.Assign(context.Background(), "admin-1", sty.ID, s.ID)
	require.NoError(t, err)
	require.NoError(t, f.uc.Unassign(context.Background(), "admin-1", sty.ID, s.ID))

	stale := *f.store.Assignments[first.ID]
	require.False(t, stale.Active)

	racing := NewAssignments(staleSpecialties{Specialties: f.repo, stale: stale},
		usecasetest.Users{Store: f.store}, timezone.Fixed(time.Now()), f.audit)

	_, err = racing.Assign(context.Background(), "admin-1", sty.ID, s.ID)
	require.NoError(t, err)
	_, err = racing.Assign(context.Background(), "admin-1", sty.ID, s.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyAssigned))

	assert.Equal(t, 1, f.count(s.ID))
}

func TestAssignRequiresActiveStylistAndSpecialty(t *testing.T) {
	f := newFixture()
	s := f.specialty(t, "Corte")
	cli := f.store.AddUser(models.User{Role: "client", Active: true})
	off := f.store.AddUser(models.User{Role: "stylist", Active: false})

	_, err := f.uc.Assign(context.Background(), "admin-1", cli.ID, s.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotAStylist))

	_, err = f.uc.Assign(context.Background(), "admin-1", off.ID, s.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotAStylist))

	_, err = f.uc.Assign(context.Background(), "admin-1", "missing", s.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUserNotFound))

	sty := f.store.AddUser(models.User{Role: "stylist", Active: true})
	f.store.Specialties[s.ID].Active = false
	_, err = f.uc.Assign(context.Background(), "admin-1", sty.ID, s.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSpecialtyInactive))

	assert.Equal(t, 0, f.count(s.ID))
}

func TestConcurrentAssignmentsKeepCounterExact(t *testing.T) {
	f := newFixture()
	s := f.specialty(t, "Corte")

	const n = 20
	var stylists []string
	for i := 0; i < n; i++ {
		stylists = append(stylists, f.store.AddUser(models.User{Role: "stylist", Active: true}).ID)
	}

	var wg sync.WaitGroup
	for _, id := range stylists {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.uc.Assign(context.Background(), "admin-1", id, s.ID)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, n, f.count(s.ID))
}

func TestListsAndRecount(t *testing.T) {
	f := newFixture()
	corte := f.specialty(t, "Corte")
	cor := f.specialty(t, "Coloração")
	bia := f.store.AddUser(models.User{Name: "Bia", Role: "stylist", Active: true})
	caio := f.store.AddUser(models.User{Name: "Caio", Role: "stylist", Active: true})

	for _, pair := range [][2]string{{bia.ID, corte.ID}, {bia.ID, cor.ID}, {caio.ID, corte.ID}} {
		_, err := f.uc.Assign(context.Background(), "admin-1", pair[0], pair[1])
		require.NoError(t, err)
	}

	mine, err := f.uc.ListForStylist(context.Background(), bia.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Coloração", mine[0].Specialty.Name)

	stylists, err := f.uc.ListStylists(context.Background(), corte.ID)
	require.NoError(t, err)
	require.Len(t, stylists, 2)
	assert.Equal(t, "Bia", stylists[0].Name)

	_, err = f.uc.ListStylists(context.Background(), "missing")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSpecialtyNotFound))

	// simula contadores corrompidos
	f.store.Specialties[corte.ID].StylistCount = 7
	f.store.Specialties[cor.ID].StylistCount = 0

	counts, err := NewRecountSpecialties(f.repo, f.audit).Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{corte.ID: 2, cor.ID: 1}, counts)
	assert.Equal(t, 2, f.count(corte.ID))
	assert.Equal(t, 1, f.count(cor.ID))
}
