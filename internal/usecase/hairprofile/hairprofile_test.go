package hairprofile

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/usecasetest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fixture struct {
	store   *usecasetest.Store
	storage *usecasetest.Storage
	uc      *HairProfiles
	client  *models.User
}

func newFixture(t *testing.T) *fixture {
	store := usecasetest.NewStore()
	st := &usecasetest.Storage{}
	return &fixture{
		store:   store,
		storage: st,
		uc: NewHairProfiles(usecasetest.HairProfiles{Store: store}, usecasetest.Users{Store: store},
			st, &usecasetest.Audit{}, zaptest.NewLogger(t)),
		client: store.AddUser(models.User{Role: "client", Active: true}),
	}
}

func TestUpsertAndGetOwnProfile(t *testing.T) {
	f := newFixture(t)
	self := Actor{ID: f.client.ID, Role: role.Client}

	p, err := f.uc.Upsert(context.Background(), UpsertInput{
		Actor:      self,
		ClientID:   f.client.ID,
		HairType:   " cacheado ",
		Attributes: map[string]string{"porosidade": "alta", " ": "ignorado"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cacheado", p.HairType)
	assert.JSONEq(t, `{"porosidade":"alta"}`, p.Attributes)

	got, err := f.uc.Get(context.Background(), self, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	// segundo upsert substitui o mesmo registro
	_, err = f.uc.Upsert(context.Background(), UpsertInput{Actor: self, ClientID: f.client.ID, HairType: "liso"})
	require.NoError(t, err)
	assert.Len(t, f.store.Hair, 1)
	assert.Equal(t, "liso", f.store.Hair[f.client.ID].HairType)
}

func TestHairProfileVisibility(t *testing.T) {
	f := newFixture(t)
	other := f.store.AddUser(models.User{Role: "client", Active: true})
	sty := f.store.AddUser(models.User{Role: "stylist", Active: true})

	_, err := f.uc.Upsert(context.Background(), UpsertInput{Actor: Actor{ID: sty.ID, Role: role.Stylist}, ClientID: f.client.ID, HairType: "ondulado"})
	require.NoError(t, err)

	_, err = f.uc.Get(context.Background(), Actor{ID: other.ID, Role: role.Client}, f.client.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = f.uc.Upsert(context.Background(), UpsertInput{Actor: Actor{ID: other.ID, Role: role.Client}, ClientID: f.client.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = f.uc.Get(context.Background(), Actor{ID: other.ID, Role: role.Client}, other.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeHairProfileNotFound))

	_, err = f.uc.Upsert(context.Background(), UpsertInput{Actor: Actor{ID: "adm", Role: role.Admin}, ClientID: sty.ID})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotAClient))
}

func TestUploadPhotoReplacesPrevious(t *testing.T) {
	f := newFixture(t)
	self := Actor{ID: f.client.ID, Role: role.Client}

	_, err := f.uc.UploadPhoto(context.Background(), self, f.client.ID, bytes.NewReader(pngBytes(t, 10, 10)))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeHairProfileNotFound))

	_, err = f.uc.Upsert(context.Background(), UpsertInput{Actor: self, ClientID: f.client.ID, HairType: "liso"})
	require.NoError(t, err)

	first, err := f.uc.UploadPhoto(context.Background(), self, f.client.ID, bytes.NewReader(pngBytes(t, 2000, 1000)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.PhotoURL, "https://cdn.test/hair-profiles/"+f.client.ID+"/"))
	assert.True(t, strings.HasSuffix(first.PhotoURL, ".webp"))

	second, err := f.uc.UploadPhoto(context.Background(), self, f.client.ID, bytes.NewReader(pngBytes(t, 20, 20)))
	require.NoError(t, err)
	assert.NotEqual(t, first.PhotoURL, second.PhotoURL)
	assert.Len(t, f.storage.Objects, 1)
	assert.Len(t, f.storage.Removed, 1)
	assert.Equal(t, second.PhotoURL, f.store.Hair[f.client.ID].PhotoURL)

	_, err = f.uc.UploadPhoto(context.Background(), self, f.client.ID, strings.NewReader("not an image"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidImage))
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	store := usecasetest.NewStore()
	cli := store.AddUser(models.User{Role: "client", Active: true})
	uc := NewHairProfiles(usecasetest.HairProfiles{Store: store}, usecasetest.Users{Store: store},
		nil, &usecasetest.Audit{}, zaptest.NewLogger(t))

	_, err := uc.UploadPhoto(context.Background(), Actor{ID: cli.ID, Role: role.Client}, cli.ID, strings.NewReader(""))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeStorageDisabled))
}
