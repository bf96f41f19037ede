package product

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domainCatalog "github.com/BruksfildServices01/salon-manager/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/usecasetest"
)

func setup(t *testing.T) (*usecasetest.Store, *usecasetest.Storage, *usecasetest.Audit, *Catalog) {
	store := usecasetest.NewStore()
	st := &usecasetest.Storage{}
	a := &usecasetest.Audit{}
	return store, st, a, NewCatalog(usecasetest.Products{Store: store}, st, a, zaptest.NewLogger(t))
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 32, 16)), nil))
	return buf.Bytes()
}

func TestCreateProduct(t *testing.T) {
	_, _, a, uc := setup(t)

	p, err := uc.Create(context.Background(), CreateProductInput{
		ActorID: "adm", Name: " Shampoo ", Category: " Cabelo ", Price: 39.9, Stock: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Shampoo", p.Name)
	assert.Equal(t, "cabelo", p.Category)
	assert.True(t, p.Active)
	assert.Equal(t, []string{audit.ActionProductCreated}, a.Actions())

	_, err = uc.Create(context.Background(), CreateProductInput{Name: "X", Price: -1})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidPrice))

	_, err = uc.Create(context.Background(), CreateProductInput{Name: "X", Stock: -1})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStock))

	_, err = uc.Create(context.Background(), CreateProductInput{Price: 1})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeMissingField))
}

func TestListAndUpdateProducts(t *testing.T) {
	_, _, _, uc := setup(t)

	shampoo, err := uc.Create(context.Background(), CreateProductInput{Name: "Shampoo", Category: "cabelo", Price: 30})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), CreateProductInput{Name: "Esmalte", Category: "unhas", Price: 10})
	require.NoError(t, err)

	list, err := uc.List(context.Background(), domainCatalog.Filter{Category: "CABELO"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, shampoo.ID, list[0].ID)

	price := 35.5
	got, err := uc.Update(context.Background(), UpdateProductInput{ID: shampoo.ID, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 35.5, got.Price)
	assert.Equal(t, "Shampoo", got.Name)

	neg := -3
	_, err = uc.Update(context.Background(), UpdateProductInput{ID: shampoo.ID, Stock: &neg})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStock))

	_, err = uc.SetActive(context.Background(), "adm", shampoo.ID, false)
	require.NoError(t, err)

	active := true
	list, err = uc.List(context.Background(), domainCatalog.Filter{Active: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Esmalte", list[0].Name)

	_, err = uc.Get(context.Background(), "missing")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeProductNotFound))
}

func TestUploadProductImage(t *testing.T) {
	store, st, _, uc := setup(t)

	p, err := uc.Create(context.Background(), CreateProductInput{Name: "Shampoo", Price: 30})
	require.NoError(t, err)

	first, err := uc.UploadImage(context.Background(), "adm", p.ID, bytes.NewReader(jpegBytes(t)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ImageURL, "https://cdn.test/products/"+p.ID+"/"))

	second, err := uc.UploadImage(context.Background(), "adm", p.ID, bytes.NewReader(jpegBytes(t)))
	require.NoError(t, err)

	assert.Equal(t, second.ImageURL, store.Products[p.ID].ImageURL)
	assert.Len(t, st.Objects, 1)
	require.Len(t, st.Removed, 1)
	assert.True(t, strings.HasPrefix(st.Removed[0], "products/"+p.ID+"/"))

	_, err = uc.UploadImage(context.Background(), "adm", p.ID, strings.NewReader("garbage"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidImage))

	_, err = uc.UploadImage(context.Background(), "adm", "missing", bytes.NewReader(jpegBytes(t)))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeProductNotFound))
}

func TestUploadImageWithoutStorage(t *testing.T) {
	store := usecasetest.NewStore()
	uc := NewCatalog(usecasetest.Products{Store: store}, nil, &usecasetest.Audit{}, zaptest.NewLogger(t))

	_, err := uc.UploadImage(context.Background(), "adm", "p-1", strings.NewReader(""))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeStorageDisabled))
}
