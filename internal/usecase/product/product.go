package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainCatalog "github.com/BruksfildServices01/salon-manager/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/imaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/storage"
)

const (
	imageMaxSide = 800
	imageQuality = 80
)

// ======================================================
// USE CASE
// ======================================================

type Catalog struct {
	repo    domainCatalog.Repository
	storage storage.MediaStore
	audit   audit.Publisher
	log     *zap.Logger
}

func NewCatalog(
	repo domainCatalog.Repository,
	storage storage.MediaStore,
	audit audit.Publisher,
	log *zap.Logger,
) *Catalog {
	return &Catalog{
		repo:    repo,
		storage: storage,
		audit:   audit,
		log:     log,
	}
}

// ======================================================
// CREATE
// ======================================================

type CreateProductInput struct {
	ActorID     string
	Name        string
	Description string
	Category    string
	Price       float64
	Stock       int
}

func (uc *Catalog) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingField)
	}
	if in.Price < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidPrice)
	}
	if in.Stock < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidStock)
	}

	p := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Category:    normalizeCategory(in.Category),
		Price:       in.Price,
		Stock:       in.Stock,
		Active:      true,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.dispatch(in.ActorID, audit.ActionProductCreated, p.ID, map[string]any{"name": p.Name})
	return p, nil
}

// ======================================================
// QUERIES
// ======================================================

func (uc *Catalog) List(ctx context.Context, f domainCatalog.Filter) ([]models.Product, error) {
	f.Category = normalizeCategory(f.Category)
	f.Query = strings.TrimSpace(f.Query)
	return uc.repo.List(ctx, f)
}

func (uc *Catalog) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeProductNotFound)
	}
	return p, err
}

// ======================================================
// UPDATE
// ======================================================

type UpdateProductInput struct {
	ActorID     string
	ID          string
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Stock       *int
}

func (uc *Catalog) Update(ctx context.Context, in UpdateProductInput) (*models.Product, error) {
	p, err := uc.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrBusiness(httperr.CodeMissingField)
		}
		p.Name = name
		changed["name"] = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
		changed["description"] = p.Description
	}
	if in.Category != nil {
		p.Category = normalizeCategory(*in.Category)
		changed["category"] = p.Category
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidPrice)
		}
		p.Price = *in.Price
		changed["price"] = p.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidStock)
		}
		p.Stock = *in.Stock
		changed["stock"] = p.Stock
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.dispatch(in.ActorID, audit.ActionProductUpdated, p.ID, changed)
	return p, nil
}

func (uc *Catalog) SetActive(ctx context.Context, actorID, id string, active bool) (*models.Product, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Active == active {
		return p, nil
	}

	p.Active = active
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.dispatch(actorID, audit.ActionProductUpdated, p.ID, map[string]any{"active": active})
	return p, nil
}

// ======================================================
// IMAGE
// ======================================================

func (uc *Catalog) UploadImage(ctx context.Context, actorID, id string, r io.Reader) (*models.Product, error) {
	if uc.storage == nil {
		return nil, httperr.ErrBusiness(httperr.CodeStorageDisabled)
	}

	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := imaging.ToWebP(r, imageMaxSide, imageQuality)
	if errors.Is(err, imaging.ErrUnsupported) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidImage)
	}
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("products/%s/%s%s", p.ID, uuid.NewString(), imaging.Extension)
	url, err := uc.storage.Put(ctx, key, imaging.ContentType, data)
	if err != nil {
		return nil, err
	}

	old := p.ImageURL
	p.ImageURL = url
	if err := uc.repo.Update(ctx, p); err != nil {
		_ = uc.storage.Delete(ctx, key)
		return nil, err
	}

	if old != "" {
		if oldKey, ok := uc.storage.KeyFromURL(old); ok {
			if err := uc.storage.Delete(ctx, oldKey); err != nil {
				uc.log.Warn("failed to delete old product image",
					zap.String("product_id", p.ID),
					zap.String("key", oldKey),
					zap.Error(err),
				)
			}
		}
	}

	uc.dispatch(actorID, audit.ActionProductImage, p.ID, map[string]any{"image_url": url})
	return p, nil
}

func (uc *Catalog) dispatch(actorID, action, productID string, meta map[string]any) {
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "product",
		EntityID: productID,
		Metadata: meta,
	})
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
