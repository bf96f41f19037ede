package hairprofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainHair "github.com/BruksfildServices01/salon-manager/internal/domain/hairprofile"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/imaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
	"github.com/BruksfildServices01/salon-manager/internal/storage"
)

const (
	photoMaxSide = 1080
	photoQuality = 80
)

type Actor struct {
	ID   string
	Role role.Role
}

func (a Actor) canRead(clientID string) bool {
	if role.Can(a.Role, role.HairProfilesRead) {
		return true
	}
	return role.Can(a.Role, role.HairProfileSelf) && a.ID == clientID
}

func (a Actor) canWrite(clientID string) bool {
	if role.Can(a.Role, role.HairProfileWrite) {
		return true
	}
	return role.Can(a.Role, role.HairProfileSelf) && a.ID == clientID
}

// ======================================================
// USE CASE
// ======================================================

type HairProfiles struct {
	repo    domainHair.Repository
	users   domainUser.Repository
	storage storage.MediaStore
	audit   audit.Publisher
	log     *zap.Logger
}

// NewHairProfiles recebe storage nil quando o upload não está configurado.
func NewHairProfiles(
	repo domainHair.Repository,
	users domainUser.Repository,
	storage storage.MediaStore,
	audit audit.Publisher,
	log *zap.Logger,
) *HairProfiles {
	return &HairProfiles{
		repo:    repo,
		users:   users,
		storage: storage,
		audit:   audit,
		log:     log,
	}
}

// ======================================================
// GET
// ======================================================

func (uc *HairProfiles) Get(ctx context.Context, actor Actor, clientID string) (*models.HairProfile, error) {
	if !actor.canRead(clientID) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	p, err := uc.repo.GetByClientID(ctx, clientID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeHairProfileNotFound)
	}
	return p, err
}

// ======================================================
// UPSERT
// ======================================================

type UpsertInput struct {
	Actor          Actor
	ClientID       string
	HairType       string
	Length         string
	Color          string
	ScalpCondition string
	Allergies      string
	Notes          string
	Attributes     map[string]string
}

func (uc *HairProfiles) Upsert(ctx context.Context, in UpsertInput) (*models.HairProfile, error) {

	// --------------------------------------------------
	// 1️⃣ Permissão + cliente
	// --------------------------------------------------
	if !in.Actor.canWrite(in.ClientID) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}
	if err := uc.requireClient(ctx, in.ClientID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Atributos livres
	// --------------------------------------------------
	attrs := ""
	if len(in.Attributes) > 0 {
		clean := make(map[string]string, len(in.Attributes))
		for k, v := range in.Attributes {
			if k = strings.TrimSpace(k); k != "" {
				clean[k] = strings.TrimSpace(v)
			}
		}
		raw, err := json.Marshal(clean)
		if err != nil {
			return nil, fmt.Errorf("encode attributes: %w", err)
		}
		attrs = string(raw)
	}

	// --------------------------------------------------
	// 3️⃣ Persistência
	// --------------------------------------------------
	p := &models.HairProfile{
		ClientID:       in.ClientID,
		HairType:       strings.TrimSpace(in.HairType),
		Length:         strings.TrimSpace(in.Length),
		Color:          strings.TrimSpace(in.Color),
		ScalpCondition: strings.TrimSpace(in.ScalpCondition),
		Allergies:      strings.TrimSpace(in.Allergies),
		Notes:          strings.TrimSpace(in.Notes),
		Attributes:     attrs,
	}
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	uc.dispatch(in.Actor, p.ClientID, nil)
	return p, nil
}

// ======================================================
// PHOTO
// ======================================================

func (uc *HairProfiles) UploadPhoto(ctx context.Context, actor Actor, clientID string, r io.Reader) (*models.HairProfile, error) {
	if uc.storage == nil {
		return nil, httperr.ErrBusiness(httperr.CodeStorageDisabled)
	}
	if !actor.canWrite(clientID) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	p, err := uc.repo.GetByClientID(ctx, clientID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeHairProfileNotFound)
	}
	if err != nil {
		return nil, err
	}

	data, err := imaging.ToWebP(r, photoMaxSide, photoQuality)
	if errors.Is(err, imaging.ErrUnsupported) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidImage)
	}
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("hair-profiles/%s/%s%s", clientID, uuid.NewString(), imaging.Extension)
	url, err := uc.storage.Put(ctx, key, imaging.ContentType, data)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SetPhotoURL(ctx, clientID, url); err != nil {
		_ = uc.storage.Delete(ctx, key)
		return nil, err
	}

	removeOld(ctx, uc.storage, uc.log, p.PhotoURL)
	p.PhotoURL = url

	uc.dispatch(actor, clientID, map[string]any{"photo_url": url})
	return p, nil
}

// removeOld apaga o objeto anterior; falha aqui só gera log.
func removeOld(ctx context.Context, store storage.MediaStore, log *zap.Logger, url string) {
	if url == "" {
		return
	}
	key, ok := store.KeyFromURL(url)
	if !ok {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		log.Warn("failed to delete old object", zap.String("key", key), zap.Error(err))
	}
}

func (uc *HairProfiles) requireClient(ctx context.Context, id string) error {
	u, err := uc.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return err
	}
	if u.Role != role.Client.String() {
		return httperr.ErrBusiness(httperr.CodeNotAClient)
	}
	return nil
}

func (uc *HairProfiles) dispatch(actor Actor, clientID string, meta map[string]any) {
	id := actor.ID
	uc.audit.Dispatch(audit.Event{
		ActorID:  &id,
		Action:   audit.ActionHairProfileSaved,
		Entity:   "hair_profile",
		EntityID: clientID,
		Metadata: meta,
	})
}
