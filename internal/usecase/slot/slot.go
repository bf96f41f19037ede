package slot

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainSlot "github.com/BruksfildServices01/salon-manager/internal/domain/slot"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

// Actor é quem executa a operação.
type Actor struct {
	ID   string
	Role role.Role
}

// canManage: admin mexe em qualquer agenda, estilista só na própria.
func (a Actor) canManage(stylistID string) bool {
	if role.Can(a.Role, role.SlotsWriteAny) {
		return true
	}
	return role.Can(a.Role, role.SlotsWriteSelf) && a.ID == stylistID
}

// ======================================================
// USE CASE
// ======================================================

type Slots struct {
	repo  domainSlot.Repository
	users domainUser.Repository
	audit audit.Publisher
}

func NewSlots(repo domainSlot.Repository, users domainUser.Repository, audit audit.Publisher) *Slots {
	return &Slots{repo: repo, users: users, audit: audit}
}

// ======================================================
// CREATE
// ======================================================

type CreateSlotInput struct {
	Actor     Actor
	StylistID string
	Weekday   int
	StartTime string
	EndTime   string
}

func (uc *Slots) Create(ctx context.Context, in CreateSlotInput) (*models.TimeSlot, error) {

	// --------------------------------------------------
	// 1️⃣ Permissão + estilista
	// --------------------------------------------------
	if !in.Actor.canManage(in.StylistID) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}
	sty, err := uc.requireStylist(ctx, in.StylistID)
	if err != nil {
		return nil, err
	}
	if !sty.Active {
		// desativado não ganha agenda nova
		return nil, httperr.ErrBusiness(httperr.CodeNotAStylist)
	}

	// --------------------------------------------------
	// 2️⃣ Regras do horário
	// --------------------------------------------------
	s := models.TimeSlot{
		StylistID: in.StylistID,
		Weekday:   in.Weekday,
		StartTime: strings.TrimSpace(in.StartTime),
		EndTime:   strings.TrimSpace(in.EndTime),
		Active:    true,
	}
	if err := uc.check(ctx, s); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Persistência
	// --------------------------------------------------
	if err := uc.repo.Create(ctx, &s); err != nil {
		return nil, err
	}

	uc.dispatch(in.Actor, audit.ActionSlotCreated, &s, nil)
	return &s, nil
}

// ======================================================
// LIST
// ======================================================

func (uc *Slots) List(ctx context.Context, stylistID string, weekday *int, activeOnly bool) ([]models.TimeSlot, error) {
	if weekday != nil && (*weekday < 0 || *weekday > 6) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidWeekday)
	}
	if _, err := uc.requireStylist(ctx, stylistID); err != nil {
		return nil, err
	}
	return uc.repo.ListByStylist(ctx, stylistID, weekday, activeOnly)
}

// ======================================================
// UPDATE
// ======================================================

type UpdateSlotInput struct {
	Actor     Actor
	SlotID    string
	Weekday   *int
	StartTime *string
	EndTime   *string
}

func (uc *Slots) Update(ctx context.Context, in UpdateSlotInput) (*models.TimeSlot, error) {
	s, err := uc.get(ctx, in.Actor, in.SlotID)
	if err != nil {
		return nil, err
	}

	if in.Weekday != nil {
		s.Weekday = *in.Weekday
	}
	if in.StartTime != nil {
		s.StartTime = strings.TrimSpace(*in.StartTime)
	}
	if in.EndTime != nil {
		s.EndTime = strings.TrimSpace(*in.EndTime)
	}

	if err := uc.check(ctx, *s); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.dispatch(in.Actor, audit.ActionSlotUpdated, s, nil)
	return s, nil
}

// SetActive liga/desliga o horário. Reativar revalida sobreposição.
func (uc *Slots) SetActive(ctx context.Context, actor Actor, slotID string, active bool) (*models.TimeSlot, error) {
	s, err := uc.get(ctx, actor, slotID)
	if err != nil {
		return nil, err
	}
	if s.Active == active {
		return s, nil
	}

	s.Active = active
	if active {
		if err := uc.check(ctx, *s); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.dispatch(actor, audit.ActionSlotUpdated, s, map[string]any{"active": active})
	return s, nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *Slots) get(ctx context.Context, actor Actor, id string) (*models.TimeSlot, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !actor.canManage(s.StylistID) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return s, nil
}

func (uc *Slots) check(ctx context.Context, s models.TimeSlot) error {
	if err := domainSlot.Validate(s.Weekday, s.StartTime, s.EndTime); err != nil {
		return err
	}
	if !s.Active {
		return nil
	}

	day := s.Weekday
	existing, err := uc.repo.ListByStylist(ctx, s.StylistID, &day, true)
	if err != nil {
		return err
	}
	return domainSlot.AssertNoOverlap(s, existing)
}

func (uc *Slots) requireStylist(ctx context.Context, id string) (*models.User, error) {
	u, err := uc.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	if u.Role != role.Stylist.String() {
		return nil, httperr.ErrBusiness(httperr.CodeNotAStylist)
	}
	return u, nil
}

func (uc *Slots) dispatch(actor Actor, action string, s *models.TimeSlot, extra map[string]any) {
	meta := map[string]any{
		"stylist_id": s.StylistID,
		"weekday":    s.Weekday,
		"start_time": s.StartTime,
		"end_time":   s.EndTime,
	}
	for k, v := range extra {
		meta[k] = v
	}

	id := actor.ID
	uc.audit.Dispatch(audit.Event{
		ActorID:  &id,
		Action:   action,
		Entity:   "time_slot",
		EntityID: s.ID,
		Metadata: meta,
	})
}
