package usecasetest

import (
	"context"
	"sort"
	"strings"

	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainHair "github.com/BruksfildServices01/salon-manager/internal/domain/hairprofile"
	domainSlot "github.com/BruksfildServices01/salon-manager/internal/domain/slot"
	domainSpecialty "github.com/BruksfildServices01/salon-manager/internal/domain/specialty"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

// ======================================================
// Specialties
// ======================================================

type Specialties struct{ *Store }

func (r Specialties) Create(_ context.Context, s *models.Specialty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.Specialties {
		if strings.EqualFold(cur.Name, s.Name) {
			return domain.ErrDuplicate
		}
	}
	if s.ID == "" {
		s.ID = r.nextID("specialty")
	}
	cp := *s
	r.Specialties[s.ID] = &cp
	return nil
}

func (r Specialties) GetByID(_ context.Context, id string) (*models.Specialty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Specialties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r Specialties) GetByName(_ context.Context, name string) (*models.Specialty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.Specialties {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r Specialties) List(_ context.Context, activeOnly bool) ([]models.Specialty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Specialty
	for _, s := range r.Specialties {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r Specialties) Update(_ context.Context, s *models.Specialty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.Specialties[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.Specialties {
		if other.ID != s.ID && strings.EqualFold(other.Name, s.Name) {
			return domain.ErrDuplicate
		}
	}
	cur.Name, cur.Description, cur.Active = s.Name, s.Description, s.Active
	return nil
}

func (r Specialties) GetAssignment(_ context.Context, stylistID, specialtyID string) (*models.StylistSpecialty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.Assignments {
		if a.StylistID == stylistID && a.SpecialtyID == specialtyID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r Specialties) Assign(_ context.Context, a *models.StylistSpecialty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = r.nextID("assignment")
	} else if cur, ok := r.Assignments[a.ID]; ok && cur.Active {
		return domain.ErrDuplicate
	}
	a.Active = true
	cp := *a
	r.Assignments[a.ID] = &cp
	if s, ok := r.Specialties[a.SpecialtyID]; ok {
		s.StylistCount++
	}
	return nil
}

func (r Specialties) Unassign(_ context.Context, a *models.StylistSpecialty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.Assignments[a.ID]
	if !ok || !cur.Active {
		return nil
	}
	cur.Active = false
	if s, ok := r.Specialties[a.SpecialtyID]; ok && s.StylistCount > 0 {
		s.StylistCount--
	}
	return nil
}

func (r Specialties) ListForStylist(_ context.Context, stylistID string) ([]models.StylistSpecialty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.StylistSpecialty
	for _, a := range r.Assignments {
		if a.StylistID != stylistID || !a.Active {
			continue
		}
		cp := *a
		if s, ok := r.Specialties[a.SpecialtyID]; ok {
			cp.Specialty = *s
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Specialty.Name < out[j].Specialty.Name })
	return out, nil
}

func (r Specialties) ListStylists(_ context.Context, specialtyID string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, a := range r.Assignments {
		if a.SpecialtyID != specialtyID || !a.Active {
			continue
		}
		if u, ok := r.Users[a.StylistID]; ok && u.Active && u.Role == role.Stylist.String() {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r Specialties) Recount(context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int{}
	for id := range r.Specialties {
		counts[id] = 0
	}
	for _, a := range r.Assignments {
		u, ok := r.Users[a.StylistID]
		if a.Active && ok && u.Role == role.Stylist.String() {
			counts[a.SpecialtyID]++
		}
	}
	for id, n := range counts {
		if s, ok := r.Specialties[id]; ok {
			s.StylistCount = n
		}
	}
	return counts, nil
}

// ======================================================
// Slots
// ======================================================

type Slots struct{ *Store }

func (r Slots) Create(_ context.Context, s *models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = r.nextID("slot")
	}
	cp := *s
	r.Slots[s.ID] = &cp
	return nil
}

func (r Slots) GetByID(_ context.Context, id string) (*models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r Slots) Update(_ context.Context, s *models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Slots[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.Slots[s.ID] = &cp
	return nil
}

func (r Slots) ListByStylist(_ context.Context, stylistID string, weekday *int, activeOnly bool) ([]models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TimeSlot
	for _, s := range r.Slots {
		if s.StylistID != stylistID {
			continue
		}
		if weekday != nil && s.Weekday != *weekday {
			continue
		}
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

var (
	_ domainSpecialty.Repository = Specialties{}
	_ domainSlot.Repository      = Slots{}
	_ domainHair.Repository      = HairProfiles{}
)
