// Package usecasetest traz implementações em memória dos repositórios e
// serviços externos, para testes dos casos de uso.
package usecasetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/domain"
	domainCatalog "github.com/BruksfildServices01/salon-manager/internal/domain/catalog"
	domainUser "github.com/BruksfildServices01/salon-manager/internal/domain/user"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/role"
)

// Store é o "banco" compartilhado pelos repositórios em memória.
type Store struct {
	mu sync.Mutex
	n  int

	Users       map[string]*models.User
	Specialties map[string]*models.Specialty
	Assignments map[string]*models.StylistSpecialty
	Slots       map[string]*models.TimeSlot
	Hair        map[string]*models.HairProfile
	Products    map[string]*models.Product
}

func NewStore() *Store {
	return &Store{
		Users:       map[string]*models.User{},
		Specialties: map[string]*models.Specialty{},
		Assignments: map[string]*models.StylistSpecialty{},
		Slots:       map[string]*models.TimeSlot{},
		Hair:        map[string]*models.HairProfile{},
		Products:    map[string]*models.Product{},
	}
}

func (s *Store) nextID(prefix string) string {
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

// AddUser insere um usuário pronto (atalho para montar cenários).
func (s *Store) AddUser(u models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = s.nextID("user")
	}
	s.Users[u.ID] = &u
	return &u
}

// ======================================================
// Users
// ======================================================

type Users struct{ *Store }

func (r Users) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = r.nextID("user")
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	r.Users[u.ID] = &cp
	return nil
}

func (r Users) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r Users) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r Users) GetByExternalUID(_ context.Context, uid string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ExternalUID == uid })
}

func (r Users) List(_ context.Context, f domainUser.Filter) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.User
	q := strings.ToLower(f.Query)
	for _, u := range r.Users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(u.Email, q) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	total := int64(len(out))
	_, limit, offset := domain.Page(f.Page, f.Limit)
	if offset >= len(out) {
		return []models.User{}, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r Users) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.Users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name, cur.Phone, cur.Role = u.Name, u.Phone, u.Role
	cur.UpdatedAt = time.Now()
	if u.Role != role.Stylist.String() {
		for _, a := range r.Assignments {
			if a.StylistID != u.ID || !a.Active {
				continue
			}
			a.Active = false
			if s, ok := r.Specialties[a.SpecialtyID]; ok && s.StylistCount > 0 {
				s.StylistCount--
			}
		}
	}
	return nil
}

func (r Users) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.Users[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Active = active
	return nil
}

func (r Users) AddLoyaltyPoints(_ context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.Users[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if cur.LoyaltyPoints+delta < 0 {
		return 0, domainUser.ErrInsufficientPoints
	}
	cur.LoyaltyPoints += delta
	return cur.LoyaltyPoints, nil
}

func (r Users) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.Users[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.PasswordHash = hash
	return nil
}

func (r Users) TouchSignIn(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.Users[id]; ok {
		cur.LastSignInAt = &at
	}
	return nil
}

// ======================================================
// Products
// ======================================================

type Products struct{ *Store }

func (r Products) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = r.nextID("product")
	}
	cp := *p
	r.Products[p.ID] = &cp
	return nil
}

func (r Products) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r Products) List(_ context.Context, f domainCatalog.Filter) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, p := range r.Products {
		if f.Category != "" && p.Category != strings.ToLower(f.Category) {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r Products) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.Products[p.ID] = &cp
	return nil
}

// ======================================================
// Hair profiles
// ======================================================

type HairProfiles struct{ *Store }

func (r HairProfiles) GetByClientID(_ context.Context, clientID string) (*models.HairProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Hair[clientID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r HairProfiles) Upsert(_ context.Context, p *models.HairProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.Hair[p.ClientID]; ok {
		p.ID = cur.ID
		p.PhotoURL = cur.PhotoURL
	} else if p.ID == "" {
		p.ID = r.nextID("hair")
	}
	p.UpdatedAt = time.Now()
	cp := *p
	r.Hair[p.ClientID] = &cp
	return nil
}

func (r HairProfiles) SetPhotoURL(_ context.Context, clientID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Hair[clientID]
	if !ok {
		return domain.ErrNotFound
	}
	p.PhotoURL = url
	return nil
}

// ======================================================
// External services
// ======================================================

// Audit guarda os eventos publicados.
type Audit struct {
	mu     sync.Mutex
	Events []audit.Event
}

func (a *Audit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Events = append(a.Events, ev)
}

func (a *Audit) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.Events))
	for _, ev := range a.Events {
		out = append(out, ev.Action)
	}
	return out
}

// Provider é um provedor de identidade em memória. Senhas são guardadas
// com o prefixo "hash:" para os testes.
type Provider struct {
	mu       sync.Mutex
	n        int
	Disabled map[string]bool
	Deleted  []string
	Revoked  []string
	FailWith error
}

func (p *Provider) Name() string { return "memory" }

func (p *Provider) CreateAccount(_ context.Context, in identity.AccountInput) (identity.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailWith != nil {
		return identity.Account{}, p.FailWith
	}
	p.n++
	hash, _ := p.HashPassword(in.Password)
	return identity.Account{UID: fmt.Sprintf("ext-%d", p.n), PasswordHash: hash}, nil
}

func (p *Provider) DeleteAccount(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Deleted = append(p.Deleted, uid)
	return nil
}

func (p *Provider) SetDisabled(_ context.Context, uid string, disabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Disabled == nil {
		p.Disabled = map[string]bool{}
	}
	p.Disabled[uid] = disabled
	return nil
}

func (p *Provider) RevokeTokens(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Revoked = append(p.Revoked, uid)
	return nil
}

func (p *Provider) HashPassword(password string) (string, error) {
	return "hash:" + password, nil
}

func (p *Provider) ComparePassword(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// Sessions é um session store em memória.
type Sessions struct {
	mu   sync.Mutex
	n    int
	Live map[string]string
}

func (s *Sessions) Create(_ context.Context, userID string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Live == nil {
		s.Live = map[string]string{}
	}
	s.n++
	id := fmt.Sprintf("sess-%d", s.n)
	s.Live[id] = userID
	return id, nil
}

func (s *Sessions) Revoke(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Live, id)
	return nil
}

func (s *Sessions) RevokeAll(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, owner := range s.Live {
		if owner == userID {
			delete(s.Live, id)
		}
	}
	return nil
}

func (s *Sessions) Count(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, owner := range s.Live {
		if owner == userID {
			n++
		}
	}
	return n
}

// Storage guarda objetos em memória.
type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Removed []string
}

func (s *Storage) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Objects == nil {
		s.Objects = map[string][]byte{}
	}
	s.Objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	s.Removed = append(s.Removed, key)
	return nil
}

func (s *Storage) KeyFromURL(url string) (string, bool) {
	const base = "https://cdn.test/"
	if !strings.HasPrefix(url, base) {
		return "", false
	}
	return strings.TrimPrefix(url, base), true
}

func AcceptAllDomains(string) bool { return true }

var (
	_ domainUser.Repository    = Users{}
	_ domainCatalog.Repository = Products{}
	_ identity.Provider        = (*Provider)(nil)
	_ audit.Publisher          = (*Audit)(nil)
)
