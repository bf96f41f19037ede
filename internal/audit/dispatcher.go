package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Ações registradas na trilha de auditoria.
const (
	ActionUserRegistered    = "user_registered"
	ActionUserCreated       = "user_created"
	ActionUserUpdated       = "user_updated"
	ActionUserDeactivated   = "user_deactivated"
	ActionUserReactivated   = "user_reactivated"
	ActionLoyaltyAdded      = "loyalty_points_added"
	ActionLoyaltyRedeemed   = "loyalty_points_redeemed"
	ActionLoginSucceeded    = "login_succeeded"
	ActionLoginFailed       = "login_failed"
	ActionLogout            = "logout"
	ActionPasswordChanged   = "password_changed"
	ActionSpecialtyCreated  = "specialty_created"
	ActionSpecialtyUpdated  = "specialty_updated"
	ActionSpecialtyAssigned = "specialty_assigned"
	ActionSpecialtyRemoved  = "specialty_unassigned"
	ActionSpecialtyRecount  = "specialty_recount"
	ActionSlotCreated       = "slot_created"
	ActionSlotUpdated       = "slot_updated"
	ActionHairProfileSaved  = "hair_profile_saved"
	ActionProductCreated    = "product_created"
	ActionProductUpdated    = "product_updated"
	ActionProductImage      = "product_image_uploaded"
)

type Event struct {
	ActorID  *string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Publisher é o que os casos de uso enxergam do dispatcher.
type Publisher interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	// mu protege closed: depois do Close nenhum envio toca a fila
	mu     sync.RWMutex
	closed bool

	wg sync.WaitGroup
}

func NewDispatcher(sink Sink, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia: descarta o evento, a API nunca falha por auditoria
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drena a fila e aguarda o worker terminar.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Nop descarta todos os eventos.
type Nop struct{}

func (Nop) Dispatch(Event) {}
