// Package reserve implements the reservation store and its lifecycle
// state machine:
//
//	pending --confirm(table)--> seated      [registry allocate must succeed]
//	pending --cancel()--------> cancelled
//	seated  --complete()------> completed   [order, if any, must be served]
//	seated  --cancel()--------> cancelled   [releases table]
//
// The store is the sole writer of a reservation's status and table
// binding. Table occupancy itself is owned by the floor registry; the
// store calls into it rather than mutating tables, so occupancy has a
// single source of truth.
//
// Lock order: the store's own mutex is always acquired before any
// registry call. The registry never calls back into the store, so a
// concurrent Confirm and RemoveTable cannot deadlock.
package reserve

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tablekeep/tablekeep/internal/domain"
)

// TableAllocator is the slice of the floor registry the store depends on.
type TableAllocator interface {
	Allocate(number int, reservationID string) error
	Release(number int) error
	ListAvailable(minCapacity int) []domain.Table
}

// OrderLookup resolves the order associated with a reservation, if one
// was placed. Satisfied by orders.Pipeline; wired after construction
// because the pipeline in turn reads reservations from this store.
type OrderLookup interface {
	OrderForReservation(reservationID string) (domain.Order, bool)
}

// Store owns reservation records.
type Store struct {
	tables TableAllocator
	clock  domain.Clock
	seq    *domain.Sequence
	emit   domain.Emitter

	mu           sync.RWMutex
	reservations map[string]*domain.Reservation
	orders       OrderLookup
}

// NewStore creates an empty reservation store. emit may be nil.
func NewStore(tables TableAllocator, clock domain.Clock, seq *domain.Sequence, emit domain.Emitter) *Store {
	return &Store{
		tables:       tables,
		clock:        clock,
		seq:          seq,
		emit:         emit,
		reservations: make(map[string]*domain.Reservation),
	}
}

// SetOrderLookup wires the order pipeline in after construction.
// Must be called before Complete is used on reservations with orders.
func (s *Store) SetOrderLookup(orders OrderLookup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

// CreateInput carries customer intake for a new reservation.
// Arrival is a relative token ("30min", "today-7pm", ...) or an RFC 3339
// timestamp; ArrivalAt, when non-zero, takes precedence.
type CreateInput struct {
	CustomerName string
	Phone        string
	PartySize    int
	Arrival      string
	ArrivalAt    time.Time
	PreOrder     []domain.PreOrderItem
}

// Create validates intake and records a new pending reservation.
// Fails with INVALID_RESERVATION on a party size below 1, a blank
// customer name, or an unrecognized arrival value.
func (s *Store) Create(in CreateInput) (domain.Reservation, error) {
	if in.PartySize < 1 {
		return domain.Reservation{}, domain.NewInvalidReservation("party size must be at least 1")
	}
	name := domain.CanonicalName(in.CustomerName)
	if name == "" {
		return domain.Reservation{}, domain.NewInvalidReservation("customer name is required")
	}
	for _, item := range in.PreOrder {
		if item.Quantity < 1 {
			return domain.Reservation{}, domain.NewInvalidReservation("pre-order quantity must be at least 1")
		}
	}

	arrival := in.ArrivalAt
	if arrival.IsZero() {
		resolved, err := domain.ResolveArrival(in.Arrival, s.clock.Now())
		if err != nil {
			return domain.Reservation{}, err
		}
		arrival = resolved
	}

	res := &domain.Reservation{
		ID:               uuid.NewString(),
		Seq:              s.seq.Next(),
		CustomerName:     name,
		Phone:            in.Phone,
		PartySize:        in.PartySize,
		RequestedArrival: arrival,
		Status:           domain.ReservationPending,
		PreOrder:         append([]domain.PreOrderItem(nil), in.PreOrder...),
	}

	s.mu.Lock()
	s.reservations[res.ID] = res
	s.mu.Unlock()

	return *res, nil
}

// Confirm seats a pending reservation at the given table.
// Propagates TABLE_NOT_FOUND / TABLE_OCCUPIED from the registry, in which
// case the reservation stays pending.
func (s *Store) Confirm(id string, tableNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return domain.NewReservationNotFound(id)
	}
	if res.Status != domain.ReservationPending {
		return domain.NewInvalidTransition("only a pending reservation can be confirmed")
	}
	if err := s.tables.Allocate(tableNumber, id); err != nil {
		return err
	}
	s.transition(res, domain.ReservationSeated, tableNumber)
	return nil
}

// Cancel moves a pending or seated reservation to cancelled, releasing
// the table first when seated. Cancelling a terminal reservation fails
// with INVALID_TRANSITION; state is untouched, so a double cancel is safe.
func (s *Store) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return domain.NewReservationNotFound(id)
	}
	if res.Status.Terminal() {
		return domain.NewInvalidTransition("reservation is already " + string(res.Status))
	}
	if res.Status == domain.ReservationSeated {
		if err := s.tables.Release(res.TableNumber); err != nil {
			return err
		}
	}
	s.transition(res, domain.ReservationCancelled, 0)
	return nil
}

// Complete finishes a seated reservation. If an order exists for it, the
// order must already be served (ORDER_NOT_READY otherwise). Releases the
// table on success.
func (s *Store) Complete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return domain.NewReservationNotFound(id)
	}
	if res.Status != domain.ReservationSeated {
		return domain.NewInvalidTransition("only a seated reservation can be completed")
	}
	if s.orders != nil {
		if order, exists := s.orders.OrderForReservation(id); exists && order.Status != domain.OrderServed {
			return domain.NewOrderNotReady(order.ID)
		}
	}
	if err := s.tables.Release(res.TableNumber); err != nil {
		return err
	}
	s.transition(res, domain.ReservationCompleted, 0)
	return nil
}

// transition applies the status change and emits the change event.
// Callers hold s.mu.
func (s *Store) transition(res *domain.Reservation, to domain.ReservationStatus, tableNumber int) {
	from := res.Status
	res.Status = to
	res.TableNumber = tableNumber
	s.emit.Emit(domain.Event{
		Kind:          domain.EventReservationStatusChanged,
		ReservationID: res.ID,
		OldStatus:     string(from),
		NewStatus:     string(to),
	})
}

// Get returns a copy of one reservation.
func (s *Store) Get(id string) (domain.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.reservations[id]
	if !ok {
		return domain.Reservation{}, false
	}
	return cloneReservation(res), true
}

// List returns copies of all reservations in creation order.
// Read projection only.
func (s *Store) List() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Reservation, 0, len(s.reservations))
	for _, res := range s.reservations {
		out = append(out, cloneReservation(res))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func cloneReservation(res *domain.Reservation) domain.Reservation {
	out := *res
	out.PreOrder = append([]domain.PreOrderItem(nil), res.PreOrder...)
	return out
}
