// Package orders implements the order pipeline: deriving a priced order
// from a seated reservation's pre-order and advancing it through
// preparation.
//
// Prices and item names are snapshotted from the catalogue at placement
// (append-only pricing): a later catalogue edit never changes a placed
// order. Transitions are strictly forward - pending -> preparing ->
// ready -> served - one stage at a time.
package orders

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tablekeep/tablekeep/internal/domain"
)

// Catalogue is the read-only menu lookup the pipeline consumes.
type Catalogue interface {
	GetMenuItem(id string) (domain.MenuItem, bool)
}

// ReservationLookup resolves reservations at placement time.
// Satisfied by reserve.Store.
type ReservationLookup interface {
	Get(id string) (domain.Reservation, bool)
}

// Pipeline owns order records and is the sole writer of their status.
//
// Lock order: reservation reads happen before the pipeline's own mutex is
// taken, matching the coordinator-wide order (reservation -> order ->
// table) so the store's Complete guard can read orders without deadlock.
type Pipeline struct {
	reservations ReservationLookup
	catalogue    Catalogue
	seq          *domain.Sequence
	emit         domain.Emitter

	mu            sync.RWMutex
	orders        map[string]*domain.Order
	byReservation map[string]string
	nextNumber    int
}

// NewPipeline creates an empty pipeline. emit may be nil.
func NewPipeline(reservations ReservationLookup, catalogue Catalogue, seq *domain.Sequence, emit domain.Emitter) *Pipeline {
	return &Pipeline{
		reservations:  reservations,
		catalogue:     catalogue,
		seq:           seq,
		emit:          emit,
		orders:        make(map[string]*domain.Order),
		byReservation: make(map[string]string),
	}
}

// PlaceOrder derives a pending order from the given line items for a
// seated reservation. Each reservation carries at most one order; a
// second placement fails with INVALID_TRANSITION.
func (p *Pipeline) PlaceOrder(reservationID string, items []domain.PreOrderItem) (domain.Order, error) {
	res, ok := p.reservations.Get(reservationID)
	if !ok {
		return domain.Order{}, domain.NewReservationNotFound(reservationID)
	}
	if res.Status != domain.ReservationSeated {
		return domain.Order{}, domain.NewInvalidTransition("orders require a seated reservation")
	}
	if len(items) == 0 {
		return domain.Order{}, domain.NewEmptyOrder(reservationID)
	}

	lines := make([]domain.LineItem, 0, len(items))
	prep := 0
	for _, item := range items {
		mi, ok := p.catalogue.GetMenuItem(item.MenuItemID)
		if !ok {
			return domain.Order{}, domain.NewUnknownMenuItem(item.MenuItemID)
		}
		if item.Quantity < 1 {
			return domain.Order{}, domain.NewEmptyOrder(reservationID)
		}
		lines = append(lines, domain.LineItem{
			MenuItemID: mi.ID,
			Name:       mi.Name,
			Quantity:   item.Quantity,
			UnitPrice:  mi.Price,
			Notes:      item.Notes,
		})
		// The estimate is the slowest item, not the sum: the kitchen
		// fires a table's dishes in parallel.
		if mi.PrepMinutes > prep {
			prep = mi.PrepMinutes
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byReservation[reservationID]; exists {
		return domain.Order{}, domain.NewInvalidTransition("reservation already has an order")
	}

	p.nextNumber++
	order := &domain.Order{
		ID:                   uuid.NewString(),
		Number:               fmt.Sprintf("ORD-%03d", p.nextNumber),
		Seq:                  p.seq.Next(),
		ReservationID:        reservationID,
		TableNumber:          res.TableNumber,
		CustomerName:         res.CustomerName,
		ArrivalAt:            res.RequestedArrival,
		EstimatedPrepMinutes: prep,
		LineItems:            lines,
		Status:               domain.OrderPending,
	}
	p.orders[order.ID] = order
	p.byReservation[reservationID] = order.ID

	return cloneOrder(order), nil
}

// Advance moves an order to the next pipeline stage. The target must be
// exactly one stage forward; skips and regressions fail with
// INVALID_TRANSITION. Emits OrderStatusChanged on success.
func (p *Pipeline) Advance(orderID string, target domain.OrderStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	order, ok := p.orders[orderID]
	if !ok {
		return domain.NewInvalidTransition("no such order " + orderID)
	}
	targetRank := target.Rank()
	if targetRank < 0 {
		return domain.NewInvalidTransition(fmt.Sprintf("unknown order status %q", target))
	}
	if targetRank != order.Status.Rank()+1 {
		return domain.NewInvalidTransition(
			fmt.Sprintf("cannot advance order from %s to %s", order.Status, target))
	}

	from := order.Status
	order.Status = target
	p.emit.Emit(domain.Event{
		Kind:      domain.EventOrderStatusChanged,
		OrderID:   order.ID,
		OldStatus: string(from),
		NewStatus: string(target),
	})
	return nil
}

// ComputeTotal sums quantity x snapshotted unit price over the order's
// line items. Pure read; no side effects.
func (p *Pipeline) ComputeTotal(orderID string) (domain.Money, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	order, ok := p.orders[orderID]
	if !ok {
		return 0, domain.NewInvalidTransition("no such order " + orderID)
	}
	return order.Total(), nil
}

// Get returns a copy of one order.
func (p *Pipeline) Get(orderID string) (domain.Order, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	order, ok := p.orders[orderID]
	if !ok {
		return domain.Order{}, false
	}
	return cloneOrder(order), true
}

// OrderForReservation returns a copy of the reservation's order, if one
// was placed. Satisfies reserve.OrderLookup.
func (p *Pipeline) OrderForReservation(reservationID string) (domain.Order, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	id, ok := p.byReservation[reservationID]
	if !ok {
		return domain.Order{}, false
	}
	return cloneOrder(p.orders[id]), true
}

// OpenOrders returns copies of all orders still on the kitchen's plate
// (pending, preparing, or ready), in creation order. The scheduler
// consumes this as a consistent snapshot: each order's status is read
// under the pipeline's lock, so a concurrent Advance is either fully
// visible or not at all.
func (p *Pipeline) OpenOrders() []domain.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.Order, 0, len(p.orders))
	for _, order := range p.orders {
		if order.Status.Open() {
			out = append(out, cloneOrder(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// List returns copies of every order in creation order, served included.
// Read projection only.
func (p *Pipeline) List() []domain.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.Order, 0, len(p.orders))
	for _, order := range p.orders {
		out = append(out, cloneOrder(order))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func cloneOrder(order *domain.Order) domain.Order {
	out := *order
	out.LineItems = append([]domain.LineItem(nil), order.LineItems...)
	return out
}
