// Package house wires the coordinator together: one floor registry, one
// reservation store, one order pipeline, and one kitchen scheduler
// sharing a clock, a logical sequence, and an event dispatcher.
//
// Coordinator methods are the inbound boundary contract; the List*
// methods are the pure read projections. Reporting and UI collaborators
// read snapshots and subscribe to events - they never mutate the stores
// directly.
package house

import (
	"github.com/tablekeep/tablekeep/internal/domain"
	"github.com/tablekeep/tablekeep/internal/floor"
	"github.com/tablekeep/tablekeep/internal/kitchen"
	"github.com/tablekeep/tablekeep/internal/menu"
	"github.com/tablekeep/tablekeep/internal/orders"
	"github.com/tablekeep/tablekeep/internal/reserve"
)

// Config holds coordinator construction options.
type Config struct {
	// BufferMinutes is the kitchen's lead time before a guest's arrival.
	// Zero means kitchen.DefaultBufferMinutes.
	BufferMinutes int

	// Clock defaults to the wall clock; tests inject a manual one.
	Clock domain.Clock

	// Picker is the auto-seat policy. Defaults to reserve.SmallestFit.
	Picker reserve.Picker

	// SyncEvents delivers events inline on the publishing goroutine
	// instead of through the dispatch buffer. Test harness use only;
	// subscribers must not call back into the coordinator.
	SyncEvents bool
}

// Coordinator is the assembled front-of-house core.
type Coordinator struct {
	clock      domain.Clock
	picker     reserve.Picker
	dispatcher *dispatcher

	Menu         *menu.Catalogue
	Tables       *floor.Registry
	Reservations *reserve.Store
	Orders       *orders.Pipeline
	Kitchen      *kitchen.Scheduler
}

// New assembles a coordinator over the given catalogue.
func New(catalogue *menu.Catalogue, cfg Config) *Coordinator {
	clock := cfg.Clock
	if clock == nil {
		clock = domain.WallClock{}
	}
	picker := cfg.Picker
	if picker == nil {
		picker = reserve.SmallestFit{}
	}

	d := newDispatcher(cfg.SyncEvents)
	seq := domain.NewSequence()
	emit := domain.Emitter(d.publish)

	tables := floor.NewRegistry()
	reservations := reserve.NewStore(tables, clock, seq, emit)
	pipeline := orders.NewPipeline(reservations, catalogue, seq, emit)
	reservations.SetOrderLookup(pipeline)
	scheduler := kitchen.NewScheduler(pipeline, clock, kitchen.Config{BufferMinutes: cfg.BufferMinutes}, emit)

	return &Coordinator{
		clock:        clock,
		picker:       picker,
		dispatcher:   d,
		Menu:         catalogue,
		Tables:       tables,
		Reservations: reservations,
		Orders:       pipeline,
		Kitchen:      scheduler,
	}
}

// Subscribe registers an event callback. Delivery is fire-and-forget on
// a dedicated goroutine; subscribers must not call back into mutating
// coordinator methods from the callback if they need ordering guarantees.
func (c *Coordinator) Subscribe(fn func(domain.Event)) {
	c.dispatcher.subscribe(fn)
}

// Close stops event dispatch. The stores remain readable.
func (c *Coordinator) Close() {
	c.dispatcher.close()
}

// CreateReservation records a new pending reservation.
func (c *Coordinator) CreateReservation(in reserve.CreateInput) (domain.Reservation, error) {
	return c.Reservations.Create(in)
}

// ConfirmReservation seats a reservation at an explicit table.
func (c *Coordinator) ConfirmReservation(id string, tableNumber int) error {
	return c.Reservations.Confirm(id, tableNumber)
}

// AutoSeatReservation seats a reservation at a table chosen by the
// configured picker policy.
func (c *Coordinator) AutoSeatReservation(id string) (int, error) {
	return c.Reservations.AutoSeat(id, c.picker)
}

// CancelReservation cancels a pending or seated reservation.
func (c *Coordinator) CancelReservation(id string) error {
	return c.Reservations.Cancel(id)
}

// CompleteReservation finishes a seated reservation whose order, if any,
// has been served.
func (c *Coordinator) CompleteReservation(id string) error {
	return c.Reservations.Complete(id)
}

// PlaceOrder places an order with explicit line items.
func (c *Coordinator) PlaceOrder(reservationID string, items []domain.PreOrderItem) (domain.Order, error) {
	return c.Orders.PlaceOrder(reservationID, items)
}

// PlacePreOrder places the order a reservation carried from intake.
func (c *Coordinator) PlacePreOrder(reservationID string) (domain.Order, error) {
	res, ok := c.Reservations.Get(reservationID)
	if !ok {
		return domain.Order{}, domain.NewReservationNotFound(reservationID)
	}
	return c.Orders.PlaceOrder(reservationID, res.PreOrder)
}

// AdvanceOrderStatus moves an order one stage forward.
func (c *Coordinator) AdvanceOrderStatus(orderID string, target domain.OrderStatus) error {
	return c.Orders.Advance(orderID, target)
}

// AddTable registers a new table.
func (c *Coordinator) AddTable(number, capacity int) error {
	return c.Tables.AddTable(number, capacity)
}

// RemoveTable removes an unoccupied table.
func (c *Coordinator) RemoveTable(number int) error {
	return c.Tables.RemoveTable(number)
}

// ListReservations returns all reservations in creation order.
func (c *Coordinator) ListReservations() []domain.Reservation {
	return c.Reservations.List()
}

// ListTables returns all tables by ascending number.
func (c *Coordinator) ListTables() []domain.Table {
	return c.Tables.List()
}

// ListOpenTickets returns the kitchen queue in priority order, derived
// against the clock at call time.
func (c *Coordinator) ListOpenTickets() []domain.Ticket {
	return c.Kitchen.Snapshot()
}

// NextTicket returns the head of the kitchen queue.
func (c *Coordinator) NextTicket() (domain.Ticket, error) {
	return c.Kitchen.NextTicket()
}

// Tick pushes a clock tick through the scheduler, emitting urgency
// events for tickets that crossed into urgent.
func (c *Coordinator) Tick() {
	c.Kitchen.Tick()
}
