package domain

// EventKind distinguishes outbound event types.
type EventKind string

const (
	// EventReservationStatusChanged fires on every reservation transition.
	EventReservationStatusChanged EventKind = "reservation_status_changed"

	// EventOrderStatusChanged fires on every order transition.
	EventOrderStatusChanged EventKind = "order_status_changed"

	// EventTicketBecameUrgent fires once per order when the scheduler first
	// observes its ticket reclassified as urgent.
	EventTicketBecameUrgent EventKind = "ticket_became_urgent"
)

// Event is an outbound notification emitted at the moment of a state
// transition. Emission is fire-and-forget: the coordinator guarantees the
// event is published, never that a subscriber receives it.
type Event struct {
	Kind          EventKind `json:"kind"`
	ReservationID string    `json:"reservation_id,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	OldStatus     string    `json:"old_status,omitempty"`
	NewStatus     string    `json:"new_status,omitempty"`
}

// Emitter publishes outbound events. Components hold an Emitter func
// rather than the dispatcher itself; a nil Emitter is valid and drops
// everything, which keeps the stores usable standalone in tests.
type Emitter func(Event)

// Emit publishes e if the emitter is non-nil.
func (e Emitter) Emit(ev Event) {
	if e != nil {
		e(ev)
	}
}
