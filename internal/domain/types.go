package domain

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

// OrderStatus is the preparation state of an order.
//
// Transitions are strictly forward: pending -> preparing -> ready -> served.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
)

// orderRank maps each status to its position in the pipeline.
var orderRank = map[OrderStatus]int{
	OrderPending:   0,
	OrderPreparing: 1,
	OrderReady:     2,
	OrderServed:    3,
}

// Rank returns the pipeline position of s, or -1 for an unknown status.
func (s OrderStatus) Rank() int {
	r, ok := orderRank[s]
	if !ok {
		return -1
	}
	return r
}

// Open reports whether the order still belongs on the kitchen queue.
func (s OrderStatus) Open() bool {
	return s == OrderPending || s == OrderPreparing || s == OrderReady
}

// PriorityClass is the coarse urgency bucket of a kitchen ticket.
type PriorityClass string

const (
	PriorityMedium PriorityClass = "medium"
	PriorityHigh   PriorityClass = "high"
	PriorityUrgent PriorityClass = "urgent"
)

// Weight returns the sort weight of the class (urgent=3 > high=2 > medium=1).
func (p PriorityClass) Weight() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	}
	return 0
}

// Table is a physical table on the floor.
//
// OccupantReservationID is non-empty iff a seated reservation holds the
// table. The floor registry is the sole writer of occupancy.
type Table struct {
	Number                int    `json:"number"`
	Capacity              int    `json:"capacity"`
	OccupantReservationID string `json:"occupant_reservation_id,omitempty"`
}

// Occupied reports whether the table is bound to a reservation.
func (t Table) Occupied() bool { return t.OccupantReservationID != "" }

// PreOrderItem is one entry of a reservation's pre-order.
type PreOrderItem struct {
	MenuItemID string `json:"menu_item_id" yaml:"item"`
	Quantity   int    `json:"quantity" yaml:"quantity"`
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Reservation is a customer booking.
//
// TableNumber is non-zero iff Status is seated; the reservation store is
// the sole writer of Status and TableNumber.
type Reservation struct {
	ID               string            `json:"id"`
	Seq              int64             `json:"seq"`
	CustomerName     string            `json:"customer_name"`
	Phone            string            `json:"phone"`
	PartySize        int               `json:"party_size"`
	RequestedArrival time.Time         `json:"requested_arrival"`
	TableNumber      int               `json:"table_number,omitempty"`
	Status           ReservationStatus `json:"status"`
	PreOrder         []PreOrderItem    `json:"pre_order,omitempty"`
}

// LineItem is one priced line of a placed order.
//
// UnitPrice and Name are snapshots taken from the catalogue at placement
// time; later catalogue edits never change a placed order.
type LineItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  Money  `json:"unit_price"`
	Notes      string `json:"notes,omitempty"`
}

// Order is a placed pre-order bound 1:1 to a seated reservation.
//
// TableNumber, CustomerName, and ArrivalAt are copied from the reservation
// at placement so the kitchen projection never reaches back into the
// reservation store.
type Order struct {
	ID                   string      `json:"id"`
	Number               string      `json:"number"`
	Seq                  int64       `json:"seq"`
	ReservationID        string      `json:"reservation_id"`
	TableNumber          int         `json:"table_number"`
	CustomerName         string      `json:"customer_name"`
	ArrivalAt            time.Time   `json:"arrival_at"`
	EstimatedPrepMinutes int         `json:"estimated_prep_minutes"`
	LineItems            []LineItem  `json:"line_items"`
	Status               OrderStatus `json:"status"`
}

// Total sums quantity x unit price over the line items.
func (o Order) Total() Money {
	var total Money
	for _, li := range o.LineItems {
		total += li.UnitPrice * Money(li.Quantity)
	}
	return total
}

// Ticket is the kitchen-facing projection of an open order, enriched with
// urgency derived against the clock at snapshot time. Tickets are
// recomputed on every read and never stored.
type Ticket struct {
	OrderID              string        `json:"order_id"`
	OrderNumber          string        `json:"order_number"`
	TableNumber          int           `json:"table_number"`
	CustomerName         string        `json:"customer_name"`
	ArrivalAt            time.Time     `json:"arrival_at"`
	EstimatedPrepMinutes int           `json:"estimated_prep_minutes"`
	TimeRemaining        int           `json:"time_remaining"`
	Priority             PriorityClass `json:"priority"`
	Status               OrderStatus   `json:"status"`
	Seq                  int64         `json:"seq"`
	Items                []LineItem    `json:"items"`
}

// MenuItem is a read-only catalogue entry.
type MenuItem struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Price       Money  `json:"price" yaml:"-"`
	PrepMinutes int    `json:"prep_minutes,omitempty" yaml:"prep_minutes,omitempty"`
}

// Clock supplies the current time to components that derive urgency or
// resolve relative arrival tokens. Production code uses WallClock; tests
// use testutil.ManualClock.
type Clock interface {
	Now() time.Time
}

// WallClock is the production Clock backed by time.Now.
type WallClock struct{}

// Now implements Clock.
func (WallClock) Now() time.Time { return time.Now() }
