package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files use it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// BufferMinutes overrides the kitchen's lead time. Zero keeps the
	// default.
	BufferMinutes int `yaml:"buffer_minutes,omitempty"`

	// Menu is an optional path to a menu YAML, relative to the scenario
	// file. Empty means the built-in house menu.
	Menu string `yaml:"menu,omitempty"`

	// Setup steps establish initial state (tables, price edits) and are
	// assumed to succeed.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow is the main sequence of operations under test.
	Flow []Step `yaml:"flow"`

	// Assertions validate final state after the flow.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one operation in a scenario. Op selects the operation; the
// remaining fields are that operation's arguments.
type Step struct {
	// Op is one of: add_table, remove_table, create_reservation, confirm,
	// auto_seat, cancel, complete, place_order, advance_order, set_price,
	// advance_minutes, tick.
	Op string `yaml:"op"`

	// Ref names a reservation: bound by create_reservation, consumed by
	// confirm/auto_seat/cancel/complete/place_order.
	Ref string `yaml:"ref,omitempty"`

	// OrderRef names an order: bound by place_order, consumed by
	// advance_order and assertions.
	OrderRef string `yaml:"order_ref,omitempty"`

	// create_reservation arguments.
	Customer  string        `yaml:"customer,omitempty"`
	Phone     string        `yaml:"phone,omitempty"`
	PartySize int           `yaml:"party_size,omitempty"`
	Arrival   string        `yaml:"arrival,omitempty"`
	PreOrder  []PreOrderRef `yaml:"pre_order,omitempty"`

	// Table number for add_table/remove_table/confirm.
	Table    int `yaml:"table,omitempty"`
	Capacity int `yaml:"capacity,omitempty"`

	// Items overrides the reservation's pre-order for place_order.
	Items []PreOrderRef `yaml:"items,omitempty"`

	// To is the target status for advance_order.
	To string `yaml:"to,omitempty"`

	// set_price arguments; Price is decimal dollars.
	Item  string  `yaml:"item,omitempty"`
	Price float64 `yaml:"price,omitempty"`

	// Minutes advances the manual clock (advance_minutes).
	Minutes int `yaml:"minutes,omitempty"`

	// Expect, when set, requires the step to fail with the given error
	// code. Absent means the step must succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// PreOrderRef is a scenario-level line item.
type PreOrderRef struct {
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
	Notes    string `yaml:"notes,omitempty"`
}

// ExpectClause specifies an expected failure.
type ExpectClause struct {
	// Error is the expected domain error code, e.g. "TABLE_OCCUPIED".
	Error string `yaml:"error"`
}

// Assertion validates final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Ref / OrderRef name the reservation or order under assertion.
	Ref      string `yaml:"ref,omitempty"`
	OrderRef string `yaml:"order_ref,omitempty"`

	// Status is the expected reservation or order status.
	Status string `yaml:"status,omitempty"`

	// Table is the table number for table assertions.
	Table int `yaml:"table,omitempty"`

	// ByRef names the reservation expected to occupy the table.
	ByRef string `yaml:"by_ref,omitempty"`

	// Total is the expected order total in decimal dollars.
	Total float64 `yaml:"total,omitempty"`

	// OrderRefs is the expected queue order, head first.
	OrderRefs []string `yaml:"order_refs,omitempty"`

	// Priority / TimeRemaining describe the expected head ticket.
	Priority      string `yaml:"priority,omitempty"`
	TimeRemaining *int   `yaml:"time_remaining,omitempty"`

	// Kind and Count assert on captured events.
	Kind  string `yaml:"kind,omitempty"`
	Count int    `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertReservationStatus = "reservation_status"
	AssertTableOccupied     = "table_occupied"
	AssertTableFree         = "table_free"
	AssertOrderStatus       = "order_status"
	AssertOrderTotal        = "order_total"
	AssertQueueOrder        = "queue_order"
	AssertQueueEmpty        = "queue_empty"
	AssertNextTicket        = "next_ticket"
	AssertEventCount        = "event_count"
)

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks scenario structure before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("scenario has no flow steps")
	}
	for i, step := range s.Setup {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}
	for i, step := range s.Flow {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
	}
	for i, a := range s.Assertions {
		if !knownAssertion(a.Type) {
			return fmt.Errorf("assertions[%d]: unknown type %q", i, a.Type)
		}
	}
	return nil
}

var knownOps = map[string]bool{
	"add_table":          true,
	"remove_table":       true,
	"create_reservation": true,
	"confirm":            true,
	"auto_seat":          true,
	"cancel":             true,
	"complete":           true,
	"place_order":        true,
	"advance_order":      true,
	"set_price":          true,
	"advance_minutes":    true,
	"tick":               true,
}

func validateStep(step Step) error {
	if !knownOps[step.Op] {
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func knownAssertion(t string) bool {
	switch t {
	case AssertReservationStatus, AssertTableOccupied, AssertTableFree,
		AssertOrderStatus, AssertOrderTotal, AssertQueueOrder,
		AssertQueueEmpty, AssertNextTicket, AssertEventCount:
		return true
	}
	return false
}
