package harness

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/tablekeep/tablekeep/internal/domain"
	"github.com/tablekeep/tablekeep/internal/house"
	"github.com/tablekeep/tablekeep/internal/menu"
	"github.com/tablekeep/tablekeep/internal/reserve"
	"github.com/tablekeep/tablekeep/internal/testutil"
)

// Result is the outcome of executing a scenario.
type Result struct {
	Scenario *Scenario

	// Coordinator holds the final state for assertions and golden output.
	Coordinator *house.Coordinator

	// Clock is the manual clock the run used.
	Clock *testutil.ManualClock

	// Reservations maps scenario refs to reservation ids; Orders maps
	// order refs to order ids.
	Reservations map[string]string
	Orders       map[string]string

	// Events are all events captured during the run, in emission order.
	Events []domain.Event
}

// Run executes a scenario from a fresh coordinator on a manual clock.
// Execution stops at the first step whose outcome differs from its
// expectation or that leaves the stores in an invariant-violating state.
//
// baseDir resolves the scenario's relative menu path; pass the scenario
// file's directory, or "" when the scenario carries no menu.
func Run(scenario *Scenario, baseDir string) (*Result, error) {
	catalogue := menu.Default()
	if scenario.Menu != "" {
		loaded, err := menu.Load(filepath.Join(baseDir, scenario.Menu))
		if err != nil {
			return nil, err
		}
		catalogue = loaded
	}

	clock := testutil.NewManualClock(time.Time{})
	result := &Result{
		Scenario:     scenario,
		Clock:        clock,
		Reservations: make(map[string]string),
		Orders:       make(map[string]string),
	}

	coord := house.New(catalogue, house.Config{
		BufferMinutes: scenario.BufferMinutes,
		Clock:         clock,
		Picker:        reserve.SmallestFit{},
		SyncEvents:    true,
	})
	result.Coordinator = coord
	coord.Subscribe(func(ev domain.Event) {
		result.Events = append(result.Events, ev)
	})

	for i, step := range scenario.Setup {
		if err := result.runStep(step); err != nil {
			return nil, fmt.Errorf("setup[%d] %s: %w", i, step.Op, err)
		}
	}
	for i, step := range scenario.Flow {
		if err := result.runStep(step); err != nil {
			return nil, fmt.Errorf("flow[%d] %s: %w", i, step.Op, err)
		}
		if err := CheckInvariants(coord); err != nil {
			return nil, fmt.Errorf("flow[%d] %s: %w", i, step.Op, err)
		}
	}
	return result, nil
}

// runStep executes one step and reconciles its outcome with the step's
// expectation.
func (r *Result) runStep(step Step) error {
	err := r.execute(step)

	if step.Expect == nil {
		if err != nil {
			return fmt.Errorf("unexpected failure: %w", err)
		}
		return nil
	}
	if err == nil {
		return fmt.Errorf("expected error %s, step succeeded", step.Expect.Error)
	}
	if code := domain.CodeOf(err); string(code) != step.Expect.Error {
		return fmt.Errorf("expected error %s, got %w", step.Expect.Error, err)
	}
	return nil
}

func (r *Result) execute(step Step) error {
	coord := r.Coordinator
	switch step.Op {
	case "add_table":
		return coord.AddTable(step.Table, step.Capacity)

	case "remove_table":
		return coord.RemoveTable(step.Table)

	case "create_reservation":
		res, err := coord.CreateReservation(reserve.CreateInput{
			CustomerName: step.Customer,
			Phone:        step.Phone,
			PartySize:    step.PartySize,
			Arrival:      step.Arrival,
			PreOrder:     toPreOrder(step.PreOrder),
		})
		if err != nil {
			return err
		}
		if step.Ref != "" {
			r.Reservations[step.Ref] = res.ID
		}
		return nil

	case "confirm":
		id, err := r.reservationID(step.Ref)
		if err != nil {
			return err
		}
		return coord.ConfirmReservation(id, step.Table)

	case "auto_seat":
		id, err := r.reservationID(step.Ref)
		if err != nil {
			return err
		}
		_, err = coord.AutoSeatReservation(id)
		return err

	case "cancel":
		id, err := r.reservationID(step.Ref)
		if err != nil {
			return err
		}
		return coord.CancelReservation(id)

	case "complete":
		id, err := r.reservationID(step.Ref)
		if err != nil {
			return err
		}
		return coord.CompleteReservation(id)

	case "place_order":
		id, err := r.reservationID(step.Ref)
		if err != nil {
			return err
		}
		var order domain.Order
		if len(step.Items) > 0 {
			order, err = coord.PlaceOrder(id, toPreOrder(step.Items))
		} else {
			order, err = coord.PlacePreOrder(id)
		}
		if err != nil {
			return err
		}
		if step.OrderRef != "" {
			r.Orders[step.OrderRef] = order.ID
		}
		return nil

	case "advance_order":
		id, err := r.orderID(step.OrderRef)
		if err != nil {
			return err
		}
		return coord.AdvanceOrderStatus(id, domain.OrderStatus(step.To))

	case "set_price":
		return coord.Menu.SetPrice(step.Item, domain.MoneyFromDollars(step.Price))

	case "advance_minutes":
		r.Clock.AdvanceMinutes(step.Minutes)
		return nil

	case "tick":
		coord.Tick()
		return nil
	}
	return fmt.Errorf("unknown op %q", step.Op)
}

func (r *Result) reservationID(ref string) (string, error) {
	id, ok := r.Reservations[ref]
	if !ok {
		return "", fmt.Errorf("unknown reservation ref %q", ref)
	}
	return id, nil
}

func (r *Result) orderID(ref string) (string, error) {
	id, ok := r.Orders[ref]
	if !ok {
		return "", fmt.Errorf("unknown order ref %q", ref)
	}
	return id, nil
}

func toPreOrder(items []PreOrderRef) []domain.PreOrderItem {
	out := make([]domain.PreOrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.PreOrderItem{
			MenuItemID: it.Item,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
		})
	}
	return out
}
