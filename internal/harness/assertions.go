package harness

import (
	"fmt"

	"github.com/tablekeep/tablekeep/internal/domain"
	"github.com/tablekeep/tablekeep/internal/house"
)

// CheckInvariants verifies the structural invariants that must hold
// after every operation sequence:
//
//   - a reservation's table is set iff its status is seated
//   - no two seated reservations share a table
//   - an occupied table's occupant is a seated reservation bound to
//     that same table
func CheckInvariants(coord *house.Coordinator) error {
	reservations := coord.ListReservations()
	byID := make(map[string]domain.Reservation, len(reservations))
	seatedAt := make(map[int]string)

	for _, res := range reservations {
		byID[res.ID] = res
		seated := res.Status == domain.ReservationSeated
		if seated != (res.TableNumber != 0) {
			return fmt.Errorf("invariant violated: reservation %s is %s with table %d",
				res.ID, res.Status, res.TableNumber)
		}
		if seated {
			if other, dup := seatedAt[res.TableNumber]; dup {
				return fmt.Errorf("invariant violated: reservations %s and %s both seated at table %d",
					other, res.ID, res.TableNumber)
			}
			seatedAt[res.TableNumber] = res.ID
		}
	}

	for _, t := range coord.ListTables() {
		if !t.Occupied() {
			continue
		}
		res, ok := byID[t.OccupantReservationID]
		if !ok {
			return fmt.Errorf("invariant violated: table %d occupied by unknown reservation %s",
				t.Number, t.OccupantReservationID)
		}
		if res.Status != domain.ReservationSeated || res.TableNumber != t.Number {
			return fmt.Errorf("invariant violated: table %d occupant %s is %s at table %d",
				t.Number, res.ID, res.Status, res.TableNumber)
		}
	}
	return nil
}

// Assert validates the scenario's assertions against the final state.
// All assertions run; every failure is reported.
func (r *Result) Assert() []error {
	var errs []error
	for i, a := range r.Scenario.Assertions {
		if err := r.assertOne(a); err != nil {
			errs = append(errs, fmt.Errorf("assertions[%d] %s: %w", i, a.Type, err))
		}
	}
	return errs
}

func (r *Result) assertOne(a Assertion) error {
	coord := r.Coordinator
	switch a.Type {
	case AssertReservationStatus:
		id, err := r.reservationID(a.Ref)
		if err != nil {
			return err
		}
		res, ok := coord.Reservations.Get(id)
		if !ok {
			return fmt.Errorf("reservation %q not found", a.Ref)
		}
		if string(res.Status) != a.Status {
			return fmt.Errorf("reservation %q is %s, want %s", a.Ref, res.Status, a.Status)
		}
		return nil

	case AssertTableOccupied:
		id, err := r.reservationID(a.ByRef)
		if err != nil {
			return err
		}
		t, ok := coord.Tables.Get(a.Table)
		if !ok {
			return fmt.Errorf("table %d not found", a.Table)
		}
		if t.OccupantReservationID != id {
			return fmt.Errorf("table %d occupied by %q, want reservation %q", a.Table, t.OccupantReservationID, a.ByRef)
		}
		return nil

	case AssertTableFree:
		t, ok := coord.Tables.Get(a.Table)
		if !ok {
			return fmt.Errorf("table %d not found", a.Table)
		}
		if t.Occupied() {
			return fmt.Errorf("table %d is occupied by %s, want free", a.Table, t.OccupantReservationID)
		}
		return nil

	case AssertOrderStatus:
		id, err := r.orderID(a.OrderRef)
		if err != nil {
			return err
		}
		order, ok := coord.Orders.Get(id)
		if !ok {
			return fmt.Errorf("order %q not found", a.OrderRef)
		}
		if string(order.Status) != a.Status {
			return fmt.Errorf("order %q is %s, want %s", a.OrderRef, order.Status, a.Status)
		}
		return nil

	case AssertOrderTotal:
		id, err := r.orderID(a.OrderRef)
		if err != nil {
			return err
		}
		total, err := coord.Orders.ComputeTotal(id)
		if err != nil {
			return err
		}
		if want := domain.MoneyFromDollars(a.Total); total != want {
			return fmt.Errorf("order %q totals %s, want %s", a.OrderRef, total, want)
		}
		return nil

	case AssertQueueOrder:
		tickets := coord.ListOpenTickets()
		if len(tickets) != len(a.OrderRefs) {
			return fmt.Errorf("queue has %d tickets, want %d", len(tickets), len(a.OrderRefs))
		}
		for i, ref := range a.OrderRefs {
			id, err := r.orderID(ref)
			if err != nil {
				return err
			}
			if tickets[i].OrderID != id {
				return fmt.Errorf("queue position %d holds %s, want %q", i, tickets[i].OrderNumber, ref)
			}
		}
		return nil

	case AssertQueueEmpty:
		if tickets := coord.ListOpenTickets(); len(tickets) != 0 {
			return fmt.Errorf("queue has %d tickets, want none", len(tickets))
		}
		return nil

	case AssertNextTicket:
		ticket, err := coord.NextTicket()
		if err != nil {
			return err
		}
		if a.OrderRef != "" {
			id, err := r.orderID(a.OrderRef)
			if err != nil {
				return err
			}
			if ticket.OrderID != id {
				return fmt.Errorf("next ticket is %s, want %q", ticket.OrderNumber, a.OrderRef)
			}
		}
		if a.Priority != "" && string(ticket.Priority) != a.Priority {
			return fmt.Errorf("next ticket priority is %s, want %s", ticket.Priority, a.Priority)
		}
		if a.TimeRemaining != nil && ticket.TimeRemaining != *a.TimeRemaining {
			return fmt.Errorf("next ticket has %d minutes remaining, want %d", ticket.TimeRemaining, *a.TimeRemaining)
		}
		return nil

	case AssertEventCount:
		count := 0
		for _, ev := range r.Events {
			if string(ev.Kind) == a.Kind {
				count++
			}
		}
		if count != a.Count {
			return fmt.Errorf("captured %d %s events, want %d", count, a.Kind, a.Count)
		}
		return nil
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}
