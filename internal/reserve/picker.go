package reserve

import "github.com/tablekeep/tablekeep/internal/domain"

// Picker chooses a table for a party from the registry's available list.
// Selection policy is deliberately outside the registry and the store's
// state machine; callers plug in whichever policy fits the room.
type Picker interface {
	// Pick returns the chosen table number, or false when no listed table
	// suits the party.
	Pick(available []domain.Table, partySize int) (int, bool)
}

// SmallestFit picks the lowest-capacity table that fits the party,
// breaking capacity ties by the lower table number. This is the default
// policy: it keeps large tables free for large parties.
type SmallestFit struct{}

// Pick implements Picker.
func (SmallestFit) Pick(available []domain.Table, partySize int) (int, bool) {
	best := -1
	for i, t := range available {
		if t.Capacity < partySize {
			continue
		}
		if best == -1 || t.Capacity < available[best].Capacity {
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}
	return available[best].Number, true
}

// FirstAvailable picks the first listed table that fits the party.
// ListAvailable orders by ascending table number, so this is the
// lowest-numbered fitting table.
type FirstAvailable struct{}

// Pick implements Picker.
func (FirstAvailable) Pick(available []domain.Table, partySize int) (int, bool) {
	for _, t := range available {
		if t.Capacity >= partySize {
			return t.Number, true
		}
	}
	return 0, false
}

// AutoSeat confirms the reservation at a table chosen by the picker over
// the registry's current availability. Fails with TABLE_OCCUPIED if no
// table suits the party (the closest conflict in the taxonomy: every
// candidate is occupied or too small).
func (s *Store) AutoSeat(id string, picker Picker) (int, error) {
	s.mu.RLock()
	res, ok := s.reservations[id]
	if !ok {
		s.mu.RUnlock()
		return 0, domain.NewReservationNotFound(id)
	}
	partySize := res.PartySize
	s.mu.RUnlock()

	// The pick can race a concurrent confirm. Confirm re-checks occupancy
	// through the registry, so a lost race surfaces as TABLE_OCCUPIED
	// rather than a double booking.
	number, ok := picker.Pick(s.tables.ListAvailable(partySize), partySize)
	if !ok {
		return 0, &domain.Error{
			Code:          domain.CodeTableOccupied,
			Message:       "no available table fits the party",
			ReservationID: id,
		}
	}
	if err := s.Confirm(id, number); err != nil {
		return 0, err
	}
	return number, nil
}
