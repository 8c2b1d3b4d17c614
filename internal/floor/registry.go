// Package floor implements the table registry: the set of physical
// tables, their capacity, and their occupancy state.
//
// The registry is the sole writer of occupancy. It performs no table
// selection of its own; seating policy lives with the caller (see
// reserve.Picker), built on ListAvailable's deterministic ordering.
package floor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tablekeep/tablekeep/internal/domain"
)

// Registry owns the floor's tables.
//
// Thread-safety: all methods are safe for concurrent use. The registry
// never calls back into the reservation store, which keeps the global
// lock order (reservation before table) acyclic.
type Registry struct {
	mu     sync.RWMutex
	tables map[int]*domain.Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[int]*domain.Table)}
}

// AddTable registers a new table. Fails with DUPLICATE_TABLE if the
// number is already taken. Table numbers must be positive and capacity at
// least 1; violations are caller bugs, not recoverable conflicts, and are
// reported as plain errors outside the coded taxonomy.
func (r *Registry) AddTable(number, capacity int) error {
	if number <= 0 {
		return fmt.Errorf("invalid table number %d: must be positive", number)
	}
	if capacity < 1 {
		return fmt.Errorf("invalid capacity %d for table %d: must be at least 1", capacity, number)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[number]; exists {
		return domain.NewDuplicateTable(number)
	}
	r.tables[number] = &domain.Table{Number: number, Capacity: capacity}
	return nil
}

// RemoveTable deletes a table. Fails with TABLE_OCCUPIED while a
// reservation holds it, TABLE_NOT_FOUND if it does not exist.
func (r *Registry) RemoveTable(number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[number]
	if !ok {
		return domain.NewTableNotFound(number)
	}
	if t.Occupied() {
		return domain.NewTableOccupied(number, t.OccupantReservationID)
	}
	delete(r.tables, number)
	return nil
}

// Allocate binds a table to a reservation.
//
// Idempotent: allocating a table already bound to the same reservation is
// a successful no-op. Allocating a table bound to a different reservation
// fails with TABLE_OCCUPIED.
func (r *Registry) Allocate(number int, reservationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[number]
	if !ok {
		return domain.NewTableNotFound(number)
	}
	if t.Occupied() {
		if t.OccupantReservationID == reservationID {
			return nil
		}
		return domain.NewTableOccupied(number, t.OccupantReservationID)
	}
	t.OccupantReservationID = reservationID
	return nil
}

// Release clears a table's occupancy. Idempotent if the table is already
// free; fails with TABLE_NOT_FOUND for an unknown table.
func (r *Registry) Release(number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[number]
	if !ok {
		return domain.NewTableNotFound(number)
	}
	t.OccupantReservationID = ""
	return nil
}

// ListAvailable returns unoccupied tables with capacity >= minCapacity,
// ordered by ascending table number. The deterministic order makes
// "smallest table number first" policies stable across calls.
func (r *Registry) ListAvailable(minCapacity int) []domain.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Table, 0, len(r.tables))
	for _, t := range r.tables {
		if !t.Occupied() && t.Capacity >= minCapacity {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// List returns a copy of every table, ordered by ascending number.
// Read projection only; mutating the result does not touch the registry.
func (r *Registry) List() []domain.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Get returns a copy of one table.
func (r *Registry) Get(number int) (domain.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[number]
	if !ok {
		return domain.Table{}, false
	}
	return *t, true
}
