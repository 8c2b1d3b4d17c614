package kitchen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekeep/tablekeep/internal/domain"
	"github.com/tablekeep/tablekeep/internal/testutil"
)

// sourceStub satisfies TicketSource with a mutable order slice.
type sourceStub struct {
	orders []domain.Order
}

func (s *sourceStub) OpenOrders() []domain.Order {
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func openOrder(id string, seq int64, arrival time.Time) domain.Order {
	return domain.Order{
		ID:        id,
		Number:    "ORD-" + id,
		Seq:       seq,
		ArrivalAt: arrival,
		Status:    domain.OrderPending,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		remaining int
		want      domain.PriorityClass
	}{
		{-30, domain.PriorityUrgent},
		{-1, domain.PriorityUrgent},
		{0, domain.PriorityHigh},
		{10, domain.PriorityHigh},
		{15, domain.PriorityHigh},
		{16, domain.PriorityMedium},
		{120, domain.PriorityMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.remaining), "remaining=%d", tt.remaining)
	}
}

func TestScheduler_TimeRemaining(t *testing.T) {
	clock := testutil.NewManualClock(time.Time{})
	source := &sourceStub{orders: []domain.Order{
		openOrder("o1", 1, testutil.Epoch.Add(30*time.Minute)),
	}}
	s := NewScheduler(source, clock, Config{}, nil)

	// Scheduled service is arrival minus the 15 minute buffer, so the
	// ticket starts exactly on the high-window boundary.
	tickets := s.Snapshot()
	require.Len(t, tickets, 1)
	assert.Equal(t, 15, tickets[0].TimeRemaining)
	assert.Equal(t, domain.PriorityHigh, tickets[0].Priority)

	clock.AdvanceMinutes(10)
	tickets = s.Snapshot()
	assert.Equal(t, 5, tickets[0].TimeRemaining)
	assert.Equal(t, domain.PriorityHigh, tickets[0].Priority)

	clock.AdvanceMinutes(6)
	tickets = s.Snapshot()
	assert.Equal(t, -1, tickets[0].TimeRemaining)
	assert.Equal(t, domain.PriorityUrgent, tickets[0].Priority)
}

func TestScheduler_CustomBuffer(t *testing.T) {
	clock := testutil.NewManualClock(time.Time{})
	source := &sourceStub{orders: []domain.Order{
		openOrder("o1", 1, testutil.Epoch.Add(60*time.Minute)),
	}}
	s := NewScheduler(source, clock, Config{BufferMinutes: 30}, nil)

	tickets := s.Snapshot()
	require.Len(t, tickets, 1)
	assert.Equal(t, 30, tickets[0].TimeRemaining)
	assert.Equal(t, domain.PriorityMedium, tickets[0].Priority)
}

func TestScheduler_QueueOrdering(t *testing.T) {
	clock := testutil.NewManualClock(time.Time{})
	source := &sourceStub{orders: []domain.Order{
		// medium: 105 remaining
		openOrder("medium", 1, testutil.Epoch.Add(2*time.Hour)),
		// urgent: -15 remaining
		openOrder("urgent", 2, testutil.Epoch),
		// high, later of the two highs: 15 remaining
		openOrder("high-later", 3, testutil.Epoch.Add(30*time.Minute)),
		// high, sooner: 5 remaining
		openOrder("high-sooner", 4, testutil.Epoch.Add(20*time.Minute)),
	}}
	s := NewScheduler(source, clock, Config{}, nil)

	tickets := s.Snapshot()
	require.Len(t, tickets, 4)

	var ids []string
	for _, ticket := range tickets {
		ids = append(ids, ticket.OrderID)
	}
	assert.Equal(t, []string{"urgent", "high-sooner", "high-later", "medium"}, ids)
}

func TestScheduler_TiesBreakByCreationOrder(t *testing.T) {
	clock := testutil.NewManualClock(time.Time{})
	arrival := testutil.Epoch.Add(30 * time.Minute)
	source := &sourceStub{orders: []domain.Order{
		openOrder("second", 2, arrival),
		openOrder("first", 1, arrival),
	}}
	s := NewScheduler(source, clock, Config{}, nil)

	tickets := s.Snapshot()
	require.Len(t, tickets, 2)
	assert.Equal(t, "first", tickets[0].OrderID)
	assert.Equal(t, "second", tickets[1].OrderID)

	// Re-deriving with nothing changed reproduces the exact ordering.
	again := s.Snapshot()
	assert.Equal(t, tickets, again)
}

func TestScheduler_NextTicket(t *testing.T) {
	clock := testutil.NewManualClock(time.Time{})
	source := &sourceStub{}
	s := NewScheduler(source, clock, Config{}, nil)

	_, err := s.NextTicket()
	require.Error(t, err)
	assert.Equal(t, domain.CodeQueueEmpty, domain.CodeOf(err))

	source.orders = []domain.Order{
		openOrder("o1", 1, testutil.Epoch.Add(time.Hour)),
		openOrder("o2", 2, testutil.Epoch.Add(20*time.Minute)),
	}
	ticket, err := s.NextTicket()
	require.NoError(t, err)
	assert.Equal(t, "o2", ticket.OrderID)
}

func TestScheduler_UrgentEmittedOnce(t *testing.T) {
	clock := testutil.NewManualClock(time.Time{})
	source := &sourceStub{orders: []domain.Order{
		openOrder("o1", 1, testutil.Epoch.Add(30*time.Minute)),
	}}
	var events []domain.Event
	s := NewScheduler(source, clock, Config{}, func(ev domain.Event) {
		events = append(events, ev)
	})

	s.Tick()
	assert.Empty(t, events, "still high, nothing to announce")

	clock.AdvanceMinutes(16)
	s.Tick()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTicketBecameUrgent, events[0].Kind)
	assert.Equal(t, "o1", events[0].OrderID)

	clock.AdvanceMinutes(30)
	s.Tick()
	s.Tick()
	assert.Len(t, events, 1, "repeated ticks never re-announce")
}

func TestScheduler_UrgentTrackingPrunedWhenOrderCloses(t *testing.T) {
	clock := testutil.NewManualClock(time.Time{})
	source := &sourceStub{orders: []domain.Order{
		openOrder("o1", 1, testutil.Epoch),
	}}
	var events []domain.Event
	s := NewScheduler(source, clock, Config{}, func(ev domain.Event) {
		events = append(events, ev)
	})

	s.Tick()
	require.Len(t, events, 1)

	source.orders = nil
	s.Tick()

	s.mu.Lock()
	assert.Empty(t, s.urgentSeen)
	s.mu.Unlock()
}
