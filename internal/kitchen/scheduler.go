package kitchen

import (
	"sort"
	"sync"
	"time"

	"github.com/tablekeep/tablekeep/internal/domain"
)

// DefaultBufferMinutes is the lead time the kitchen wants before a
// guest's declared arrival.
const DefaultBufferMinutes = 15

// Config holds scheduler tuning.
type Config struct {
	// BufferMinutes is subtracted from each arrival to get the scheduled
	// service time. Zero means DefaultBufferMinutes.
	BufferMinutes int
}

// TicketSource supplies the open orders the scheduler projects.
// Satisfied by orders.Pipeline.
type TicketSource interface {
	OpenOrders() []domain.Order
}

// Scheduler derives the kitchen's priority queue.
type Scheduler struct {
	source TicketSource
	clock  domain.Clock
	buffer time.Duration
	emit   domain.Emitter

	mu         sync.Mutex
	urgentSeen map[string]bool
}

// NewScheduler creates a scheduler over the given order source.
// emit may be nil.
func NewScheduler(source TicketSource, clock domain.Clock, cfg Config, emit domain.Emitter) *Scheduler {
	buffer := cfg.BufferMinutes
	if buffer == 0 {
		buffer = DefaultBufferMinutes
	}
	return &Scheduler{
		source:     source,
		clock:      clock,
		buffer:     time.Duration(buffer) * time.Minute,
		emit:       emit,
		urgentSeen: make(map[string]bool),
	}
}

// HighWindowMinutes is the time-remaining threshold below which a ticket
// is classified high rather than medium.
const HighWindowMinutes = 15

// Classify buckets a time-remaining value (whole minutes) into a priority
// class: urgent once overdue, high with HighWindowMinutes or less to go,
// medium otherwise. A ticket created exactly at the window boundary
// (15 minutes remaining) is already high.
func Classify(timeRemaining int) domain.PriorityClass {
	switch {
	case timeRemaining < 0:
		return domain.PriorityUrgent
	case timeRemaining <= HighWindowMinutes:
		return domain.PriorityHigh
	default:
		return domain.PriorityMedium
	}
}

// Snapshot returns every open ticket in queue order, freshly derived
// against the clock at call time. The returned slice is the caller's to
// keep; repeated calls with an unchanged clock and unchanged orders
// produce an identical ordering.
func (s *Scheduler) Snapshot() []domain.Ticket {
	now := s.clock.Now()
	open := s.source.OpenOrders()

	tickets := make([]domain.Ticket, 0, len(open))
	for _, order := range open {
		tickets = append(tickets, s.derive(order, now))
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		a, b := tickets[i], tickets[j]
		if wa, wb := a.Priority.Weight(), b.Priority.Weight(); wa != wb {
			return wa > wb
		}
		if a.TimeRemaining != b.TimeRemaining {
			return a.TimeRemaining < b.TimeRemaining
		}
		return a.Seq < b.Seq
	})

	s.noteUrgent(tickets)
	return tickets
}

// NextTicket returns the head of the queue, or QUEUE_EMPTY if no open
// tickets exist.
func (s *Scheduler) NextTicket() (domain.Ticket, error) {
	tickets := s.Snapshot()
	if len(tickets) == 0 {
		return domain.Ticket{}, domain.NewQueueEmpty()
	}
	return tickets[0], nil
}

// Tick recomputes the queue against the current clock. Its only effect
// is emitting TicketBecameUrgent for tickets that crossed into urgent
// since the last recomputation; callers push a tick (or simply poll
// Snapshot) on whatever cadence their display refreshes.
func (s *Scheduler) Tick() {
	s.Snapshot()
}

// derive builds one ticket from an order.
//
// timeRemaining = (arrival - buffer) - now, in whole minutes. Go's
// integer duration division truncates toward zero, so one minute past
// the scheduled service time reads as -1.
func (s *Scheduler) derive(order domain.Order, now time.Time) domain.Ticket {
	scheduled := order.ArrivalAt.Add(-s.buffer)
	remaining := int(scheduled.Sub(now) / time.Minute)
	return domain.Ticket{
		OrderID:              order.ID,
		OrderNumber:          order.Number,
		TableNumber:          order.TableNumber,
		CustomerName:         order.CustomerName,
		ArrivalAt:            order.ArrivalAt,
		EstimatedPrepMinutes: order.EstimatedPrepMinutes,
		TimeRemaining:        remaining,
		Priority:             Classify(remaining),
		Status:               order.Status,
		Seq:                  order.Seq,
		Items:                order.LineItems,
	}
}

// noteUrgent emits TicketBecameUrgent once per order on its first
// observed entry into the urgent class, and prunes bookkeeping for
// orders that have left the queue.
func (s *Scheduler) noteUrgent(tickets []domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	open := make(map[string]bool, len(tickets))
	for _, t := range tickets {
		open[t.OrderID] = true
		if t.Priority == domain.PriorityUrgent && !s.urgentSeen[t.OrderID] {
			s.urgentSeen[t.OrderID] = true
			s.emit.Emit(domain.Event{
				Kind:    domain.EventTicketBecameUrgent,
				OrderID: t.OrderID,
			})
		}
	}
	for id := range s.urgentSeen {
		if !open[id] {
			delete(s.urgentSeen, id)
		}
	}
}
