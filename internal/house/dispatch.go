package house

import (
	"sync"

	"github.com/tablekeep/tablekeep/internal/domain"
)

// dispatcher fans outbound events to subscribers, fire-and-forget.
//
// Publish never blocks a core mutation: events land in a buffered channel
// drained by a single goroutine, and when the buffer is full the event is
// dropped. The coordinator guarantees emission at the moment of the
// transition, not delivery.
type dispatcher struct {
	events chan domain.Event
	done   chan struct{}
	sync   bool

	mu   sync.RWMutex
	subs []func(domain.Event)
}

const dispatchBuffer = 256

// newDispatcher creates a dispatcher. In synchronous mode subscribers
// run inline on the publishing goroutine - the harness uses this for
// deterministic event assertions; subscribers must then stay trivial
// (no calls back into the stores) because publish happens under store
// locks.
func newDispatcher(synchronous bool) *dispatcher {
	d := &dispatcher{
		events: make(chan domain.Event, dispatchBuffer),
		done:   make(chan struct{}),
		sync:   synchronous,
	}
	if !synchronous {
		go d.drain()
	}
	return d
}

// publish enqueues an event, dropping it if the buffer is full.
func (d *dispatcher) publish(ev domain.Event) {
	if d.sync {
		d.mu.RLock()
		subs := d.subs
		d.mu.RUnlock()
		for _, fn := range subs {
			fn(ev)
		}
		return
	}
	select {
	case d.events <- ev:
	case <-d.done:
	default:
	}
}

// subscribe registers a callback invoked from the drain goroutine.
// Callbacks run sequentially per event; a slow subscriber delays later
// subscribers but never a core mutation.
func (d *dispatcher) subscribe(fn func(domain.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, fn)
}

func (d *dispatcher) drain() {
	for {
		select {
		case ev := <-d.events:
			d.mu.RLock()
			subs := d.subs
			d.mu.RUnlock()
			for _, fn := range subs {
				fn(ev)
			}
		case <-d.done:
			return
		}
	}
}

// close stops the drain goroutine. Buffered events may be discarded;
// fire-and-forget delivery makes that acceptable.
func (d *dispatcher) close() {
	select {
	case <-d.done:
	default:
		close(d.done)
	}
}
