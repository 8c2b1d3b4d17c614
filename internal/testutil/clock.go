// Package testutil provides test doubles shared across packages.
package testutil

import (
	"sync"
	"time"
)

// ManualClock is a domain.Clock whose time only moves when a test says
// so. The same scenario run twice against the same start time produces
// identical time-remaining values and queue orderings.
//
// Thread-safety: all methods are safe for concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// Epoch is the default start time for manual clocks: a Friday evening
// service, on the hour, in UTC.
var Epoch = time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)

// NewManualClock creates a clock frozen at start. A zero start means
// Epoch.
func NewManualClock(start time.Time) *ManualClock {
	if start.IsZero() {
		start = Epoch
	}
	return &ManualClock{now: start}
}

// Now implements domain.Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceMinutes moves the clock forward by whole minutes.
func (c *ManualClock) AdvanceMinutes(m int) {
	c.Advance(time.Duration(m) * time.Minute)
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
