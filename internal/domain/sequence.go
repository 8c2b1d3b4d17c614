package domain

import "sync/atomic"

// Sequence is a monotonic logical counter for creation-order stamping.
//
// Every reservation and order receives a strictly increasing seq number
// from the coordinator's shared Sequence. This ensures:
// - Deterministic tie-breaking in the kitchen queue (no wall-clock races)
// - Re-sorting preserves relative order of otherwise-equal tickets
//
// Thread-safety: Sequence is safe for concurrent use (atomic operations).
type Sequence struct {
	seq atomic.Int64
}

// NewSequence creates a sequence starting at 0; the first Next returns 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next sequence number and increments the counter.
// Calls are linearizable - each call returns a unique, increasing value.
func (s *Sequence) Next() int64 {
	return s.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (s *Sequence) Current() int64 {
	return s.seq.Load()
}
