// Package domain defines the shared vocabulary of the front-of-house
// coordinator: tables, reservations, orders, kitchen tickets, and the
// coded error taxonomy every component returns.
//
// The package is a leaf - it imports no other tablekeep package - so the
// registry, store, pipeline, and scheduler packages can all share these
// types without cycles.
//
// CRITICAL PATTERNS:
//
// Logical Sequence:
// Reservations and orders are stamped with a monotonic sequence number
// from Sequence.Next(). All tie-breaking in the kitchen queue uses this
// sequence, never wall-clock timestamps, so re-sorting is deterministic
// and stable across recomputations.
//
// Coded Errors:
// Every failure a caller can recover from is an *Error carrying one of
// the Code constants. Callers branch on CodeOf/Is helpers rather than
// string matching.
package domain
