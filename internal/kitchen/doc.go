// Package kitchen implements the queue scheduler: a read-side projection
// that turns open orders into tickets and keeps them in a total,
// deterministic, stable priority order for kitchen staff.
//
// Nothing here owns an order. The pipeline is the sole writer of order
// status; the scheduler re-derives every ticket on each read against the
// current clock, so time-based reclassification needs no background
// timer - callers poll Snapshot or push a Tick.
//
// Ordering contract:
//  1. priority weight descending (urgent=3 > high=2 > medium=1)
//  2. time remaining ascending (most overdue first)
//  3. order creation sequence ascending
//
// The final key makes the sort total: two tickets with equal priority and
// equal time remaining never swap between recomputations. Stability is a
// tested property, not an accident of the sort implementation.
package kitchen
