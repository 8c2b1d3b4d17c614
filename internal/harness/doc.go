// Package harness runs conformance scenarios against the coordinator.
//
// Scenarios are YAML files describing a service: tables added in setup, a
// flow of reservation/order operations with expected outcomes, simulated
// clock advancement, and final assertions over reservations, tables,
// orders, events, and the kitchen queue.
//
// Every step additionally re-checks the structural invariants - a
// reservation holds a table iff it is seated, and no two seated
// reservations share a table - so a scenario that merely "passes" its
// explicit expectations still fails if an operation corrupted state.
//
// Golden files capture the final kitchen queue for a scenario; see
// RunWithGolden. Scenarios run on a manual clock, so golden output is
// byte-deterministic.
package harness
