// Package breaker implements the circuit breaker that gates every
// request the IPC client sends. It isolates the application from a
// misbehaving automation service: after a burst of consecutive failures
// the circuit opens and requests fail fast without touching the
// transport, then a timed probe phase decides whether to close it again.
//
// The state machine is deliberately explicit (closed, open, half-open
// with fixed transition rules) because its exact behavior is part of the
// client's contract and covered by tests; see the Breaker type.
package breaker
