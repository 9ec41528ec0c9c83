package common

import "errors"

// The closed set of error kinds surfaced by the IPC subsystem. Every
// expected failure mode maps to exactly one of these sentinels via
// fmt.Errorf("...: %w", ...) wrapping, so callers can branch with
// errors.Is without string matching. Anything not in this set is a
// programming error and may propagate as-is.
var (
	// ErrTransport covers connect/send/receive I/O failures.
	ErrTransport = errors.New("ipc: transport failure")

	// ErrTimeout is returned when a response does not arrive within the
	// operation's timeout. Timeouts count as circuit breaker failures.
	ErrTimeout = errors.New("ipc: request timed out")

	// ErrMalformedResponse is returned when a response buffer is shorter
	// than a record requires or a field cannot be decoded.
	ErrMalformedResponse = errors.New("ipc: malformed response")

	// ErrCircuitOpen is returned when the circuit breaker rejects a
	// request before it reaches the transport.
	ErrCircuitOpen = errors.New("ipc: circuit breaker open")

	// ErrUnauthorized is returned when IPC auth is enabled and no token
	// is held. Operations are blocked before the transport (fail-closed).
	ErrUnauthorized = errors.New("ipc: not authorized")

	// ErrProtocol is returned when the peer violates the request/response
	// contract, e.g. echoes a request ID or command that does not match
	// the outstanding request.
	ErrProtocol = errors.New("ipc: protocol violation")

	// ErrNotFound is returned by window operations when the service
	// reports STATUS_NOT_FOUND for the given identifier.
	ErrNotFound = errors.New("ipc: not found")

	// ErrRemote is returned when the service itself reports a failure
	// status. The channel is healthy; the operation was rejected on the
	// other side.
	ErrRemote = errors.New("ipc: service reported error")
)
