// Package ipc provides the binary IPC client for the Vibemind desktop
// automation service. The remote service is a pre-existing native process
// with a fixed ABI; this package speaks its wire format bit-for-bit and
// shields the rest of the application from connection management and
// fault handling.
//
// The package is organized into several subpackages:
//
//   - common: protocol constants (commands, statuses, element types),
//     typed records parsed from the wire, client configuration, and the
//     closed set of sentinel errors used across the subsystem.
//
//   - codec: the fixed-layout binary wire codec. Encodes command frames
//     and decodes response headers and payload records at exact byte
//     offsets matching the peer's struct packing.
//
//   - transport: byte-level channel abstractions with pluggable backends
//     (TCP for Windows loopback or remote services, Unix domain sockets
//     for Linux/macOS).
//
//   - breaker: the circuit breaker that gates every request attempt and
//     isolates the application from a misbehaving peer.
//
//   - client: the automation client tying the above together: connect
//     with exponential backoff, authorization, command dispatch, response
//     parsing, and health/metrics reporting.
package ipc
