// Package base implements the transport machinery shared by all socket
// backends: length-prefixed framing, a single reader goroutine, and
// request/response correlation by the echoed request ID.
//
// Backends plug in via the IClientConnector interface, which only knows
// how to dial and tune a connection. Everything else (framing, routing,
// timeouts, teardown) lives here, so a new platform backend is a few
// dozen lines.
package base
