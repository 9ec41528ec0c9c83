// Package transport defines the pluggable byte-level channel to the
// automation service and holds its platform-specific implementations:
//
//   - base: the shared framed-socket machinery (length-prefixed frames,
//     reader goroutine, request/response correlation).
//
//   - tcp: TCP backend, used for the Windows loopback deployment and for
//     reaching a remote service.
//
//   - unix: Unix domain socket backend for Linux and macOS.
//
// The transport is exclusively owned by one client instance for its
// lifetime and carries at most one in-flight request at a time; it does
// not implement retries, which belong to the client.
package transport
