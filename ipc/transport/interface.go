package transport

import (
	"time"

	"github.com/Flissel/Vibemind-sub001/ipc/common"
)

// Response is one framed response received from the service: the decoded
// fixed header plus the raw payload bytes that follow it. Payload decoding
// is the caller's concern (via the codec package).
type Response struct {
	Header  common.ResponseHeader
	Payload []byte
}

// IClientTransport is the byte-level channel to the automation service.
// Implementations are platform-specific (TCP, Unix domain sockets); the
// client above never touches a socket directly.
//
// A transport carries at most one connection. Retry and backoff policy
// live in the client, not here.
type IClientTransport interface {
	// Connect establishes the channel. Calling Connect on an already
	// connected transport tears down the existing connection and dials a
	// fresh one.
	Connect() error

	// SendCommand writes one framed request. I/O failures are returned
	// as common.ErrTransport-wrapped errors, never panics.
	SendCommand(cmd common.Command, requestID uint64, params []byte) error

	// ReceiveResponse blocks up to timeout for the response matching
	// requestID. Expiry yields a common.ErrTimeout-wrapped error.
	// SendCommand must have been called with the same requestID first.
	ReceiveResponse(requestID uint64, timeout time.Duration) (*Response, error)

	// Disconnect releases the channel. Safe to call repeatedly.
	Disconnect() error

	// Name identifies the backend ("tcp", "unix") for observability.
	Name() string
}
