package base

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/Flissel/Vibemind-sub001/ipc/codec"
	"github.com/Flissel/Vibemind-sub001/ipc/common"
	"github.com/Flissel/Vibemind-sub001/ipc/transport"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the transport-specific connection operations.
// The base transport handles framing and correlation; connectors only
// know how to dial and tune a socket.
type IClientConnector interface {
	// Dial establishes a single connection to the given endpoint
	Dial(endpoint string) (net.Conn, error)

	// Name returns the name of the transport type (e.g., "unix", "tcp")
	Name() string

	// Tune applies protocol-specific settings to an established connection
	Tune(conn net.Conn, conf common.ClientTransportConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// result carries one routed response (or read error) to a waiting request
type result struct {
	resp *transport.Response
	err  error
}

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector IClientConnector
	conf      common.ClientTransportConfig
	logger    zerolog.Logger

	mu      sync.Mutex // guards the connection lifecycle
	conn    net.Conn
	stopCh  chan struct{}
	pending *xsync.MapOf[uint64, chan result]

	writeMu sync.Mutex // serializes frame writes
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewClientTransport creates a new base client transport with the
// specified connector.
func NewClientTransport(connector IClientConnector, conf common.ClientTransportConfig, logger zerolog.Logger) transport.IClientTransport {
	return &clientTransport{
		connector: connector,
		conf:      conf,
		logger:    logger.With().Str("component", "transport").Str("backend", connector.Name()).Logger(),
		pending:   xsync.NewMapOf[uint64, chan result](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conf.Endpoint == "" {
		return fmt.Errorf("%w: no endpoint configured", common.ErrTransport)
	}

	// Connect on a live transport redials (documented on the interface)
	t.closeLocked()

	conn, err := t.connector.Dial(t.conf.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: failed to connect to %s: %v", common.ErrTransport, t.conf.Endpoint, err)
	}

	if err := t.connector.Tune(conn, t.conf); err != nil {
		conn.Close()
		return fmt.Errorf("%w: failed to tune connection to %s: %v", common.ErrTransport, t.conf.Endpoint, err)
	}

	t.conn = conn
	t.stopCh = make(chan struct{})
	t.pending = xsync.NewMapOf[uint64, chan result]()

	go t.readResponses(conn, t.stopCh, t.pending)

	t.logger.Info().Str("endpoint", t.conf.Endpoint).Msg("connected")
	return nil
}

func (t *clientTransport) SendCommand(cmd common.Command, requestID uint64, params []byte) error {
	t.mu.Lock()
	conn := t.conn
	pending := t.pending
	t.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("%w: not connected", common.ErrTransport)
	}

	// Register before writing so the reader can never outrun us
	ch := make(chan result, 1)
	pending.Store(requestID, ch)

	frame := codec.EncodeRequest(cmd, requestID, params)

	t.writeMu.Lock()
	err := writeFrame(conn, frame)
	t.writeMu.Unlock()

	if err != nil {
		pending.Delete(requestID)
		return fmt.Errorf("%w: send %s (request %d): %v", common.ErrTransport, cmd, requestID, err)
	}
	return nil
}

func (t *clientTransport) ReceiveResponse(requestID uint64, timeout time.Duration) (*transport.Response, error) {
	t.mu.Lock()
	pending := t.pending
	t.mu.Unlock()

	ch, ok := pending.Load(requestID)
	if !ok {
		return nil, fmt.Errorf("%w: no outstanding request with id %d", common.ErrProtocol, requestID)
	}
	defer pending.Delete(requestID)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		return r.resp, r.err
	case <-timer.C:
		return nil, fmt.Errorf("%w: no response for request %d within %v", common.ErrTimeout, requestID, timeout)
	}
}

func (t *clientTransport) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeLocked()
	return nil
}

func (t *clientTransport) Name() string {
	return t.connector.Name()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// closeLocked releases the connection. Callers must hold t.mu.
func (t *clientTransport) closeLocked() {
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
}

// readResponses reads frames in a loop and routes them to the waiting
// request by the echoed request ID. It owns the conn/pending pair it was
// started with, so a later reconnect can never cross-route responses.
func (t *clientTransport) readResponses(conn net.Conn, stopCh chan struct{}, pending *xsync.MapOf[uint64, chan result]) {
	for {
		body, err := readFrame(conn)
		if err != nil {
			select {
			case <-stopCh:
				// Deliberate disconnect, not a failure
				return
			default:
			}

			t.logger.Warn().Err(err).Msg("read failed, failing outstanding requests")

			// Fail every waiter; with one in-flight request that is at
			// most one channel.
			pending.Range(func(id uint64, ch chan result) bool {
				select {
				case ch <- result{nil, fmt.Errorf("%w: connection read failed: %v", common.ErrTransport, err)}:
				default:
				}
				return true
			})
			return
		}

		if len(body) < codec.ResponseHeaderSize {
			// Too short for a header. If the request ID field is intact
			// we can still fail the right caller with parse context.
			if len(body) >= 16 {
				requestID := binary.LittleEndian.Uint64(body[8:16])
				if ch, ok := pending.Load(requestID); ok {
					select {
					case ch <- result{nil, fmt.Errorf("%w: frame of %d bytes is shorter than the %d byte header",
						common.ErrMalformedResponse, len(body), codec.ResponseHeaderSize)}:
					default:
					}
					continue
				}
			}
			t.logger.Warn().Int("frame_len", len(body)).Msg("dropping unroutable short frame")
			continue
		}

		header, err := codec.DecodeResponseHeader(body)
		if err != nil {
			t.logger.Warn().Err(err).Msg("dropping malformed frame")
			continue
		}

		ch, ok := pending.Load(header.RequestID)
		if !ok {
			t.logger.Warn().
				Uint64("request_id", header.RequestID).
				Str("command", header.Command.String()).
				Msg("dropping response for unknown request")
			continue
		}

		select {
		case ch <- result{&transport.Response{Header: header, Payload: body[codec.ResponseHeaderSize:]}, nil}:
		default:
			// Receiver already gave up (timeout); late response is dropped
		}
	}
}
