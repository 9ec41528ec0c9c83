package client

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Flissel/Vibemind-sub001/ipc/breaker"
	"github.com/Flissel/Vibemind-sub001/ipc/common"
	"github.com/Flissel/Vibemind-sub001/ipc/transport"
	"github.com/Flissel/Vibemind-sub001/pkg/token"
)

// Client is the IPC client for the desktop automation service. It owns
// its transport, circuit breaker and counters; multiple independent
// clients can coexist in one process without cross-talk.
//
// A Client supports one in-flight request at a time and is not safe for
// concurrent use; wrap it in a Serialized when multiple goroutines need
// access.
type Client struct {
	conf   common.ClientConfig
	tr     transport.IClientTransport
	tokens token.Provider
	logger zerolog.Logger
	brk    *breaker.Breaker

	connected atomic.Bool
	authToken []byte

	requestID       atomic.Uint64
	totalRequests   atomic.Uint64
	failedRequests  atomic.Uint64
	totalReconnects atomic.Uint64
	rejections      atomic.Uint64

	counters *counters

	// sleep is swapped out by tests to observe backoff timing
	sleep func(time.Duration)
}

// New creates a disconnected client. The token provider may be nil when
// IPC auth is disabled.
func New(conf common.ClientConfig, tr transport.IClientTransport, tokens token.Provider, logger zerolog.Logger) *Client {
	clientLogger := logger.With().Str("component", "ipc-client").Logger()
	return &Client{
		conf:   conf,
		tr:     tr,
		tokens: tokens,
		logger: clientLogger,
		brk: breaker.New(breaker.Config{
			FailureThreshold:  conf.Breaker.FailureThreshold,
			OpenTimeout:       time.Duration(conf.Breaker.OpenTimeoutSec) * time.Second,
			HalfOpenSuccesses: conf.Breaker.HalfOpenSuccesses,
		}, clientLogger),
		counters: newCounters(tr.Name()),
		sleep:    time.Sleep,
	}
}

// --------------------------------------------------------------------------
// Connection Lifecycle
// --------------------------------------------------------------------------

// Connect establishes the transport channel, retrying with exponential
// backoff (base*2^(attempt-1)) between failed attempts. On success the
// auth token is loaded when auth is enabled.
func (c *Client) Connect() error {
	retries := c.conf.ConnectRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		err := c.tr.Connect()
		if err == nil {
			c.loadToken()
			c.connected.Store(true)
			c.logger.Info().
				Str("backend", c.tr.Name()).
				Int("attempt", attempt).
				Msg("connected to automation service")
			return nil
		}

		lastErr = err
		c.logger.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_retries", retries).
			Msg("connect attempt failed")

		if attempt < retries {
			backoff := time.Duration(c.conf.ConnectBackoffMS) * time.Millisecond << (attempt - 1)
			c.sleep(backoff)
		}
	}

	return fmt.Errorf("%w: connect failed after %d attempts: %v", common.ErrTransport, retries, lastErr)
}

// Reconnect tears the channel down, pauses briefly and dials again. Used
// by the auto-recovery path of scan and find operations.
func (c *Client) Reconnect() error {
	c.totalReconnects.Add(1)
	c.counters.reconnects.Inc()
	c.logger.Info().Msg("reconnecting")

	_ = c.tr.Disconnect()
	c.connected.Store(false)

	c.sleep(time.Duration(c.conf.ReconnectPauseMS) * time.Millisecond)

	if err := c.tr.Connect(); err != nil {
		return fmt.Errorf("%w: reconnect failed: %v", common.ErrTransport, err)
	}
	c.loadToken()
	c.connected.Store(true)
	return nil
}

// Disconnect releases the transport channel. Safe to call repeatedly.
func (c *Client) Disconnect() error {
	c.connected.Store(false)
	return c.tr.Disconnect()
}

// loadToken fetches the auth token from the provider. Failures leave the
// client unauthorized; with auth enabled every operation is then blocked
// until a reconnect loads a valid token.
func (c *Client) loadToken() {
	if !c.conf.Auth.Enabled {
		return
	}
	if c.tokens == nil {
		c.logger.Error().Msg("ipc auth enabled but no token provider configured")
		c.authToken = nil
		return
	}

	tok, err := c.tokens.Load()
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load ipc auth token")
		c.authToken = nil
		return
	}
	c.authToken = tok
}

// IsAuthorized reports whether operations may proceed: always true with
// auth disabled, otherwise true once a token has been loaded.
func (c *Client) IsAuthorized() bool {
	if !c.conf.Auth.Enabled {
		return true
	}
	return len(c.authToken) > 0
}

// --------------------------------------------------------------------------
// Dispatch Helpers
// --------------------------------------------------------------------------

// authorize is the fail-closed auth gate: with auth enabled and no token
// held, requests are blocked before they reach the circuit breaker or
// the transport.
func (c *Client) authorize(cmd common.Command) error {
	if c.IsAuthorized() {
		return nil
	}
	return fmt.Errorf("%w: %s blocked, no auth token held", common.ErrUnauthorized, cmd)
}

// sendCommand assigns the next request ID and writes the request.
// total_requests is incremented before the circuit check, so circuit-open
// rejections still count as requests.
func (c *Client) sendCommand(cmd common.Command, params []byte) (uint64, error) {
	requestID := c.requestID.Add(1)

	c.totalRequests.Add(1)
	c.counters.requests.Inc()

	if !c.brk.Allow() {
		c.rejections.Add(1)
		c.counters.rejections.Inc()
		c.logger.Debug().Str("command", cmd.String()).Msg("request rejected, circuit open")
		return 0, fmt.Errorf("%w: %s rejected", common.ErrCircuitOpen, cmd)
	}

	if err := c.tr.SendCommand(cmd, requestID, params); err != nil {
		c.recordFailure()
		c.logger.Warn().Err(err).Str("command", cmd.String()).Msg("send failed")
		return 0, err
	}
	return requestID, nil
}

// waitForResponse blocks for the framed response and updates the circuit
// breaker. Timeouts and read errors are failures; a malformed frame is
// not (bytes arrived, the channel is healthy). The echoed command and
// request ID must match the outstanding request.
func (c *Client) waitForResponse(cmd common.Command, requestID uint64, timeout time.Duration) (*transport.Response, error) {
	resp, err := c.tr.ReceiveResponse(requestID, timeout)
	if err != nil {
		if errors.Is(err, common.ErrMalformedResponse) {
			c.brk.RecordSuccess()
			c.failedRequests.Add(1)
			c.counters.failures.Inc()
			c.logger.Error().Err(err).Str("command", cmd.String()).Msg("malformed response")
			return nil, err
		}
		c.recordFailure()
		c.logger.Warn().Err(err).Str("command", cmd.String()).Msg("receive failed")
		return nil, err
	}

	if resp.Header.RequestID != requestID || resp.Header.Command != cmd {
		c.recordFailure()
		return nil, fmt.Errorf("%w: response echoes %s/%d, expected %s/%d",
			common.ErrProtocol, resp.Header.Command, resp.Header.RequestID, cmd, requestID)
	}

	c.brk.RecordSuccess()
	return resp, nil
}

// invoke runs one request/response exchange end to end.
func (c *Client) invoke(cmd common.Command, params []byte, timeout time.Duration) (*transport.Response, error) {
	if err := c.authorize(cmd); err != nil {
		return nil, err
	}

	requestID, err := c.sendCommand(cmd, params)
	if err != nil {
		return nil, err
	}
	return c.waitForResponse(cmd, requestID, timeout)
}

// invokeWithRecovery is invoke plus the auto-recovery policy used by
// scan and find: on a transport failure or timeout, reconnect once and
// retry the operation exactly once.
func (c *Client) invokeWithRecovery(cmd common.Command, params []byte, timeout time.Duration) (*transport.Response, error) {
	resp, err := c.invoke(cmd, params, timeout)
	if err == nil || !isRecoverable(err) {
		return resp, err
	}

	c.logger.Info().Str("command", cmd.String()).Msg("transport failure, reconnecting for retry")
	if rerr := c.Reconnect(); rerr != nil {
		c.logger.Error().Err(rerr).Msg("reconnect failed")
		return nil, err
	}
	return c.invoke(cmd, params, timeout)
}

func (c *Client) recordFailure() {
	c.brk.RecordFailure()
	c.failedRequests.Add(1)
	c.counters.failures.Inc()
}

// isRecoverable reports whether a reconnect-and-retry can help.
func isRecoverable(err error) bool {
	return errors.Is(err, common.ErrTransport) || errors.Is(err, common.ErrTimeout)
}

// checkStatus maps a response status to the error model.
func checkStatus(cmd common.Command, header common.ResponseHeader) error {
	switch header.Status {
	case common.StatusSuccess:
		return nil
	case common.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, cmd)
	case common.StatusNotAuthorized:
		return fmt.Errorf("%w: %s rejected by service", common.ErrUnauthorized, cmd)
	default:
		return fmt.Errorf("%w: %s returned status %s", common.ErrRemote, cmd, header.Status)
	}
}

// Operation timeouts.

func (c *Client) timeout() time.Duration {
	return millisOrDefault(c.conf.TimeoutMS, 5000)
}

func (c *Client) scanTimeout() time.Duration {
	return millisOrDefault(c.conf.ScanTimeoutMS, 10000)
}

func (c *Client) healthTimeout() time.Duration {
	return millisOrDefault(c.conf.HealthTimeoutMS, 1000)
}

func millisOrDefault(ms, fallback int) time.Duration {
	if ms <= 0 {
		ms = fallback
	}
	return time.Duration(ms) * time.Millisecond
}
