package client

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flissel/Vibemind-sub001/ipc/codec"
	"github.com/Flissel/Vibemind-sub001/ipc/common"
	"github.com/Flissel/Vibemind-sub001/ipc/transport"
)

// --------------------------------------------------------------------------
// Test Doubles
// --------------------------------------------------------------------------

// fakeTransport is a scripted in-memory transport
type fakeTransport struct {
	mu          sync.Mutex
	connectErrs []error // popped per Connect call; empty means success
	connects    int
	disconnects int
	sends       int
	receives    int
	lastCmd     common.Command
	lastID      uint64

	sendErr   error
	receiveFn func(call int, cmd common.Command, requestID uint64) (*transport.Response, error)

	inFlight    int32
	maxInFlight int32
}

func (f *fakeTransport) Connect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	if len(f.connectErrs) > 0 {
		err := f.connectErrs[0]
		f.connectErrs = f.connectErrs[1:]
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTransport) SendCommand(cmd common.Command, requestID uint64, params []byte) error {
	f.mu.Lock()
	f.sends++
	f.lastCmd = cmd
	f.lastID = requestID
	err := f.sendErr
	f.mu.Unlock()

	if current := atomic.AddInt32(&f.inFlight, 1); current > atomic.LoadInt32(&f.maxInFlight) {
		atomic.StoreInt32(&f.maxInFlight, current)
	}
	return err
}

func (f *fakeTransport) ReceiveResponse(requestID uint64, timeout time.Duration) (*transport.Response, error) {
	defer atomic.AddInt32(&f.inFlight, -1)

	f.mu.Lock()
	f.receives++
	call := f.receives
	cmd := f.lastCmd
	fn := f.receiveFn
	f.mu.Unlock()

	if fn != nil {
		return fn(call, cmd, requestID)
	}
	return successResponse(cmd, requestID, make([]byte, codec.OffScanElements)), nil
}

func (f *fakeTransport) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	return nil
}

func (f *fakeTransport) Name() string { return "fake" }

// tokenProviderFunc adapts a function to the token.Provider interface
type tokenProviderFunc func() ([]byte, error)

func (f tokenProviderFunc) Load() ([]byte, error) { return f() }

// --------------------------------------------------------------------------
// Payload Builders (ABI offsets hardcoded on purpose)
// --------------------------------------------------------------------------

func successResponse(cmd common.Command, requestID uint64, payload []byte) *transport.Response {
	return &transport.Response{
		Header:  common.ResponseHeader{Command: cmd, RequestID: requestID, Status: common.StatusSuccess},
		Payload: payload,
	}
}

// scanPayload builds a scan response payload with elements carrying the
// given texts
func scanPayload(texts ...string) []byte {
	payload := make([]byte, codec.OffScanElements+len(texts)*codec.DesktopElementSize)
	binary.LittleEndian.PutUint32(payload[codec.OffElementCount:], uint32(len(texts)))
	for i, text := range texts {
		base := codec.OffScanElements + i*codec.DesktopElementSize
		binary.LittleEndian.PutUint64(payload[base:], uint64(i+1)) // id
		copy(payload[base+8:base+8+256], text)                     // text field
	}
	return payload
}

// windowPayload builds a get-active-window response payload
func windowPayload(title string) []byte {
	payload := make([]byte, codec.WindowDataSize)
	binary.LittleEndian.PutUint64(payload[0:], 0x1234) // hwnd
	copy(payload[8:8+256], title)                      // title field
	return payload
}

func newTestClient(conf common.ClientConfig, fake *fakeTransport) (*Client, *[]time.Duration) {
	c := New(conf, fake, nil, zerolog.Nop())
	sleeps := &[]time.Duration{}
	c.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return c, sleeps
}

// --------------------------------------------------------------------------
// Connection Lifecycle
// --------------------------------------------------------------------------

func TestConnectRetriesWithBackoff(t *testing.T) {
	fail := fmt.Errorf("%w: connection refused", common.ErrTransport)
	fake := &fakeTransport{connectErrs: []error{fail, fail, nil}}

	conf := common.DefaultClientConfig()
	conf.ConnectRetries = 3
	c, sleeps := newTestClient(conf, fake)

	require.NoError(t, c.Connect())
	assert.Equal(t, 3, fake.connects)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, time.Second}, *sleeps)
	assert.True(t, c.HealthMetrics().Connected)
}

func TestConnectGivesUpAfterMaxRetries(t *testing.T) {
	fail := fmt.Errorf("%w: connection refused", common.ErrTransport)
	fake := &fakeTransport{connectErrs: []error{fail, fail, fail}}

	conf := common.DefaultClientConfig()
	conf.ConnectRetries = 3
	c, sleeps := newTestClient(conf, fake)

	err := c.Connect()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, 3, fake.connects)
	// No sleep after the final attempt
	assert.Equal(t, []time.Duration{500 * time.Millisecond, time.Second}, *sleeps)
	assert.False(t, c.HealthMetrics().Connected)
}

// --------------------------------------------------------------------------
// Auto-Recovery
// --------------------------------------------------------------------------

func TestScanDesktopReconnectsOnceOnTimeout(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		if call == 1 {
			return nil, fmt.Errorf("%w: no response", common.ErrTimeout)
		}
		return successResponse(cmd, requestID, scanPayload("ok")), nil
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	elements, err := c.ScanDesktop()
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, "ok", elements[0].Text)

	health := c.HealthMetrics()
	assert.Equal(t, uint64(1), health.TotalReconnects, "exactly one reconnect")
	assert.Equal(t, uint64(2), health.TotalRequests)
	assert.Equal(t, uint64(1), health.FailedRequests)
	assert.Equal(t, 2, fake.connects, "initial connect plus one reconnect")
	assert.Equal(t, 1, fake.disconnects)
}

func TestScanDesktopGivesUpAfterSecondFailure(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		return nil, fmt.Errorf("%w: no response", common.ErrTimeout)
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	_, err := c.ScanDesktop()
	assert.ErrorIs(t, err, common.ErrTimeout)
	assert.Equal(t, uint64(1), c.HealthMetrics().TotalReconnects, "retry happens exactly once")
	assert.Equal(t, 2, fake.sends)
}

func TestGetMousePositionDoesNotReconnect(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		return nil, fmt.Errorf("%w: broken pipe", common.ErrTransport)
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	_, err := c.GetMousePosition()
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, uint64(0), c.HealthMetrics().TotalReconnects)
	assert.Equal(t, 1, fake.sends, "no retry for mouse position")
}

// --------------------------------------------------------------------------
// Circuit Breaker Integration
// --------------------------------------------------------------------------

func TestCircuitOpenRejectionStillCountsRequest(t *testing.T) {
	fake := &fakeTransport{}
	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	for i := 0; i < 5; i++ {
		c.brk.RecordFailure()
	}

	err := c.SetActive()
	assert.ErrorIs(t, err, common.ErrCircuitOpen)
	assert.Equal(t, 0, fake.sends, "rejected before the transport")
	assert.Equal(t, uint64(1), c.HealthMetrics().TotalRequests, "rejection still counts as a request")
	assert.Equal(t, "open", c.HealthMetrics().CircuitState)
}

func TestMalformedResponseDoesNotTripBreaker(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		return nil, fmt.Errorf("%w: frame too short", common.ErrMalformedResponse)
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	_, err := c.GetMousePosition()
	assert.ErrorIs(t, err, common.ErrMalformedResponse)
	assert.Equal(t, 0, c.brk.FailureCount(), "bytes arrived, channel is healthy")
	assert.Equal(t, uint64(1), c.HealthMetrics().FailedRequests)
}

// --------------------------------------------------------------------------
// Health Metrics
// --------------------------------------------------------------------------

func TestErrorRatePercent(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		if call == 2 {
			return nil, fmt.Errorf("%w: broken pipe", common.ErrTransport)
		}
		return successResponse(cmd, requestID, make([]byte, codec.OffScanElements)), nil
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	_, err := c.GetMousePosition()
	require.NoError(t, err)
	_, err = c.GetMousePosition()
	require.Error(t, err)
	_, err = c.GetMousePosition()
	require.NoError(t, err)

	health := c.HealthMetrics()
	assert.Equal(t, uint64(3), health.TotalRequests)
	assert.Equal(t, uint64(1), health.FailedRequests)
	assert.InDelta(t, 33.33, health.ErrorRatePercent, 0.01)
}

// --------------------------------------------------------------------------
// Authorization
// --------------------------------------------------------------------------

func TestAuthFailClosed(t *testing.T) {
	fake := &fakeTransport{}
	conf := common.DefaultClientConfig()
	conf.Auth.Enabled = true

	c := New(conf, fake, tokenProviderFunc(func() ([]byte, error) {
		return nil, errors.New("token file missing")
	}), zerolog.Nop())
	c.sleep = func(time.Duration) {}

	require.NoError(t, c.Connect())
	assert.False(t, c.IsAuthorized())

	_, err := c.GetMousePosition()
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 0, fake.sends, "blocked before the transport")
	assert.Equal(t, uint64(0), c.HealthMetrics().TotalRequests, "blocked before counting")

	health := c.HealthMetrics()
	assert.True(t, health.IPCAuthEnabled)
	require.NotNil(t, health.IPCAuthValid)
	assert.False(t, *health.IPCAuthValid)
}

func TestAuthTokenLoadedAtConnect(t *testing.T) {
	fake := &fakeTransport{}
	conf := common.DefaultClientConfig()
	conf.Auth.Enabled = true

	c := New(conf, fake, tokenProviderFunc(func() ([]byte, error) {
		return []byte("secret"), nil
	}), zerolog.Nop())
	c.sleep = func(time.Duration) {}

	require.NoError(t, c.Connect())
	assert.True(t, c.IsAuthorized())

	_, err := c.GetMousePosition()
	assert.NoError(t, err)
}

func TestAuthDisabledReportsNilValidity(t *testing.T) {
	fake := &fakeTransport{}
	c, _ := newTestClient(common.DefaultClientConfig(), fake)

	assert.True(t, c.IsAuthorized())
	assert.Nil(t, c.HealthMetrics().IPCAuthValid)
}

// --------------------------------------------------------------------------
// Response Handling
// --------------------------------------------------------------------------

func TestFindElementNotFound(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		return &transport.Response{
			Header: common.ResponseHeader{Command: cmd, RequestID: requestID, Status: common.StatusNotFound},
		}, nil
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	elem, err := c.FindElement("nothing", false, false)
	assert.NoError(t, err)
	assert.Nil(t, elem)
}

func TestRequestIDEchoMismatchIsProtocolError(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		return successResponse(cmd, requestID+7, nil), nil
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	_, err := c.GetMousePosition()
	assert.ErrorIs(t, err, common.ErrProtocol)
	assert.Equal(t, 1, c.brk.FailureCount())
}

func TestWindowOperationNotFound(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		return &transport.Response{
			Header: common.ResponseHeader{Command: cmd, RequestID: requestID, Status: common.StatusNotFound},
		}, nil
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	err := c.FocusWindow("no-such-window", true)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetActiveWindow(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		return successResponse(cmd, requestID, windowPayload("Untitled - Notepad")), nil
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	win, err := c.GetActiveWindow()
	require.NoError(t, err)
	assert.Equal(t, "Untitled - Notepad", win.Title)
	assert.Equal(t, uint64(0x1234), win.HWnd)
}

func TestScanDesktopPartialResult(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		// Advertise 3 elements but deliver bytes for 2
		payload := scanPayload("one", "two")
		binary.LittleEndian.PutUint32(payload[codec.OffElementCount:], 3)
		return successResponse(cmd, requestID, payload), nil
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	elements, err := c.ScanDesktop()
	require.NoError(t, err)
	require.Len(t, elements, 2, "partial scan succeeds with fewer elements")
	assert.Equal(t, "one", elements[0].Text)
	assert.Equal(t, "two", elements[1].Text)
}

func TestPingIsReadOnly(t *testing.T) {
	fake := &fakeTransport{}
	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	require.NoError(t, c.Ping())
	assert.Equal(t, common.CmdGetMousePos, fake.lastCmd, "health probe must not flip the service mode")
}

// --------------------------------------------------------------------------
// Serialized Wrapper
// --------------------------------------------------------------------------

func TestSerializedKeepsOneRequestInFlight(t *testing.T) {
	fake := &fakeTransport{}
	fake.receiveFn = func(call int, cmd common.Command, requestID uint64) (*transport.Response, error) {
		time.Sleep(2 * time.Millisecond)
		return successResponse(cmd, requestID, scanPayload("x")), nil
	}

	c, _ := newTestClient(common.DefaultClientConfig(), fake)
	require.NoError(t, c.Connect())

	s := NewSerialized(c)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ScanDesktop()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.maxInFlight), "never more than one in-flight request")
	assert.Equal(t, 8, fake.sends)
}
