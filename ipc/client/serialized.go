package client

import "github.com/Flissel/Vibemind-sub001/ipc/common"

// Serialized wraps a Client behind a single owner goroutine. Callers
// from any goroutine are funneled through a channel, which preserves the
// one-in-flight-request invariant without sprinkling locks over the
// client itself.
//
// After Close no further calls may be made.
type Serialized struct {
	client *Client
	calls  chan func()
}

// NewSerialized starts the owner goroutine and returns the wrapper.
func NewSerialized(c *Client) *Serialized {
	s := &Serialized{
		client: c,
		calls:  make(chan func()),
	}
	go func() {
		for fn := range s.calls {
			fn()
		}
	}()
	return s
}

// do runs fn on the owner goroutine and waits for it to finish.
func (s *Serialized) do(fn func()) {
	done := make(chan struct{})
	s.calls <- func() {
		defer close(done)
		fn()
	}
	<-done
}

// Close stops the owner goroutine once queued calls have drained.
func (s *Serialized) Close() {
	close(s.calls)
}

func (s *Serialized) Connect() (err error) {
	s.do(func() { err = s.client.Connect() })
	return
}

func (s *Serialized) Disconnect() (err error) {
	s.do(func() { err = s.client.Disconnect() })
	return
}

func (s *Serialized) GetMousePosition() (pos common.MousePosition, err error) {
	s.do(func() { pos, err = s.client.GetMousePosition() })
	return
}

func (s *Serialized) ScanDesktop() (elements []common.DesktopElement, err error) {
	s.do(func() { elements, err = s.client.ScanDesktop() })
	return
}

func (s *Serialized) FindElement(searchText string, caseSensitive, exactMatch bool) (elem *common.DesktopElement, err error) {
	s.do(func() { elem, err = s.client.FindElement(searchText, caseSensitive, exactMatch) })
	return
}

func (s *Serialized) SetActive() (err error) {
	s.do(func() { err = s.client.SetActive() })
	return
}

func (s *Serialized) SetStandby() (err error) {
	s.do(func() { err = s.client.SetStandby() })
	return
}

func (s *Serialized) FocusWindow(identifier string, byTitle bool) (err error) {
	s.do(func() { err = s.client.FocusWindow(identifier, byTitle) })
	return
}

func (s *Serialized) CloseWindow(identifier string, byTitle bool) (err error) {
	s.do(func() { err = s.client.CloseWindow(identifier, byTitle) })
	return
}

func (s *Serialized) ClickWindow(identifier string, byTitle bool) (err error) {
	s.do(func() { err = s.client.ClickWindow(identifier, byTitle) })
	return
}

func (s *Serialized) ResizeWindow(identifier string, byTitle bool, x, y, width, height int32) (err error) {
	s.do(func() { err = s.client.ResizeWindow(identifier, byTitle, x, y, width, height) })
	return
}

func (s *Serialized) GetActiveWindow() (win common.WindowData, err error) {
	s.do(func() { win, err = s.client.GetActiveWindow() })
	return
}

func (s *Serialized) Ping() (err error) {
	s.do(func() { err = s.client.Ping() })
	return
}

func (s *Serialized) IsAuthorized() (ok bool) {
	s.do(func() { ok = s.client.IsAuthorized() })
	return
}

// HealthMetrics reads the snapshot directly; it is already safe from any
// goroutine and must stay reachable while an operation is in flight.
func (s *Serialized) HealthMetrics() HealthMetrics {
	return s.client.HealthMetrics()
}
