package client

import (
	"fmt"

	"github.com/Flissel/Vibemind-sub001/ipc/codec"
	"github.com/Flissel/Vibemind-sub001/ipc/common"
)

// --------------------------------------------------------------------------
// Public Operations
// --------------------------------------------------------------------------

// GetMousePosition returns the current cursor position.
func (c *Client) GetMousePosition() (common.MousePosition, error) {
	resp, err := c.invoke(common.CmdGetMousePos, nil, c.timeout())
	if err != nil {
		return common.MousePosition{}, err
	}
	if err := checkStatus(common.CmdGetMousePos, resp.Header); err != nil {
		return common.MousePosition{}, err
	}

	pos, err := codec.DecodeMousePosition(resp.Payload, codec.OffMousePosition)
	if err != nil {
		c.logger.Error().Err(err).Int("payload_len", len(resp.Payload)).Msg("mouse position decode failed")
		return common.MousePosition{}, err
	}
	return pos, nil
}

// ScanDesktop enumerates the UI elements currently visible on the
// desktop. A truncated response yields the elements that fit; the scan
// does not fail on a short tail. Transport failures trigger one
// reconnect-and-retry before giving up.
func (c *Client) ScanDesktop() ([]common.DesktopElement, error) {
	resp, err := c.invokeWithRecovery(common.CmdScanElements, nil, c.scanTimeout())
	if err != nil {
		return nil, err
	}
	if err := checkStatus(common.CmdScanElements, resp.Header); err != nil {
		return nil, err
	}

	count, err := codec.DecodeElementCount(resp.Payload)
	if err != nil {
		c.logger.Error().Err(err).Int("payload_len", len(resp.Payload)).Msg("scan response decode failed")
		return nil, err
	}

	// Cap the allocation at what the payload can actually hold
	capacity := (len(resp.Payload) - codec.OffScanElements) / codec.DesktopElementSize
	if capacity > int(count) {
		capacity = int(count)
	}
	if capacity < 0 {
		capacity = 0
	}

	elements := make([]common.DesktopElement, 0, capacity)
	for i := 0; i < int(count); i++ {
		elem := codec.DecodeDesktopElement(resp.Payload, codec.OffScanElements+i*codec.DesktopElementSize)
		if elem == nil {
			c.logger.Warn().
				Uint32("advertised", count).
				Int("decoded", len(elements)).
				Msg("scan response truncated, returning partial result")
			break
		}
		elements = append(elements, *elem)
	}

	c.logger.Debug().Int("elements", len(elements)).Msg("desktop scan complete")
	return elements, nil
}

// FindElement searches the desktop for an element matching searchText.
// A nil element with a nil error means the service found nothing.
// Transport failures trigger one reconnect-and-retry before giving up.
func (c *Client) FindElement(searchText string, caseSensitive, exactMatch bool) (*common.DesktopElement, error) {
	params := codec.EncodeFindElementParams(searchText, caseSensitive, exactMatch)

	resp, err := c.invokeWithRecovery(common.CmdFindElement, params, c.timeout())
	if err != nil {
		return nil, err
	}
	if resp.Header.Status == common.StatusNotFound {
		return nil, nil
	}
	if err := checkStatus(common.CmdFindElement, resp.Header); err != nil {
		return nil, err
	}

	found, err := codec.DecodeFindFound(resp.Payload)
	if err != nil {
		c.logger.Error().Err(err).Int("payload_len", len(resp.Payload)).Msg("find response decode failed")
		return nil, err
	}
	if !found {
		return nil, nil
	}

	elem := codec.DecodeDesktopElement(resp.Payload, codec.OffFindElement)
	if elem == nil {
		// found was set but the record is missing or truncated
		err := fmt.Errorf("%w: find result needs %d bytes at offset %d, payload has %d",
			common.ErrMalformedResponse, codec.DesktopElementSize, codec.OffFindElement, len(resp.Payload))
		c.logger.Error().Err(err).Msg("find response decode failed")
		return nil, err
	}
	return elem, nil
}

// SetActive switches the automation service into active mode.
func (c *Client) SetActive() error {
	return c.statusOnly(common.CmdSetActive, nil)
}

// SetStandby switches the automation service into standby mode.
func (c *Client) SetStandby() error {
	return c.statusOnly(common.CmdSetStandby, nil)
}

// FocusWindow brings the window matching the identifier to the
// foreground. With byTitle the identifier is matched against window
// titles, otherwise it is parsed as a window handle.
func (c *Client) FocusWindow(identifier string, byTitle bool) error {
	return c.statusOnly(common.CmdFocusWindow, codec.EncodeWindowTargetParams(identifier, byTitle))
}

// CloseWindow closes the window matching the identifier.
func (c *Client) CloseWindow(identifier string, byTitle bool) error {
	return c.statusOnly(common.CmdCloseWindow, codec.EncodeWindowTargetParams(identifier, byTitle))
}

// ClickWindow sends a click to the window matching the identifier.
func (c *Client) ClickWindow(identifier string, byTitle bool) error {
	return c.statusOnly(common.CmdClickWindow, codec.EncodeWindowTargetParams(identifier, byTitle))
}

// ResizeWindow moves and resizes the window matching the identifier.
func (c *Client) ResizeWindow(identifier string, byTitle bool, x, y, width, height int32) error {
	return c.statusOnly(common.CmdResizeWindow, codec.EncodeResizeWindowParams(identifier, byTitle, x, y, width, height))
}

// GetActiveWindow returns the window currently holding focus.
func (c *Client) GetActiveWindow() (common.WindowData, error) {
	resp, err := c.invoke(common.CmdGetActiveWindow, nil, c.timeout())
	if err != nil {
		return common.WindowData{}, err
	}
	if err := checkStatus(common.CmdGetActiveWindow, resp.Header); err != nil {
		return common.WindowData{}, err
	}

	win, err := codec.DecodeWindowData(resp.Payload, codec.OffActiveWindow)
	if err != nil {
		c.logger.Error().Err(err).Int("payload_len", len(resp.Payload)).Msg("window data decode failed")
		return common.WindowData{}, err
	}
	return win, nil
}

// Ping performs a cheap read-only round trip with the health-check
// timeout, verifying the service is responsive.
func (c *Client) Ping() error {
	resp, err := c.invoke(common.CmdGetMousePos, nil, c.healthTimeout())
	if err != nil {
		return err
	}
	return checkStatus(common.CmdGetMousePos, resp.Header)
}

// statusOnly runs an operation whose response carries no payload worth
// decoding: the mapped status is the whole result.
func (c *Client) statusOnly(cmd common.Command, params []byte) error {
	resp, err := c.invoke(cmd, params, c.timeout())
	if err != nil {
		return err
	}
	return checkStatus(cmd, resp.Header)
}
