package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/Flissel/Vibemind-sub001/ipc/common"
)

// --------------------------------------------------------------------------
// Record Decoding
// --------------------------------------------------------------------------

// DecodeMousePosition parses the 24-byte mouse position record at the
// given offset. NaN and Inf values pass through undisturbed; the codec
// does not judge them.
func DecodeMousePosition(buf []byte, offset int) (common.MousePosition, error) {
	if offset < 0 || len(buf)-offset < MousePositionSize {
		return common.MousePosition{}, fmt.Errorf(
			"%w: mouse position needs %d bytes at offset %d, buffer has %d",
			common.ErrMalformedResponse, MousePositionSize, offset, len(buf))
	}
	b := buf[offset:]
	return common.MousePosition{
		X:          getFloat32(b, 0),
		Y:          getFloat32(b, 4),
		Confidence: getFloat32(b, 8),
		Timestamp:  binary.LittleEndian.Uint64(b[16:24]),
	}, nil
}

// DecodeDesktopElement parses one 436-byte element record at the given
// offset. A buffer too short for a full record yields nil rather than an
// error: scans advertise a count up front, and tolerating a truncated
// tail lets a partial scan succeed with fewer elements than advertised.
func DecodeDesktopElement(buf []byte, offset int) *common.DesktopElement {
	if offset < 0 || len(buf)-offset < DesktopElementSize {
		return nil
	}
	b := buf[offset:]
	return &common.DesktopElement{
		ID:         binary.LittleEndian.Uint64(b[elemOffID : elemOffID+8]),
		Text:       decodeCString(b[elemOffText : elemOffText+textFieldSize]),
		AppName:    decodeCString(b[elemOffAppName : elemOffAppName+appNameFieldSize]),
		X:          getFloat32(b, elemOffX),
		Y:          getFloat32(b, elemOffY),
		Width:      getFloat32(b, elemOffWidth),
		Height:     getFloat32(b, elemOffHeight),
		Type:       common.ElementType(binary.LittleEndian.Uint32(b[elemOffType : elemOffType+4])),
		Clickable:  b[elemOffClickable] != 0,
		Confidence: getFloat32(b, elemOffConfidence),
	}
}

// DecodeWindowData parses one 676-byte window record at the given offset.
func DecodeWindowData(buf []byte, offset int) (common.WindowData, error) {
	if offset < 0 || len(buf)-offset < WindowDataSize {
		return common.WindowData{}, fmt.Errorf(
			"%w: window data needs %d bytes at offset %d, buffer has %d",
			common.ErrMalformedResponse, WindowDataSize, offset, len(buf))
	}
	b := buf[offset:]
	return common.WindowData{
		HWnd:        binary.LittleEndian.Uint64(b[winOffHWnd : winOffHWnd+8]),
		Title:       decodeCString(b[winOffTitle : winOffTitle+windowTitleFieldSize]),
		ClassName:   decodeCString(b[winOffClassName : winOffClassName+classNameFieldSize]),
		ProcessName: decodeCString(b[winOffProcessName : winOffProcessName+processNameFieldSize]),
		ProcessID:   binary.LittleEndian.Uint32(b[winOffProcessID : winOffProcessID+4]),
		Left:        getInt32(b, winOffLeft),
		Top:         getInt32(b, winOffTop),
		Right:       getInt32(b, winOffRight),
		Bottom:      getInt32(b, winOffBottom),
		IsVisible:   b[winOffIsVisible] != 0,
		IsMinimized: b[winOffIsMinimized] != 0,
		IsMaximized: b[winOffIsMaximized] != 0,
		ZOrder:      getInt32(b, winOffZOrder),
	}, nil
}

// DecodeElementCount reads the element count slot of a scan response
// payload. Fails when the payload is too short to carry the slot.
func DecodeElementCount(payload []byte) (uint32, error) {
	if len(payload) < OffElementCount+8 {
		return 0, fmt.Errorf(
			"%w: element count needs %d bytes, payload has %d",
			common.ErrMalformedResponse, OffElementCount+8, len(payload))
	}
	return binary.LittleEndian.Uint32(payload[OffElementCount : OffElementCount+4]), nil
}

// DecodeFindFound reads the found flag of a find response payload.
func DecodeFindFound(payload []byte) (bool, error) {
	if len(payload) < OffFindFound+8 {
		return false, fmt.Errorf(
			"%w: find result needs %d bytes, payload has %d",
			common.ErrMalformedResponse, OffFindFound+8, len(payload))
	}
	return payload[OffFindFound] != 0, nil
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// decodeCString extracts a string from a fixed-width field: the bytes up
// to the first NUL (or the whole field if none), UTF-8 decoded with
// replacement of invalid sequences. Never fails.
func decodeCString(field []byte) string {
	end := len(field)
	for i, c := range field {
		if c == 0 {
			end = i
			break
		}
	}
	return strings.ToValidUTF8(string(field[:end]), "�")
}

// putCString writes s into a fixed-width field, truncating at the field
// width. The remainder of the field stays zeroed, so any string shorter
// than the field is NUL-terminated on the wire.
func putCString(field []byte, s string) {
	copy(field, s)
}

func putBool(buf []byte, offset int, v bool) {
	if v {
		buf[offset] = 1
	}
}

func getFloat32(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func getInt32(buf []byte, offset int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}
