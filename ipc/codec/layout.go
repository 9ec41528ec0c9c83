package codec

// Byte layout constants for the peer ABI. All records are little-endian
// and padded to 4- or 8-byte boundaries exactly as the native service
// packs them. None of these values may change independently of the peer.

// Frame headers.
const (
	// RequestHeaderSize is the fixed request header:
	// cmd_type:u32, pad:4, request_id:u64, param_len:u32, pad:4
	RequestHeaderSize = 24

	// ResponseHeaderSize is the fixed response header:
	// cmd_type:u32, pad:4, request_id:u64, status:u32, pad:4, timestamp_ms:u64
	ResponseHeaderSize = 32
)

// Record sizes.
const (
	MousePositionSize  = 24
	DesktopElementSize = 436
	WindowDataSize     = 676
)

// Payload offsets, relative to the start of the payload region (the
// byte after the 32-byte response header).
const (
	// The mouse position slot sits at the start of every response payload.
	OffMousePosition = 0
	// Scan responses: element_count:u32, pad:4 after the mouse slot,
	// then element_count DesktopElement records.
	OffElementCount = 24
	OffScanElements = 32
	// Find responses skip the mouse slot and the count slot:
	// found:bool, pad:7, then one DesktopElement when found.
	OffFindFound   = 32
	OffFindElement = 40
	// The active window record overlays the mouse position slot.
	OffActiveWindow = 0
)

// Fixed string field widths.
const (
	textFieldSize        = 256
	appNameFieldSize     = 128
	identifierFieldSize  = 256
	windowTitleFieldSize = 256
	classNameFieldSize   = 256
	processNameFieldSize = 128
)

// Command parameter block sizes.
const (
	// search_text:[256]byte, case_sensitive:bool, exact_match:bool
	FindElementParamsSize = identifierFieldSize + 2
	// identifier:[256]byte, by_title:bool
	WindowTargetParamsSize = identifierFieldSize + 1
	// identifier:[256]byte, by_title:bool, pad:3, x:i32, y:i32, width:i32, height:i32
	ResizeWindowParamsSize = identifierFieldSize + 4 + 16
)

// DesktopElement field offsets (record-relative).
const (
	elemOffID         = 0
	elemOffText       = 8
	elemOffAppName    = 264
	elemOffX          = 392
	elemOffY          = 396
	elemOffWidth      = 400
	elemOffHeight     = 404
	elemOffType       = 408
	elemOffClickable  = 412
	elemOffConfidence = 416
	// bytes 420..435 are reserved
)

// WindowData field offsets (record-relative).
const (
	winOffHWnd        = 0
	winOffTitle       = 8
	winOffClassName   = 264
	winOffProcessName = 520
	winOffProcessID   = 648
	winOffLeft        = 652
	winOffTop         = 656
	winOffRight       = 660
	winOffBottom      = 664
	winOffIsVisible   = 668
	winOffIsMinimized = 669
	winOffIsMaximized = 670
	winOffZOrder      = 672
)
