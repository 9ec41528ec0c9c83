package common

// This file defines the typed values parsed from the peer's fixed-layout
// wire records. The byte layouts themselves live in the codec package;
// everything above the codec works with these types only.

// ResponseHeader is the fixed 32-byte header preceding every response.
type ResponseHeader struct {
	Command     Command `json:"command"`
	RequestID   uint64  `json:"request_id"`
	Status      Status  `json:"status"`
	TimestampMS uint64  `json:"timestamp_ms"`
}

// MousePosition is the current cursor position as reported by the service.
type MousePosition struct {
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	Confidence float32 `json:"confidence"`
	Timestamp  uint64  `json:"timestamp"`
}

// DesktopElement is a single UI element found by a desktop scan.
type DesktopElement struct {
	ID         uint64      `json:"id"`
	Text       string      `json:"text"`
	AppName    string      `json:"app_name"`
	X          float32     `json:"x"`
	Y          float32     `json:"y"`
	Width      float32     `json:"width"`
	Height     float32     `json:"height"`
	Type       ElementType `json:"elem_type"`
	Clickable  bool        `json:"clickable"`
	Confidence float32     `json:"confidence"`
}

// WindowData describes a top-level window on the remote desktop.
type WindowData struct {
	HWnd        uint64 `json:"hwnd"`
	Title       string `json:"title"`
	ClassName   string `json:"class_name"`
	ProcessName string `json:"process_name"`
	ProcessID   uint32 `json:"process_id"`
	Left        int32  `json:"left"`
	Top         int32  `json:"top"`
	Right       int32  `json:"right"`
	Bottom      int32  `json:"bottom"`
	IsVisible   bool   `json:"is_visible"`
	IsMinimized bool   `json:"is_minimized"`
	IsMaximized bool   `json:"is_maximized"`
	ZOrder      int32  `json:"z_order"`
}
