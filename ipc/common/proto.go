package common

// --------------------------------------------------------------------------
// Command Definition
// --------------------------------------------------------------------------

// Command identifies a request type understood by the automation service.
// The numeric values are part of the peer ABI and must not be reordered.
type Command uint32

const (
	CmdUnknown         Command = 0
	CmdGetMousePos     Command = 1
	CmdScanElements    Command = 2
	CmdFindElement     Command = 3
	CmdSetActive       Command = 4
	CmdSetStandby      Command = 5
	CmdFocusWindow     Command = 6
	CmdCloseWindow     Command = 7
	CmdResizeWindow    Command = 8
	CmdGetActiveWindow Command = 9
	CmdClickWindow     Command = 10
)

// String returns the string representation of a Command.
func (c Command) String() string {
	switch c {
	case CmdGetMousePos:
		return "getMousePos"
	case CmdScanElements:
		return "scanElements"
	case CmdFindElement:
		return "findElement"
	case CmdSetActive:
		return "setActive"
	case CmdSetStandby:
		return "setStandby"
	case CmdFocusWindow:
		return "focusWindow"
	case CmdCloseWindow:
		return "closeWindow"
	case CmdResizeWindow:
		return "resizeWindow"
	case CmdGetActiveWindow:
		return "getActiveWindow"
	case CmdClickWindow:
		return "clickWindow"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Status Definition
// --------------------------------------------------------------------------

// Status is the result code the service writes into every response header.
type Status uint32

const (
	StatusSuccess        Status = 0
	StatusError          Status = 1
	StatusNotFound       Status = 2
	StatusInvalidCommand Status = 3
	StatusInternalError  Status = 4
	StatusNotAuthorized  Status = 5
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusNotFound:
		return "notFound"
	case StatusInvalidCommand:
		return "invalidCommand"
	case StatusInternalError:
		return "internalError"
	case StatusNotAuthorized:
		return "notAuthorized"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Element Type Definition
// --------------------------------------------------------------------------

// ElementType classifies a desktop element reported by a scan.
type ElementType uint32

const (
	ElemUnknown  ElementType = 0
	ElemButton   ElementType = 1
	ElemText     ElementType = 2
	ElemInput    ElementType = 3
	ElemLink     ElementType = 4
	ElemImage    ElementType = 5
	ElemMenu     ElementType = 6
	ElemCheckbox ElementType = 7
	ElemWindow   ElementType = 8
)

// String returns the string representation of an ElementType.
func (t ElementType) String() string {
	switch t {
	case ElemButton:
		return "button"
	case ElemText:
		return "text"
	case ElemInput:
		return "input"
	case ElemLink:
		return "link"
	case ElemImage:
		return "image"
	case ElemMenu:
		return "menu"
	case ElemCheckbox:
		return "checkbox"
	case ElemWindow:
		return "window"
	default:
		return "unknown"
	}
}
