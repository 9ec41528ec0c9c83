package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/Flissel/Vibemind-sub001/ipc/common"
)

// --------------------------------------------------------------------------
// Request Encoding
// --------------------------------------------------------------------------

// EncodeRequest builds the on-wire command frame: the fixed 24-byte
// request header followed by the command-specific parameter block. The
// params are passed through untouched; semantic validation is the
// caller's concern.
func EncodeRequest(cmd common.Command, requestID uint64, params []byte) []byte {
	buf := make([]byte, RequestHeaderSize+len(params))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(cmd))
	binary.LittleEndian.PutUint64(buf[8:16], requestID)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(params)))
	copy(buf[RequestHeaderSize:], params)
	return buf
}

// --------------------------------------------------------------------------
// Parameter Encoding
// --------------------------------------------------------------------------

// EncodeFindElementParams packs the FIND_ELEMENT parameter block.
// Over-long search text is truncated at the 256-byte field width.
func EncodeFindElementParams(searchText string, caseSensitive, exactMatch bool) []byte {
	buf := make([]byte, FindElementParamsSize)
	putCString(buf[0:identifierFieldSize], searchText)
	putBool(buf, identifierFieldSize, caseSensitive)
	putBool(buf, identifierFieldSize+1, exactMatch)
	return buf
}

// EncodeWindowTargetParams packs the parameter block shared by
// FOCUS_WINDOW, CLOSE_WINDOW and CLICK_WINDOW: a window identifier
// (title or handle string) plus the by_title flag.
func EncodeWindowTargetParams(identifier string, byTitle bool) []byte {
	buf := make([]byte, WindowTargetParamsSize)
	putCString(buf[0:identifierFieldSize], identifier)
	putBool(buf, identifierFieldSize, byTitle)
	return buf
}

// EncodeResizeWindowParams packs the RESIZE_WINDOW parameter block.
func EncodeResizeWindowParams(identifier string, byTitle bool, x, y, width, height int32) []byte {
	buf := make([]byte, ResizeWindowParamsSize)
	putCString(buf[0:identifierFieldSize], identifier)
	putBool(buf, identifierFieldSize, byTitle)
	// 3 bytes padding for 4-byte alignment of the geometry block
	off := identifierFieldSize + 4
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(x))
	binary.LittleEndian.PutUint32(buf[off+4:off+8], uint32(y))
	binary.LittleEndian.PutUint32(buf[off+8:off+12], uint32(width))
	binary.LittleEndian.PutUint32(buf[off+12:off+16], uint32(height))
	return buf
}

// --------------------------------------------------------------------------
// Response Header Decoding
// --------------------------------------------------------------------------

// DecodeResponseHeader parses the fixed 32-byte response header. Any
// buffer shorter than 32 bytes is a hard parse failure, never a partial
// result.
func DecodeResponseHeader(buf []byte) (common.ResponseHeader, error) {
	if len(buf) < ResponseHeaderSize {
		return common.ResponseHeader{}, fmt.Errorf(
			"%w: response header needs %d bytes, got %d",
			common.ErrMalformedResponse, ResponseHeaderSize, len(buf))
	}
	return common.ResponseHeader{
		Command:     common.Command(binary.LittleEndian.Uint32(buf[0:4])),
		RequestID:   binary.LittleEndian.Uint64(buf[8:16]),
		Status:      common.Status(binary.LittleEndian.Uint32(buf[16:20])),
		TimestampMS: binary.LittleEndian.Uint64(buf[24:32]),
	}, nil
}
