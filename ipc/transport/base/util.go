package base

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// maxFrameSize caps the announced body length of an incoming frame. The
// largest legitimate response (a full desktop scan) stays well below
// this; anything larger means a corrupt stream.
const maxFrameSize = 16 << 20

// writeFrame writes one frame to the connection with the format:
// - 4 bytes: body length (uint32, little endian)
// - N bytes: body (request header + params, fixed ABI layout)
func writeFrame(conn net.Conn, body []byte) error {
	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, uint32(len(body)))

	b := net.Buffers{header, body}
	_, err := b.WriteTo(conn)
	return err
}

// readFrame reads one length-prefixed frame from the connection and
// returns its body.
func readFrame(conn net.Conn) ([]byte, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(conn, header); err != nil {
		return nil, err
	}

	length := binary.LittleEndian.Uint32(header)
	if length > maxFrameSize {
		return nil, fmt.Errorf("frame length %d exceeds maximum %d", length, maxFrameSize)
	}
	if length == 0 {
		return []byte{}, nil
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(conn, body); err != nil {
		return nil, err
	}
	return body, nil
}
