package unix

import (
	"fmt"
	"net"

	"github.com/rs/zerolog"

	"github.com/Flissel/Vibemind-sub001/ipc/common"
	"github.com/Flissel/Vibemind-sub001/ipc/transport"
	"github.com/Flissel/Vibemind-sub001/ipc/transport/base"
)

// clientConnector implements the base.IClientConnector interface for Unix
// domain sockets, the backend used on Linux and macOS.
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) Name() string {
	return "unix"
}

func (c *clientConnector) Dial(endpoint string) (net.Conn, error) {
	return net.Dial("unix", endpoint)
}

func (c *clientConnector) Tune(conn net.Conn, conf common.ClientTransportConfig) error {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return fmt.Errorf("expected unix connection, got %T", conn)
	}

	if conf.WriteBufferSize > 0 {
		if err := unixConn.SetWriteBuffer(conf.WriteBufferSize); err != nil {
			return fmt.Errorf("failed to set write buffer: %v", err)
		}
	}

	if conf.ReadBufferSize > 0 {
		if err := unixConn.SetReadBuffer(conf.ReadBufferSize); err != nil {
			return fmt.Errorf("failed to set read buffer: %v", err)
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Client Transport Factory Method
// --------------------------------------------------------------------------

// NewUnixClientTransport creates a new Unix socket client transport
func NewUnixClientTransport(conf common.ClientTransportConfig, logger zerolog.Logger) transport.IClientTransport {
	return base.NewClientTransport(&clientConnector{}, conf, logger)
}
