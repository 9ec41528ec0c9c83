package tcp

import (
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/Flissel/Vibemind-sub001/ipc/common"
	"github.com/Flissel/Vibemind-sub001/ipc/transport"
	"github.com/Flissel/Vibemind-sub001/ipc/transport/base"
)

// clientConnector implements the base.IClientConnector interface for TCP
// sockets. This is the backend used on Windows, where the automation
// service listens on the loopback interface.
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) Name() string {
	return "tcp"
}

func (c *clientConnector) Dial(endpoint string) (net.Conn, error) {
	return net.Dial("tcp", endpoint)
}

func (c *clientConnector) Tune(conn net.Conn, conf common.ClientTransportConfig) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return fmt.Errorf("expected TCP connection, got %T", conn)
	}

	if err := tcpConn.SetNoDelay(conf.TCPNoDelay); err != nil {
		return fmt.Errorf("failed to set TCP_NODELAY: %v", err)
	}

	if conf.WriteBufferSize > 0 {
		if err := tcpConn.SetWriteBuffer(conf.WriteBufferSize); err != nil {
			return fmt.Errorf("failed to set write buffer: %v", err)
		}
	}

	if conf.ReadBufferSize > 0 {
		if err := tcpConn.SetReadBuffer(conf.ReadBufferSize); err != nil {
			return fmt.Errorf("failed to set read buffer: %v", err)
		}
	}

	if conf.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return fmt.Errorf("failed to enable keepalive: %v", err)
		}
		if err := tcpConn.SetKeepAlivePeriod(time.Duration(conf.TCPKeepAliveSec) * time.Second); err != nil {
			return fmt.Errorf("failed to set keepalive period: %v", err)
		}
	}

	if conf.TCPLingerSec > 0 {
		if err := tcpConn.SetLinger(conf.TCPLingerSec); err != nil {
			return fmt.Errorf("failed to set linger: %v", err)
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Client Transport Factory Method
// --------------------------------------------------------------------------

// NewTCPClientTransport creates a new TCP client transport
func NewTCPClientTransport(conf common.ClientTransportConfig, logger zerolog.Logger) transport.IClientTransport {
	return base.NewClientTransport(&clientConnector{}, conf, logger)
}
