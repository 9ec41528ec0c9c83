package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// IPC client configuration structs
// --------------------------------------------------------------------------

// SocketConf holds buffer settings shared by all socket transports.
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP-specific socket options (ignored by the unix backend).
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// ClientTransportConfig configures the byte-level channel to the service.
type ClientTransportConfig struct {
	// Endpoint is the address of the automation service. The format
	// depends on the backend: "host:port" for tcp, a socket path for unix.
	Endpoint string

	SocketConf
	TCPConf
}

// BreakerConfig configures the circuit breaker that gates every request.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures in the
	// closed state that trips the circuit open.
	FailureThreshold int
	// OpenTimeoutSec is how long the circuit stays open before a probe
	// request is allowed through (half-open).
	OpenTimeoutSec int
	// HalfOpenSuccesses is the number of consecutive successes in the
	// half-open state required to close the circuit again.
	HalfOpenSuccesses int
}

// AuthConfig configures the optional IPC authorization gate.
type AuthConfig struct {
	// Enabled blocks all operations until a token has been loaded.
	Enabled bool
	// TokenPath is the file the opaque auth token is read from at
	// connect time.
	TokenPath string
}

// ClientConfig holds all configuration parameters for the IPC client.
type ClientConfig struct {
	// Request timeouts in milliseconds. TimeoutMS is the default,
	// ScanTimeoutMS applies to desktop scans, HealthTimeoutMS to pings.
	TimeoutMS       int
	ScanTimeoutMS   int
	HealthTimeoutMS int

	// Connection lifecycle. ConnectRetries attempts are made, sleeping
	// ConnectBackoffMS*2^(attempt-1) between failures. ReconnectPauseMS
	// is the pause between disconnect and redial during auto-recovery.
	ConnectRetries   int
	ConnectBackoffMS int
	ReconnectPauseMS int

	Transport ClientTransportConfig
	Breaker   BreakerConfig
	Auth      AuthConfig

	// Logging configuration
	LogLevel string
}

// DefaultClientConfig returns the configuration matching the service's
// documented defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		TimeoutMS:        5000,
		ScanTimeoutMS:    10000,
		HealthTimeoutMS:  1000,
		ConnectRetries:   4,
		ConnectBackoffMS: 500,
		ReconnectPauseMS: 100,
		Breaker: BreakerConfig{
			FailureThreshold:  5,
			OpenTimeoutSec:    30,
			HalfOpenSuccesses: 2,
		},
		LogLevel: "info",
	}
}

// String returns a formatted string representation of the configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("IPC Client")
	addField("Timeout", fmt.Sprintf("%d ms", c.TimeoutMS))
	addField("Scan Timeout", fmt.Sprintf("%d ms", c.ScanTimeoutMS))
	addField("Health Timeout", fmt.Sprintf("%d ms", c.HealthTimeoutMS))
	addField("Connect Retries", strconv.Itoa(c.ConnectRetries))
	addField("Connect Backoff", fmt.Sprintf("%d ms", c.ConnectBackoffMS))
	addField("Reconnect Pause", fmt.Sprintf("%d ms", c.ReconnectPauseMS))

	addSection("Transport")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Write Buffer", fmt.Sprintf("%d bytes", c.Transport.WriteBufferSize))
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.Transport.ReadBufferSize))
	addField("TCP NoDelay", strconv.FormatBool(c.Transport.TCPNoDelay))
	addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))
	addField("TCP Linger", fmt.Sprintf("%d sec", c.Transport.TCPLingerSec))

	addSection("Circuit Breaker")
	addField("Failure Threshold", strconv.Itoa(c.Breaker.FailureThreshold))
	addField("Open Timeout", fmt.Sprintf("%d sec", c.Breaker.OpenTimeoutSec))
	addField("Half-Open Successes", strconv.Itoa(c.Breaker.HalfOpenSuccesses))

	addSection("Authorization")
	addField("Enabled", strconv.FormatBool(c.Auth.Enabled))
	if c.Auth.Enabled {
		addField("Token Path", c.Auth.TokenPath)
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
