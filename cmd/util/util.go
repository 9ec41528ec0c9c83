package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Flissel/Vibemind-sub001/ipc/common"
	"github.com/Flissel/Vibemind-sub001/ipc/transport"
	"github.com/Flissel/Vibemind-sub001/ipc/transport/tcp"
	"github.com/Flissel/Vibemind-sub001/ipc/transport/unix"
	"github.com/Flissel/Vibemind-sub001/pkg/token"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupIPCClientFlags adds common IPC connection flags to a command
func SetupIPCClientFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.PersistentFlags().Int(key, 5000, WrapString("Per-request timeout in milliseconds"))

	key = "scan-timeout"
	cmd.PersistentFlags().Int(key, 10000, WrapString("Timeout for desktop scans in milliseconds"))

	key = "health-timeout"
	cmd.PersistentFlags().Int(key, 1000, WrapString("Timeout for health-check pings in milliseconds"))

	key = "connect-retries"
	cmd.PersistentFlags().Int(key, 4, WrapString("How many times to attempt the initial connect"))

	key = "connect-backoff"
	cmd.PersistentFlags().Int(key, 500, WrapString("Base backoff between connect attempts in milliseconds, doubled per attempt"))

	key = "transport-endpoint"
	cmd.PersistentFlags().String(key, "localhost:5555", WrapString("Address of the automation service: host:port for tcp, socket path for unix"))

	key = "transport-write-buffer"
	cmd.PersistentFlags().Int(key, 512, WrapString("The size of the write buffer for the transport (in KB)"))

	key = "transport-read-buffer"
	cmd.PersistentFlags().Int(key, 512, WrapString("The size of the read buffer for the transport (in KB)"))

	key = "transport-tcp-nodelay"
	cmd.PersistentFlags().Bool(key, true, WrapString("Whether to enable TCP_NODELAY for the transport (tcp only)"))

	key = "transport-tcp-keepalive"
	cmd.PersistentFlags().Int(key, 0, WrapString("The keepalive interval for the transport (in seconds, tcp only)"))

	key = "transport-tcp-linger"
	cmd.PersistentFlags().Int(key, 0, WrapString("The linger time for the transport (in seconds, tcp only)"))

	key = "breaker-failure-threshold"
	cmd.PersistentFlags().Int(key, 5, WrapString("Consecutive failures before the circuit breaker opens"))

	key = "breaker-open-timeout"
	cmd.PersistentFlags().Int(key, 30, WrapString("Seconds the circuit stays open before probing again"))

	key = "auth-enabled"
	cmd.PersistentFlags().Bool(key, false, WrapString("Whether to require an IPC auth token"))

	key = "auth-token-path"
	cmd.PersistentFlags().String(key, "", WrapString("Path to the file holding the IPC auth token"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("Log level (trace, debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("vibemind")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	conf := &common.ClientConfig{
		TimeoutMS:        viper.GetInt("timeout"),
		ScanTimeoutMS:    viper.GetInt("scan-timeout"),
		HealthTimeoutMS:  viper.GetInt("health-timeout"),
		ConnectRetries:   viper.GetInt("connect-retries"),
		ConnectBackoffMS: viper.GetInt("connect-backoff"),
		ReconnectPauseMS: 100,
		Transport: common.ClientTransportConfig{
			Endpoint: viper.GetString("transport-endpoint"),
			SocketConf: common.SocketConf{
				WriteBufferSize: viper.GetInt("transport-write-buffer") * 1024,
				ReadBufferSize:  viper.GetInt("transport-read-buffer") * 1024,
			},
			TCPConf: common.TCPConf{
				TCPNoDelay:      viper.GetBool("transport-tcp-nodelay"),
				TCPKeepAliveSec: viper.GetInt("transport-tcp-keepalive"),
				TCPLingerSec:    viper.GetInt("transport-tcp-linger"),
			},
		},
		Breaker: common.BreakerConfig{
			FailureThreshold:  viper.GetInt("breaker-failure-threshold"),
			OpenTimeoutSec:    viper.GetInt("breaker-open-timeout"),
			HalfOpenSuccesses: 2,
		},
		Auth: common.AuthConfig{
			Enabled:   viper.GetBool("auth-enabled"),
			TokenPath: viper.GetString("auth-token-path"),
		},
		LogLevel: viper.GetString("log-level"),
	}

	return conf
}

// GetTransport creates transport based on configuration
func GetTransport(conf common.ClientTransportConfig, logger zerolog.Logger) (transport.IClientTransport, error) {
	switch viper.GetString("transport") {
	case "tcp":
		return tcp.NewTCPClientTransport(conf, logger), nil
	case "unix":
		return unix.NewUnixClientTransport(conf, logger), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// GetTokenProvider creates the auth token source, or nil when auth is off
func GetTokenProvider(conf common.AuthConfig) token.Provider {
	if !conf.Enabled {
		return nil
	}
	return token.NewFileProvider(conf.TokenPath)
}

// NewLogger creates a console logger honoring the configured level
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
