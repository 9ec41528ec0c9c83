// Package client implements the IPC client for the desktop automation
// service: connection lifecycle with exponential backoff, the fail-closed
// authorization gate, command dispatch through the circuit breaker,
// response decoding via the codec, and health/metrics reporting.
//
// Failure semantics: every expected failure (I/O error, timeout, circuit
// rejection, malformed response, missing auth token, service-reported
// error) is returned as an error wrapping one of the sentinels in the
// common package. Nothing panics in normal operation, and a parse error
// never tears the connection down on its own.
//
// Usage Example:
//
//	conf := common.DefaultClientConfig()
//	conf.Transport.Endpoint = "/run/vibemind/ipc.sock"
//
//	tr := unix.NewUnixClientTransport(conf.Transport, logger)
//	c := client.New(conf, tr, nil, logger)
//
//	if err := c.Connect(); err != nil {
//		// service not reachable
//	}
//	defer c.Disconnect()
//
//	elements, err := c.ScanDesktop()
//	elem, err := c.FindElement("notepad", false, false)
//
// Thread Safety:
//
//	A Client supports one in-flight request and is single-owner. For
//	concurrent callers, wrap it: client.NewSerialized(c) funnels all
//	calls through one goroutine and preserves the invariant.
package client
