// Package tcp provides the TCP client transport backend. The Windows
// deployment of the automation service listens on a loopback TCP port;
// this backend also reaches a service on a remote host. Socket tuning
// (TCP_NODELAY, keepalive, linger, buffer sizes) comes from the
// transport configuration.
package tcp
