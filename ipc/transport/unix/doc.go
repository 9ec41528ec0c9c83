// Package unix provides the Unix domain socket client transport backend
// used on Linux and macOS, where the automation service exposes a socket
// file instead of a TCP port.
package unix
