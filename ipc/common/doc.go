// Package common contains the protocol vocabulary shared across the IPC
// subsystem: command, status and element type enumerations, the typed
// records parsed from the wire, the client configuration structs, and
// the closed set of sentinel errors.
//
// The numeric values of the enumerations are part of the peer ABI and
// must match the native service exactly. The byte layouts of the wire
// records are owned by the codec package; common only defines the typed
// values the rest of the system works with.
package common
