// Package cmd implements the command-line interface for the vibemind
// desktop automation client. It provides a hierarchical command structure
// for inspecting the desktop and driving window operations over IPC.
//
// The package is organized into several subpackages:
//
//   - desk: Commands for desktop operations (mouse, scan, find, window control, health)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See vibemind -help for a list of all commands.
package cmd
