package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Flissel/Vibemind-sub001/cmd/desk"
	"github.com/Flissel/Vibemind-sub001/cmd/util"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "vibemind",
		Short: "client for the desktop automation service",
		Long: fmt.Sprintf(`vibemind (v%s)

A binary IPC client for the desktop automation service: inspect the
desktop, search for UI elements and drive window operations over a
tcp or unix socket channel.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of vibemind",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vibemind v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(desk.DesktopCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
