package desk

import (
	"github.com/spf13/cobra"

	"github.com/Flissel/Vibemind-sub001/cmd/util"
	"github.com/Flissel/Vibemind-sub001/ipc/client"
)

var (
	ipcClient *client.Client

	// DesktopCommands represents the desktop automation command group
	DesktopCommands = &cobra.Command{
		Use:                "desk",
		Short:              "Interact with the desktop automation service",
		PersistentPreRunE:  setupDesktopClient,
		PersistentPostRunE: teardownDesktopClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common IPC flags to the desk command
	util.SetupIPCClientFlags(DesktopCommands)

	// Add subcommands
	DesktopCommands.AddCommand(mouseCmd)
	DesktopCommands.AddCommand(scanCmd)
	DesktopCommands.AddCommand(findCmd)
	DesktopCommands.AddCommand(activateCmd)
	DesktopCommands.AddCommand(standbyCmd)
	DesktopCommands.AddCommand(focusCmd)
	DesktopCommands.AddCommand(closeCmd)
	DesktopCommands.AddCommand(clickCmd)
	DesktopCommands.AddCommand(resizeCmd)
	DesktopCommands.AddCommand(windowCmd)
	DesktopCommands.AddCommand(healthCmd)
}

// setupDesktopClient builds the IPC client and connects it
func setupDesktopClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()
	logger := util.NewLogger(config.LogLevel)

	t, err := util.GetTransport(config.Transport, logger)
	if err != nil {
		return err
	}

	ipcClient = client.New(*config, t, util.GetTokenProvider(config.Auth), logger)
	return ipcClient.Connect()
}

func teardownDesktopClient(_ *cobra.Command, _ []string) error {
	if ipcClient == nil {
		return nil
	}
	return ipcClient.Disconnect()
}
