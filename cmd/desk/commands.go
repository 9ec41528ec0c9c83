package desk

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"

	"github.com/Flissel/Vibemind-sub001/ipc/common"
)

var (
	mouseCmd = &cobra.Command{
		Use:   "mouse",
		Short: "Prints the current cursor position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := ipcClient.GetMousePosition()
			if err != nil {
				return err
			}
			fmt.Println(formatMouse(pos))
			return nil
		},
	}
	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Enumerates all UI elements currently on the desktop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := ipcClient.ScanDesktop()
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(elements)
			}
			for i := range elements {
				fmt.Println(formatElement(&elements[i]))
			}
			fmt.Printf("%d elements\n", len(elements))
			return nil
		},
	}
	findCmd = &cobra.Command{
		Use:   "find [text]",
		Short: "Searches the desktop for an element matching the text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
			exactMatch, _ := cmd.Flags().GetBool("exact")

			elem, err := ipcClient.FindElement(args[0], caseSensitive, exactMatch)
			if err != nil {
				return err
			}
			if elem == nil {
				fmt.Println("no match")
				return nil
			}
			fmt.Println(formatElement(elem))
			return nil
		},
	}
	activateCmd = &cobra.Command{
		Use:   "activate",
		Short: "Switches the automation service into active mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipcClient.SetActive(); err != nil {
				return err
			}
			fmt.Println("service active")
			return nil
		},
	}
	standbyCmd = &cobra.Command{
		Use:   "standby",
		Short: "Switches the automation service into standby mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipcClient.SetStandby(); err != nil {
				return err
			}
			fmt.Println("service on standby")
			return nil
		},
	}
	focusCmd = &cobra.Command{
		Use:   "focus [window]",
		Short: "Brings the matching window to the foreground",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipcClient.FocusWindow(args[0], byTitle(cmd)); err != nil {
				return err
			}
			fmt.Println("focused")
			return nil
		},
	}
	closeCmd = &cobra.Command{
		Use:   "close [window]",
		Short: "Closes the matching window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipcClient.CloseWindow(args[0], byTitle(cmd)); err != nil {
				return err
			}
			fmt.Println("closed")
			return nil
		},
	}
	clickCmd = &cobra.Command{
		Use:   "click [window]",
		Short: "Sends a click to the matching window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipcClient.ClickWindow(args[0], byTitle(cmd)); err != nil {
				return err
			}
			fmt.Println("clicked")
			return nil
		},
	}
	resizeCmd = &cobra.Command{
		Use:   "resize [window] [x] [y] [width] [height]",
		Short: "Moves and resizes the matching window",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			geometry := make([]int32, 4)
			for i, arg := range args[1:] {
				v, err := strconv.ParseInt(arg, 10, 32)
				if err != nil {
					return fmt.Errorf("%s must be a number: %w", arg, err)
				}
				geometry[i] = int32(v)
			}
			if err := ipcClient.ResizeWindow(args[0], byTitle(cmd),
				geometry[0], geometry[1], geometry[2], geometry[3]); err != nil {
				return err
			}
			fmt.Println("resized")
			return nil
		},
	}
	windowCmd = &cobra.Command{
		Use:   "window",
		Short: "Prints the window currently holding focus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			win, err := ipcClient.GetActiveWindow()
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(win)
		},
	}
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Prints the client health snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A ping exercises the channel so the snapshot reflects reality
			if err := ipcClient.Ping(); err != nil {
				fmt.Fprintf(os.Stderr, "ping failed: %v\n", err)
			}

			prometheus, _ := cmd.Flags().GetBool("prometheus")
			if prometheus {
				metrics.WritePrometheus(os.Stdout, false)
				return nil
			}
			return json.NewEncoder(os.Stdout).Encode(ipcClient.HealthMetrics())
		},
	}
)

func init() {
	scanCmd.Flags().Bool("json", false, "Print elements as JSON")
	findCmd.Flags().Bool("case-sensitive", false, "Match case exactly")
	findCmd.Flags().Bool("exact", false, "Require the full text to match")
	healthCmd.Flags().Bool("prometheus", false, "Print process metrics in Prometheus text format")

	for _, c := range []*cobra.Command{focusCmd, closeCmd, clickCmd, resizeCmd} {
		c.Flags().Bool("by-title", false, "Match the window by title instead of by handle")
	}
}

func byTitle(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("by-title")
	return v
}

// Coordinates and sizes arrive as float32 from the service and are
// printed with one decimal place.

func formatMouse(pos common.MousePosition) string {
	return fmt.Sprintf("x=%.1f, y=%.1f, confidence=%.2f", pos.X, pos.Y, pos.Confidence)
}

func formatElement(elem *common.DesktopElement) string {
	return fmt.Sprintf("id=%d type=%s text=%q app=%s at=(%.1f,%.1f) size=%.1fx%.1f clickable=%v",
		elem.ID, elem.Type, elem.Text, elem.AppName,
		elem.X, elem.Y, elem.Width, elem.Height, elem.Clickable)
}
