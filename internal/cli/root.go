// Package cli exposes the room controls as terminal commands, for bench
// testing a Bridge/Launcher pair without the touch UI.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/raja-blip/onetap-remote/internal/bootstrap"
)

// Dependencies is the wired backend the commands run against.
type Dependencies struct {
	Services bootstrap.Services
	Sink     *ConsoleSink
	Out      io.Writer
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "onetapctl",
		Short: "Control a meeting-room device from the terminal",
		Long:  "onetapctl drives the same Bridge and Launcher services as the OneTap touch UI: wake the panel, join and end meetings, steer the camera, and manage connection settings.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			deps.Sink.Verbose = verbose
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print per-command dispatch traces")

	rootCmd.AddCommand(NewStatusCmd(deps))
	rootCmd.AddCommand(NewWakeCmd(deps))
	rootCmd.AddCommand(NewHomeCmd(deps))
	rootCmd.AddCommand(NewMuteCmd(deps))
	rootCmd.AddCommand(NewCameraCmd(deps))
	rootCmd.AddCommand(NewEndCmd(deps))
	rootCmd.AddCommand(NewJoinCmd(deps))
	rootCmd.AddCommand(NewCalendarCmd(deps))
	rootCmd.AddCommand(NewInstantCmd(deps))
	rootCmd.AddCommand(NewCastCmd(deps))
	rootCmd.AddCommand(NewScanCmd(deps))
	rootCmd.AddCommand(NewSettingsCmd(deps))

	return rootCmd
}
