package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewWakeCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "wake",
		Short: "Wake the room display",
		RunE: func(cmd *cobra.Command, args []string) error {
			if result := deps.Services.Resolver.Wake(cmd.Context()); !result.Success {
				return fmt.Errorf("wake tap failed")
			}
			fmt.Fprintln(deps.Out, "display woken")
			return nil
		},
	}
}

func NewHomeCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Send the device to its home screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			if result := deps.Services.Resolver.Home(cmd.Context()); !result.Success {
				return fmt.Errorf("go_home failed")
			}
			return nil
		},
	}
}

func NewMuteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "mute",
		Short: "Toggle the active meeting's mute state",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := deps.Services.Resolver.ToggleMute(cmd.Context())
			fmt.Fprintf(deps.Out, "muted=%v\n", state.Muted)
			return nil
		},
	}
}

func NewEndCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "Leave the active meeting",
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.Services.Resolver.EndCall(cmd.Context())
		},
	}
}
