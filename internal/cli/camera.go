package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raja-blip/onetap-remote/internal/resolver"
)

func NewCameraCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:       "camera <toggle|up|down|left|right|reset|zoom-in|zoom-out|focus>",
		Short:     "Toggle or steer the meeting camera",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"toggle", "up", "down", "left", "right", "reset", "zoom-in", "zoom-out", "focus"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res := deps.Services.Resolver

			switch args[0] {
			case "toggle":
				state := res.ToggleCamera(ctx)
				fmt.Fprintf(deps.Out, "camera=%v\n", state.CameraOn)
			case "up", "down", "left", "right", "reset":
				if result := res.MoveCamera(ctx, resolver.CameraDirection(args[0])); !result.Success {
					return fmt.Errorf("camera %s failed", args[0])
				}
			case "zoom-in", "zoom-out":
				level, result := res.ZoomCamera(ctx, args[0] == "zoom-in")
				if !result.Success {
					return fmt.Errorf("camera zoom failed")
				}
				fmt.Fprintf(deps.Out, "zoom=%d\n", level)
			case "focus":
				mode, result := res.ToggleFocusMode(ctx)
				if !result.Success {
					return fmt.Errorf("focus mode toggle failed")
				}
				fmt.Fprintf(deps.Out, "focus mode=%d\n", mode)
			default:
				return fmt.Errorf("unknown camera action %q", args[0])
			}
			return nil
		},
	}
}
