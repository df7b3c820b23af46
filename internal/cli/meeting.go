package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

func NewJoinCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "join <meeting-url>",
		Short: "Open a meeting link on the device and run the join sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res := deps.Services.Resolver

			platform, result := res.LaunchMeeting(ctx, args[0])
			if !result.Success {
				return fmt.Errorf("meeting launch failed")
			}
			fmt.Fprintf(deps.Out, "launched %s meeting, waiting for the pre-join screen\n", platform)

			report, err := res.JoinAssist(ctx, platform)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Out, "joined %s meeting (signed in: %v)\n", report.Platform, report.SignedIn)
			return nil
		},
	}
}

func NewCalendarCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "List today's meetings from the Launcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			meetings, err := deps.Services.Launcher.UIState(cmd.Context())
			if err != nil {
				return err
			}
			if len(meetings) == 0 {
				fmt.Fprintln(deps.Out, "no meetings today")
				return nil
			}
			for _, m := range meetings {
				start := time.UnixMilli(m.StartTime).Format("15:04")
				end := time.UnixMilli(m.EndTime).Format("15:04")
				fmt.Fprintf(deps.Out, "%s-%s  %-9s %-9s %s\n", start, end, m.Status, m.Platform, m.Title)
			}
			return nil
		},
	}
}

func NewInstantCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "instant <teams|google|zoom|webex>",
		Short: "Start an ad-hoc meeting on the given platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform := domain.ParsePlatform(args[0])
			if platform == domain.PlatformUnknown {
				return fmt.Errorf("unknown platform %q", args[0])
			}
			if result := deps.Services.Resolver.StartInstantMeeting(cmd.Context(), platform); !result.Success {
				return fmt.Errorf("instant meeting failed")
			}
			return nil
		},
	}
}

func NewCastCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:       "cast [view|fullscreen|exit]",
		Short:     "Start screen casting, or control the cast view",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"view", "fullscreen", "exit"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res := deps.Services.Resolver

			action := "start"
			if len(args) == 1 {
				action = args[0]
			}

			switch action {
			case "start":
				if result := res.StartCasting(ctx); !result.Success {
					return fmt.Errorf("casting failed to start")
				}
			case "view":
				if result := res.ViewCastScreen(ctx); !result.Success {
					return fmt.Errorf("view_screen failed")
				}
			case "fullscreen":
				if result := res.SetCastFullscreen(ctx, true); !result.Success {
					return fmt.Errorf("fullscreen failed")
				}
			case "exit":
				if result := res.SetCastFullscreen(ctx, false); !result.Success {
					return fmt.Errorf("exit fullscreen failed")
				}
			default:
				return fmt.Errorf("unknown cast action %q", action)
			}
			return nil
		},
	}
}
