package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raja-blip/onetap-remote/internal/domain"
	"github.com/raja-blip/onetap-remote/internal/ports"
	"github.com/raja-blip/onetap-remote/internal/registry"
)

func NewScanCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Sweep the subnet around the configured Bridge address",
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := deps.Services.Registry.ScanSubnet(cmd.Context())
			if err != nil {
				if errors.Is(err, registry.ErrBridgeNotFound) {
					return fmt.Errorf("no bridge responded on the subnet")
				}
				return err
			}
			fmt.Fprintf(deps.Out, "bridge found at %s:%s\n", ep.Host, ep.Port)
			return nil
		},
	}
}

func NewSettingsCmd(deps *Dependencies) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change persisted connection settings",
	}
	settingsCmd.AddCommand(newSettingsShowCmd(deps))
	settingsCmd.AddCommand(newSettingsSetCmd(deps))
	return settingsCmd
}

func newSettingsShowCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective connection settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := deps.Services.Registry

			bridge := reg.Endpoint(ports.ServiceBridge)
			launcher := reg.Endpoint(ports.ServiceLauncher)
			fmt.Fprintf(deps.Out, "room:     %s\n", reg.RoomName())
			fmt.Fprintf(deps.Out, "bridge:   %s:%s\n", bridge.Host, bridge.Port)
			fmt.Fprintf(deps.Out, "launcher: %s:%s\n", launcher.Host, launcher.Port)

			for _, platform := range []domain.Platform{
				domain.PlatformTeams, domain.PlatformGoogleMeet, domain.PlatformZoom, domain.PlatformWebex,
			} {
				fmt.Fprintf(deps.Out, "%-8s signed-in=%v\n", platform, reg.SignedIn(platform))
			}

			if active, ok := reg.ActivePlatform(); ok {
				fmt.Fprintf(deps.Out, "active meeting: %s\n", active)
			}
			return nil
		},
	}
}

func newSettingsSetCmd(deps *Dependencies) *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change a persisted setting",
	}

	for _, service := range []ports.Service{ports.ServiceBridge, ports.ServiceLauncher} {
		service := service
		setCmd.AddCommand(&cobra.Command{
			Use:   string(service) + " <host> <port>",
			Short: "Set the " + string(service) + " endpoint",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return deps.Services.Registry.SetEndpoint(service, ports.Endpoint{Host: args[0], Port: args[1]})
			},
		})
	}

	setCmd.AddCommand(&cobra.Command{
		Use:   "room <name>",
		Short: "Set the room display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.Services.Registry.SetRoomName(args[0])
		},
	})

	setCmd.AddCommand(&cobra.Command{
		Use:   "signed-in <platform> <true|false>",
		Short: "Record whether the device holds a signed-in session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			platform := domain.ParsePlatform(args[0])
			if platform == domain.PlatformUnknown {
				return fmt.Errorf("unknown platform %q", args[0])
			}
			signedIn, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", args[1])
			}
			return deps.Services.Registry.SetSignedIn(platform, signedIn)
		},
	})

	return setCmd
}
