package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raja-blip/onetap-remote/internal/ports"
)

func NewStatusCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe the Bridge and Launcher and report reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg := deps.Services.Registry

			for _, service := range []ports.Service{ports.ServiceBridge, ports.ServiceLauncher} {
				ep := reg.Endpoint(service)
				reachable := reg.TestReachability(ctx, service)
				fmt.Fprintf(deps.Out, "%-9s %s:%s  reachable=%v\n", service, ep.Host, ep.Port, reachable)
			}

			if name, ok := deps.Services.Bridge.Status(ctx); ok {
				fmt.Fprintf(deps.Out, "device:   %s\n", name)
			}
			return nil
		},
	}
}
