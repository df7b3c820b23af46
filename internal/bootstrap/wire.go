package bootstrap

import (
	"context"
	"time"

	"github.com/raja-blip/onetap-remote/internal/config"
	"github.com/raja-blip/onetap-remote/internal/ports"
	"github.com/raja-blip/onetap-remote/internal/registry"
	"github.com/raja-blip/onetap-remote/internal/remote"
	"github.com/raja-blip/onetap-remote/internal/resolver"
	"github.com/raja-blip/onetap-remote/internal/settings"
)

// Services is the assembled runtime graph.
type Services struct {
	Resolver *resolver.Resolver
	Registry *registry.Registry
	Bridge   *remote.BridgeClient
	Launcher *remote.LauncherClient
	Config   config.Config
}

// Build wires all backend dependencies for the current runtime.
func Build(eventSink ports.EventSink) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}

	store, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return Services{}, err
	}

	reg := registry.New(store, cfg, nil)
	bridge := remote.NewBridgeClient(reg, eventSink, cfg)
	launcher := remote.NewLauncherClient(reg, eventSink, cfg)
	res := resolver.New(bridge, launcher, reg, eventSink, timerSleeper{}, cfg)

	return Services{
		Resolver: res,
		Registry: reg,
		Bridge:   bridge,
		Launcher: launcher,
		Config:   cfg,
	}, nil
}

// timerSleeper waits out settle delays on a real timer, honoring
// cancellation mid-flow.
type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
