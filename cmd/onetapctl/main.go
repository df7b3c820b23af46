package main

import (
	"fmt"
	"os"

	"github.com/raja-blip/onetap-remote/internal/bootstrap"
	"github.com/raja-blip/onetap-remote/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	sink := cli.NewConsoleSink(os.Stdout)

	services, err := bootstrap.Build(sink)
	if err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}

	deps := &cli.Dependencies{
		Services: services,
		Sink:     sink,
		Out:      os.Stdout,
	}

	return cli.NewRootCmd(deps).Execute()
}
