package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pantoken/internal/app"
	"github.com/allisson/pantoken/internal/config"
)

func getCommands(version string) []*cli.Command {
	return append(getSystemCommands(version), getKeyCommands()...)
}

// withContainer runs fn against a container built from the environment and releases
// it afterwards. Commands that only need the logger or key services never open the
// record store, since container dependencies are created lazily.
func withContainer(ctx context.Context, fn func(cfg *config.Config, container *app.Container) error) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	return fn(cfg, container)
}
