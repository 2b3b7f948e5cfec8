package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pantoken/cmd/app/commands"
	"github.com/allisson/pantoken/internal/app"
	"github.com/allisson/pantoken/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the tokenization API (and the metrics listener when enabled)",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Create or upgrade the pan_records table for DB_DRIVER",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(cfg *config.Config, container *app.Container) error {
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				})
			},
		},
	}
}
