package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pantoken/cmd/app/commands"
	"github.com/allisson/pantoken/internal/app"
	"github.com/allisson/pantoken/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new master key, optionally wrapped with a KMS",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-provider",
					Value: "",
					Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(_ *config.Config, container *app.Container) error {
					return commands.RunCreateMasterKey(
						ctx,
						container.KMSService(),
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
					)
				})
			},
		},
		{
			Name:  "hash-admin-key",
			Usage: "Generate an admin key and its Argon2id hash, or hash a key read from stdin",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "stdin",
					Value: false,
					Usage: "Read the admin key from the first line of stdin instead of generating one",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(_ *config.Config, container *app.Container) error {
					return commands.RunHashAdminKey(
						container.SecretService(),
						container.Logger(),
						commands.DefaultIO(),
						cmd.Bool("stdin"),
					)
				})
			},
		},
	}
}
