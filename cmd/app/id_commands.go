package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/opaqueid/cmd/app/commands"
	"github.com/allisson/opaqueid/internal/app"
	"github.com/allisson/opaqueid/internal/config"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func kindFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "kind",
		Aliases:  []string{"k"},
		Required: true,
		Usage:    "Identifier kind, one of OPAQUEID_KINDS",
	}
}

func getIDCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "derive-tag",
			Usage:     "Print the tag derived from each kind name",
			ArgsUsage: "<kind>...",
			Flags:     []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunDeriveTag(commands.DefaultIO().Writer, cmd.Args().Slice(), cmd.String("format"))
			},
		},
		{
			Name:      "encode",
			Usage:     "Encode ids as tokens using the configured key",
			ArgsUsage: "<id>...",
			Flags:     []cli.Flag{kindFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				identifierUseCase, err := container.IdentifierUseCase(ctx)
				if err != nil {
					return err
				}

				return commands.RunEncode(
					ctx,
					identifierUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kind"),
					cmd.Args().Slice(),
					cmd.String("format"),
				)
			},
		},
		{
			Name:      "decode",
			Usage:     "Decode tokens to ids using the configured key",
			ArgsUsage: "<token>...",
			Flags:     []cli.Flag{kindFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				identifierUseCase, err := container.IdentifierUseCase(ctx)
				if err != nil {
					return err
				}

				return commands.RunDecode(
					ctx,
					identifierUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kind"),
					cmd.Args().Slice(),
					cmd.String("format"),
				)
			},
		},
	}
}
