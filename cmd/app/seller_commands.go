package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/storefront/cmd/app/commands"
	"github.com/allisson/storefront/internal/app"
	"github.com/allisson/storefront/internal/config"
)

func getSellerCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-seller",
			Usage: "Register a new seller account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Login name of the seller",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Contact email of the seller",
				},
				&cli.StringFlag{
					Name:  "full-name",
					Usage: "Display name of the seller",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Seller password (omit to read it from stdin)",
				},
				&cli.BoolFlag{
					Name:  "disabled",
					Value: false,
					Usage: "Create the seller disabled",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				sellerUseCase, err := container.SellerUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateSeller(
					ctx,
					sellerUseCase,
					container.Logger(),
					commands.CreateSellerOptions{
						Username: cmd.String("username"),
						Email:    cmd.String("email"),
						FullName: cmd.String("full-name"),
						Password: cmd.String("password"),
						Disabled: cmd.Bool("disabled"),
						Format:   cmd.String("format"),
					},
					commands.DefaultIO(),
				)
			},
		},
	}
}
