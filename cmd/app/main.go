// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nexusai/backoffice/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "NexusAI back office application",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations(ctx)
				},
			},
			{
				Name:  "create-master-key",
				Usage: "Generate a master key for credential encryption at rest",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateMasterKey()
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create a back-office user account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Login username",
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "Login password (8-128 characters)",
					},
					&cli.BoolFlag{
						Name:    "admin",
						Aliases: []string{"a"},
						Value:   true,
						Usage:   "Grant admin privileges",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateAdmin(
						ctx,
						cmd.String("username"),
						cmd.String("password"),
						cmd.Bool("admin"),
					)
				},
			},
			{
				Name:  "clean-expired-sessions",
				Usage: "Delete expired admin sessions",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCleanExpiredSessions(ctx)
				},
			},
			{
				Name:  "remove-db-config",
				Usage: "Delete the stored encrypted database credentials",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunRemoveDbConfig(ctx)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
