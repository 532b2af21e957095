// Package main provides the operator CLI for the AI Hub admin API.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/aihub/hubadmin/pkg/client"
	"github.com/aihub/hubadmin/pkg/log"
)

func main() {
	command := &cli.Command{
		Name:                  "hubadmin",
		Usage:                 "Operate the AI Hub admin API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Admin API base URL",
				Value:   "http://localhost:9080",
				Sources: cli.EnvVars("HUBADMIN_SERVER"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Bearer token for the admin API",
				Sources: cli.EnvVars("HUBADMIN_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			logsCommand(),
			executionsCommand(),
			backupCommand(),
			configCommand(),
			usageCommand(),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient(command *cli.Command) *client.Client {
	log.Setup(command.String("log-level"))

	return client.New(command.String("server"), command.String("token"))
}
