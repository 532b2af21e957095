package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Read and change the platform configuration",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Print the platform configuration",
				Action: func(ctx context.Context, command *cli.Command) error {
					config, err := newClient(command).GetConfig(ctx)
					if err != nil {
						return err
					}

					return printJSON(config)
				},
			},
			{
				Name:      "set-log-level",
				Usage:     "Change the persisted logging level",
				ArgsUsage: "<debug|info|warn|error>",
				Action: func(ctx context.Context, command *cli.Command) error {
					level := command.Args().First()
					if level == "" {
						return fmt.Errorf("log level is required")
					}

					config, err := newClient(command).SetLogLevel(ctx, level)
					if err != nil {
						return err
					}

					fmt.Println("Log level set to", config.LogLevel)

					return nil
				},
			},
		},
	}
}

func usageCommand() *cli.Command {
	return &cli.Command{
		Name:  "usage",
		Usage: "Print the platform usage report",
		Action: func(ctx context.Context, command *cli.Command) error {
			report, err := newClient(command).UsageReport(ctx)
			if err != nil {
				return err
			}

			return printJSON(report)
		},
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
