package main

import (
	"context"
	"fmt"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
)

func backupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Export and restore platform backups",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Download a backup archive",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Destination file (default: timestamped name)",
					},
				},
				Action: exportBackup,
			},
			{
				Name:      "import",
				Usage:     "Restore from a backup archive",
				ArgsUsage: "<archive.zip>",
				Action:    importBackup,
			},
		},
	}
}

func exportBackup(ctx context.Context, command *cli.Command) error {
	output := command.String("output")
	if output == "" {
		output = "hubadmin-backup-" + time.Now().UTC().Format("20060102-150405") + ".zip"
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := newClient(command).ExportBackup(ctx, file); err != nil {
		os.Remove(output)

		return err
	}

	fmt.Println("Backup written to", output)

	return nil
}

func importBackup(ctx context.Context, command *cli.Command) error {
	path := command.Args().First()
	if path == "" {
		return fmt.Errorf("archive path is required")
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := newClient(command).ImportBackup(ctx, file); err != nil {
		return err
	}

	fmt.Println("Backup restored from", path)

	return nil
}
