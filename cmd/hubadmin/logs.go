package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/aihub/hubadmin/pkg/debuglog"
	"github.com/aihub/hubadmin/pkg/log"
	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/stream"
)

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Work with the authentication debug log",
		Commands: []*cli.Command{
			{
				Name:  "stream",
				Usage: "Follow the debug log live",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Only show events for one provider",
					},
				},
				Action: streamLogs,
			},
			{
				Name:  "list",
				Usage: "Print the buffered debug log, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Only show events for one provider",
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					entries, err := newClient(command).DebugLog(ctx, command.String("provider"))
					if err != nil {
						return err
					}

					for _, entry := range entries {
						printEntry(entry)
					}

					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "Empty the debug log buffer",
				Action: func(ctx context.Context, command *cli.Command) error {
					return newClient(command).ClearDebugLog(ctx)
				},
			},
		},
	}
}

func streamLogs(ctx context.Context, command *cli.Command) error {
	adminClient := newClient(command)
	logger := log.WithModule("logs")

	consumer := stream.NewConsumer(
		adminClient.DebugStreamURL(command.String("provider")),
		logger,
		stream.WithAuthorize(adminClient.Authorize),
		stream.WithEnvelopeHandler(func(envelope debuglog.Envelope) {
			switch envelope.Type {
			case debuglog.EnvelopeTypeLog:
				if envelope.Data != nil {
					printEntry(*envelope.Data)
				}
			case debuglog.EnvelopeTypeCleared:
				fmt.Println("--- log cleared ---")
			}
		}),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.Enable()
	defer consumer.Close()

	<-ctx.Done()

	return nil
}

func printEntry(entry models.DebugLogEntry) {
	line := fmt.Sprintf("%s  %-5s  %-12s  %s",
		entry.Timestamp.Format("15:04:05.000"), entry.Level, entry.Provider, entry.Event)

	if len(entry.Data) > 0 {
		if payload, err := json.Marshal(entry.Data); err == nil {
			line += "  " + string(payload)
		}
	}

	fmt.Println(line)
}
