// Package main provides the AI Hub admin API server.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/aihub/hubadmin/pkg/cmd"
	"github.com/aihub/hubadmin/pkg/log"
	"github.com/aihub/hubadmin/pkg/maintenance"
	"github.com/aihub/hubadmin/pkg/otelhelper"
	"github.com/aihub/hubadmin/pkg/usage"
)

const defaultPort = 9080

func main() {
	command := &cli.Command{
		Name:                  "hubadmin-api",
		Usage:                 "Serve the AI Hub admin API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL (postgres://... or a file path)",
				Value:   "file://./data",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (kafka, gochannel)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "signing-key",
				Usage:   "Shared key for admin bearer tokens (empty disables auth)",
				Sources: cli.EnvVars("SIGNING_KEY"),
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address for the config cache (empty disables caching)",
				Sources: cli.EnvVars("REDIS_ADDR"),
			},
			&cli.StringFlag{
				Name:    "redis-password",
				Usage:   "Redis password",
				Sources: cli.EnvVars("REDIS_PASSWORD"),
			},
			&cli.StringFlag{
				Name:    "usage-snapshot-schedule",
				Usage:   "Cron expression for usage snapshots",
				Value:   usage.DefaultSnapshotSchedule,
				Sources: cli.EnvVars("USAGE_SNAPSHOT_SCHEDULE"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OTLP trace export",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("api")
			logger.InfoContext(ctx, "Initializing Hub admin API")

			if command.Bool("tracing") {
				tracerProvider, err := otelhelper.InitTracer(ctx, "hubadmin-api")
				if err != nil {
					return err
				}

				defer func() {
					if err := tracerProvider.Shutdown(ctx); err != nil {
						logger.ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
					}
				}()
			}

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			var cache *maintenance.RedisCache

			if addr := command.String("redis-addr"); addr != "" {
				var err error

				cache, err = maintenance.NewRedisCache(ctx, addr, command.String("redis-password"), 0)
				if err != nil {
					return err
				}

				defer func() {
					if err := cache.Close(); err != nil {
						logger.ErrorContext(ctx, "Failed to close cache", "error", err)
					}
				}()
			}

			api := NewAPI(APIConfig{
				Logger:           logger,
				Persistence:      persistence,
				EventBus:         eventBus,
				Cache:            cache,
				SigningKey:       []byte(command.String("signing-key")),
				SnapshotSchedule: command.String("usage-snapshot-schedule"),
			})

			if err := api.Start(ctx, command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)

				return err
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
