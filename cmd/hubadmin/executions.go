package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"

	"github.com/aihub/hubadmin/pkg/client"
	"github.com/aihub/hubadmin/pkg/log"
	"github.com/aihub/hubadmin/pkg/poll"
)

func executionsCommand() *cli.Command {
	listFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "workflow-id",
			Usage: "Only show executions of one workflow",
		},
		&cli.StringFlag{
			Name:  "status",
			Usage: "Only show executions in one status",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Page size",
			Value: 20,
		},
	}

	return &cli.Command{
		Name:  "executions",
		Usage: "Inspect workflow executions",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print one page of executions",
				Flags:  listFlags,
				Action: listExecutions,
			},
			{
				Name:   "watch",
				Usage:  "Refresh the execution list every few seconds",
				Flags:  listFlags,
				Action: watchExecutions,
			},
			{
				Name:      "cancel",
				Usage:     "Ask the engine to cancel an execution",
				ArgsUsage: "<execution-id>",
				Action: func(ctx context.Context, command *cli.Command) error {
					id := command.Args().First()
					if id == "" {
						return fmt.Errorf("execution id is required")
					}

					return newClient(command).CancelExecution(ctx, id)
				},
			},
		},
	}
}

func listExecutions(ctx context.Context, command *cli.Command) error {
	page, err := fetchExecutions(ctx, newClient(command), command)
	if err != nil {
		return err
	}

	printExecutions(page)

	return nil
}

func watchExecutions(ctx context.Context, command *cli.Command) error {
	adminClient := newClient(command)

	supervisor := poll.NewSupervisor(func(ctx context.Context) error {
		page, err := fetchExecutions(ctx, adminClient, command)
		if err != nil {
			return err
		}

		fmt.Print("\033[H\033[2J")
		printExecutions(page)

		return nil
	}, log.WithModule("executions"))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	supervisor.Run(ctx)

	return nil
}

func fetchExecutions(ctx context.Context, adminClient *client.Client, command *cli.Command) (*client.ExecutionsPage, error) {
	return adminClient.ListExecutions(ctx, client.ListExecutionsOptions{
		WorkflowID: command.String("workflow-id"),
		Status:     command.String("status"),
		Limit:      command.Int("limit"),
	})
}

func printExecutions(page *client.ExecutionsPage) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tWORKFLOW\tSTATUS\tSTARTED\tSTEP\tERROR")

	for _, execution := range page.Executions {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			execution.ID,
			execution.WorkflowID,
			execution.Status,
			execution.StartedAt.Format("2006-01-02 15:04:05"),
			execution.CurrentStep,
			execution.Error,
		)
	}

	writer.Flush()
	fmt.Printf("\n%d total\n", page.TotalCount)
}
