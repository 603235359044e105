// Package temporal initializes a Temporal worker.
package temporal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
	"github.com/tzrikka/teambot/pkg/bot"
	"github.com/tzrikka/teambot/pkg/slack/activities"
	"github.com/tzrikka/teambot/pkg/slack/api"
	"github.com/tzrikka/teambot/pkg/slack/workflows"
)

// Run initializes the Slack API client and the Temporal worker, and blocks.
func Run(ctx context.Context, cmd *cli.Command) error {
	sc, err := api.New(api.Config{
		Token:   cmd.String("slack-bot-token"),
		APIURL:  cmd.String("slack-api-url"),
		Timeout: cmd.Duration("slack-http-timeout"),
	})
	if err != nil {
		return err
	}

	botID, err := sc.GetSelfUserID(ctx)
	if err != nil {
		return fmt.Errorf("failed to identify the Slack bot user: %w", err)
	}
	logger.FromContext(ctx).Info("identified Slack bot user", slog.String("user_id", botID))

	addr := cmd.String("temporal-address")
	logger.FromContext(ctx).Info("Temporal server address: " + addr)

	c, err := client.Dial(client.Options{
		HostPort:  addr,
		Namespace: cmd.String("temporal-namespace"),
		Logger:    log.NewStructuredLogger(logger.FromContext(ctx)),
	})
	if err != nil {
		return fmt.Errorf("failed to dial Temporal: %w", err)
	}
	defer c.Close()

	tq := cmd.String("temporal-task-queue")
	w := worker.New(c, tq, worker.Options{})
	activities.New(sc).Register(w)

	wfs := workflows.New(workflowsConfig(cmd, botID), activities.Slack{Timeout: cmd.Duration("temporal-activity-timeout")})
	wfs.RegisterWorkflows(w)

	d := dispatcher{slack: wfs}
	w.RegisterWorkflowWithOptions(d.EventDispatcherWorkflow, workflow.RegisterOptions{Name: EventDispatcher})

	if err := startDispatcher(ctx, c, tq); err != nil {
		return err
	}

	if err := w.Run(worker.InterruptCh()); err != nil {
		return fmt.Errorf("failed to start Temporal worker: %w", err)
	}

	return nil
}

func workflowsConfig(cmd *cli.Command, botID string) workflows.Config {
	return workflows.Config{
		Bot: bot.Config{
			BotUserID:             botID,
			ReferenceChannel:      cmd.String("slack-reference-channel"),
			ChannelNamePrefix:     cmd.String("slack-channel-name-prefix"),
			SurpriseExcludeBot:    cmd.Bool("surprise-exclude-bot"),
			TestAccountSignupURLs: cmd.StringSlice("test-account-signup-urls"),
		},
		SignalsFile: cmd.String("metrics-signals-file"),
	}
}

// startDispatcher starts the singleton event dispatcher workflow, unless it's already running.
func startDispatcher(ctx context.Context, c client.Client, taskQueue string) error {
	opts := client.StartWorkflowOptions{
		ID:                       EventDispatcher,
		TaskQueue:                taskQueue,
		WorkflowIDConflictPolicy: enums.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
	}

	run, err := c.ExecuteWorkflow(ctx, opts, EventDispatcher)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return fmt.Errorf("failed to start the event dispatcher workflow: %w", err)
	}

	logger.FromContext(ctx).Info("event dispatcher workflow is running",
		slog.String("workflow_id", run.GetID()), slog.String("run_id", run.GetRunID()))
	return nil
}
