package temporal

import (
	"log/slog"
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
	"github.com/tzrikka/teambot/internal/temporal"
	"github.com/tzrikka/teambot/pkg/slack/workflows"
)

// EventDispatcher is the name and ID of the TeamBot event dispatcher workflow.
const EventDispatcher = "events.dispatcher"

// drainInterval slows down the draining loop before continue-as-new.
const drainInterval = 5 * time.Second

type dispatcher struct {
	slack *workflows.Workflows
}

// EventDispatcherWorkflow is an always-running singleton workflow that receives Temporal
// signals from [Timpani] and spawns event-specific child workflows to handle them.
//
// [Timpani]: https://pkg.go.dev/github.com/tzrikka/timpani/pkg/listeners
func (d dispatcher) EventDispatcherWorkflow(ctx workflow.Context) error {
	if err := temporal.MarkSignalReceiver(ctx, workflows.Signals); err != nil {
		return err
	}

	sel := workflow.NewSelector(ctx)
	d.slack.RegisterSignals(ctx, sel)

	for {
		sel.Select(ctx)

		// https://docs.temporal.io/develop/go/continue-as-new
		// https://docs.temporal.io/develop/go/message-passing#wait-for-message-handlers
		if info := workflow.GetInfo(ctx); info.GetContinueAsNewSuggested() {
			logger.From(ctx).Info("continue-as-new suggested by Temporal server",
				slog.Int("history_length", info.GetCurrentHistoryLength()),
				slog.Int("history_size", info.GetCurrentHistorySize()))

			// "Lame duck" mode: drain all signal channels before resetting workflow history.
			// This minimizes - but doesn't entirely eliminate - the chance of losing signals.
			// That's why we run this in a slowed-down loop until no signals are left to process:
			// it will continue until the worker is relatively idle.
			for drained := 1; drained > 0; {
				_ = workflow.Sleep(ctx, drainInterval)
				drained = d.slack.DrainSignals(ctx)
			}

			logger.From(ctx).Warn("triggering workflow continue-as-new",
				slog.Int("history_length", info.GetCurrentHistoryLength()),
				slog.Int("history_size", info.GetCurrentHistorySize()))
			return workflow.NewContinueAsNewError(ctx, EventDispatcher)
		}
	}
}
