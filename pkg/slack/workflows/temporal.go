// Package workflows handles Slack events as Temporal workflows. Events are
// received as Temporal signals from [Timpani], the dispatcher workflow starts
// a child workflow for each one, and these workflows run the bot's commands.
//
// [Timpani]: https://pkg.go.dev/github.com/tzrikka/timpani/pkg/listeners
package workflows

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
	"github.com/tzrikka/teambot/internal/otel"
	"github.com/tzrikka/teambot/pkg/bot"
	"github.com/tzrikka/teambot/pkg/metrics"
)

// Signals is a list of signal names that TeamBot receives
// from Timpani, to trigger event handling workflows.
//
// This is based on:
//   - https://docs.slack.dev/reference/events?APIs=Events
//   - https://github.com/tzrikka/timpani/blob/main/pkg/listeners/slack/dispatch.go
var Signals = []string{
	"slack.events.app_mention",
	"slack.events.message",
}

// Registry is implemented by Temporal workers and test environments.
type Registry interface {
	RegisterWorkflowWithOptions(w any, opts workflow.RegisterOptions)
}

type Config struct {
	Bot bot.Config

	// SignalsFile is an optional CSV file to record received signals.
	SignalsFile string
}

type Workflows struct {
	bot         *bot.Bot
	signalsFile string
}

func New(cfg Config, s bot.Slack) *Workflows {
	return &Workflows{bot: bot.New(s, sideEffectRand, cfg.Bot), signalsFile: cfg.SignalsFile}
}

// RegisterWorkflows maps event-handling workflow functions to [Signals].
func (w *Workflows) RegisterWorkflows(r Registry) {
	r.RegisterWorkflowWithOptions(w.AppMentionWorkflow, workflow.RegisterOptions{Name: Signals[0]})
	r.RegisterWorkflowWithOptions(w.MessageWorkflow, workflow.RegisterOptions{Name: Signals[1]})
}

// RegisterSignals routes [Signals] to their registered workflows.
func (w *Workflows) RegisterSignals(ctx workflow.Context, sel workflow.Selector) {
	addReceive[appMentionEventWrapper](ctx, sel, Signals[0], w.signalsFile)
	addReceive[messageEventWrapper](ctx, sel, Signals[1], w.signalsFile)
}

func addReceive[T any](ctx workflow.Context, sel workflow.Selector, signal, signalsFile string) {
	sel.AddReceive(workflow.GetSignalChannel(ctx, signal), func(ch workflow.ReceiveChannel, _ bool) {
		payload := new(T)
		ch.Receive(ctx, payload)

		otel.SignalReceived(ctx, signal, false)
		metrics.IncrementSignalCounter(ctx, signalsFile, signal)

		// https://docs.temporal.io/develop/go/child-workflows#parent-close-policy
		ctx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
			WorkflowID:        childWorkflowID(ctx, signal, payload),
			ParentClosePolicy: enums.PARENT_CLOSE_POLICY_ABANDON,
		})
		_ = workflow.ExecuteChildWorkflow(ctx, signal, payload).GetChildWorkflowExecution().Get(ctx, nil)
	})
}

// DrainSignals drains all pending [Signals] channels, and waits
// for their corresponding workflow executions to complete in order.
// This is called in preparation for resetting the dispatcher workflow's history.
// It returns the number of signals that were drained.
func (w *Workflows) DrainSignals(ctx workflow.Context) int {
	total := receiveAsync[appMentionEventWrapper](ctx, Signals[0], w.signalsFile)
	total += receiveAsync[messageEventWrapper](ctx, Signals[1], w.signalsFile)
	return total
}

func receiveAsync[T any](ctx workflow.Context, signal, signalsFile string) int {
	ch := workflow.GetSignalChannel(ctx, signal)
	count := 0
	for {
		payload := new(T)
		if !ch.ReceiveAsync(payload) {
			break
		}

		otel.SignalReceived(ctx, signal, true)
		metrics.IncrementSignalCounter(ctx, signalsFile, signal)
		count++

		ctx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
			WorkflowID: childWorkflowID(ctx, signal, payload),
		})
		_ = workflow.ExecuteChildWorkflow(ctx, signal, payload).Get(ctx, nil)
	}

	if count > 0 {
		logger.From(ctx).Info("drained signal channel", slog.String("signal", signal), slog.Int("event_count", count))
	}
	return count
}

func childWorkflowID[T any](ctx workflow.Context, signal string, payload *T) string {
	id := ""
	switch e := any(payload).(type) {
	case *appMentionEventWrapper:
		id = fmt.Sprintf("mention_%s_%s", e.InnerEvent.Channel, e.InnerEvent.TS)
	case *messageEventWrapper:
		subtype := "created"
		if e.InnerEvent.Subtype != "" {
			subtype = e.InnerEvent.Subtype
		}
		id = fmt.Sprintf("%s_%s_%s", subtype, e.InnerEvent.Channel, e.InnerEvent.TS)
	}

	if id == "" {
		logger.From(ctx).Debug("unexpected signal payload", slog.String("signal", signal))
		return "" // Let Temporal use its own default.
	}

	var ts int64
	encoded := workflow.SideEffect(ctx, func(_ workflow.Context) any {
		return time.Now().UnixMilli()
	})
	if err := encoded.Get(&ts); err != nil {
		return id
	}
	return fmt.Sprintf("%s_%s", id, strconv.FormatInt(ts, 36))
}
