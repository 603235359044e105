package workflows

import (
	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/otel"
	"github.com/tzrikka/teambot/pkg/bot"
)

// AppMentionWorkflow handles messages that mention the bot, in any conversation it's in.
//
// https://docs.slack.dev/reference/events/app_mention/
func (w *Workflows) AppMentionWorkflow(ctx workflow.Context, event appMentionEventWrapper) error {
	if ignoredMessage(ctx, event.eventWrapper, event.InnerEvent) {
		return nil
	}

	w.handle(ctx, event.InnerEvent)
	return nil
}

// MessageWorkflow handles direct messages to the bot. Messages in other
// conversations are handled by [Workflows.AppMentionWorkflow], if they
// mention the bot, to avoid handling the same message twice.
//
// https://docs.slack.dev/reference/events/message/
// https://docs.slack.dev/reference/events/message.im/
func (w *Workflows) MessageWorkflow(ctx workflow.Context, event messageEventWrapper) error {
	if event.InnerEvent.ChannelType != "im" || ignoredMessage(ctx, event.eventWrapper, event.InnerEvent) {
		return nil
	}

	w.handle(ctx, event.InnerEvent)
	return nil
}

func (w *Workflows) handle(ctx workflow.Context, e MessageEvent) {
	msg := bot.InboundMessage{
		Text:      e.Text,
		ChannelID: e.Channel,
		SenderID:  e.User,
		ThreadTS:  e.ThreadTS,
	}

	cmd := w.bot.Handle(ctx, msg)
	otel.CommandReceived(ctx, cmd.String())
}
