package bot

import (
	"log/slog"
	"strings"

	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
)

// Command is the result of classifying the text of an inbound message.
type Command int

const (
	Unknown Command = iota
	Greet
	Help
	Surprise
	TestAccount
	Pick
)

func (c Command) String() string {
	switch c {
	case Greet:
		return "greet"
	case Help:
		return "help"
	case Surprise:
		return "surprise"
	case TestAccount:
		return "test_account"
	case Pick:
		return "pick"
	default:
		return "unknown"
	}
}

// Order matters: several keywords may appear in the same message,
// and the first rule with a matching keyword wins.
var rules = []struct {
	cmd      Command
	keywords []string
}{
	{cmd: Greet, keywords: []string{"hello", "hi"}},
	{cmd: Help, keywords: []string{"help", "commands"}},
	{cmd: Surprise, keywords: []string{"surprise"}},
	{cmd: TestAccount, keywords: []string{"test account"}},
	{cmd: Pick, keywords: []string{"pick"}},
}

// Classify determines which command the given message text triggers. Matching is
// case-sensitive substring containment on the raw text. This is a pure function.
func Classify(text string) Command {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.cmd
			}
		}
	}
	return Unknown
}

// Handle classifies an inbound message, runs the corresponding command,
// and replies to the user. It returns the command that was run. Errors
// are reported to the user and logged, but not returned to the caller.
func (b *Bot) Handle(ctx workflow.Context, msg InboundMessage) Command {
	cmd := Classify(msg.Text)
	logger.From(ctx).Info("handling Slack message", slog.String("command", cmd.String()),
		slog.String("channel_id", msg.ChannelID), slog.String("user_id", msg.SenderID))

	switch cmd {
	case Greet:
		b.greet(ctx, msg)
	case Help:
		b.reply(ctx, msg, b.helpText())
	case Surprise:
		b.surprise(ctx, msg)
	case TestAccount:
		b.reply(ctx, msg, b.testAccountText())
	case Pick:
		b.pick(ctx, msg)
	default:
		b.reply(ctx, msg, unknownCommandMessage)
	}

	return cmd
}

func (b *Bot) greet(ctx workflow.Context, msg InboundMessage) {
	b.reply(ctx, msg, greetings[b.rand(ctx, len(greetings))])
}
