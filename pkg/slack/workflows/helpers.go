package workflows

import (
	"log/slog"
	"math/rand/v2"

	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
)

func selfTriggeredEvent(ctx workflow.Context, auth []eventAuth, userID string) bool {
	for _, a := range auth {
		if a.IsBot && a.UserID == userID {
			logger.From(ctx).Debug("ignoring self-triggered Slack event")
			return true
		}
	}
	return false
}

// ignoredMessage reports whether a message event should not trigger a bot command:
// edits, deletions, joins, and other subtypes, and messages posted by bots.
func ignoredMessage(ctx workflow.Context, event eventWrapper, e MessageEvent) bool {
	if e.Subtype != "" || e.BotID != "" {
		logger.From(ctx).Debug("ignoring Slack message event", slog.String("subtype", e.Subtype),
			slog.String("bot_id", e.BotID))
		return true
	}
	return e.User == "" || selfTriggeredEvent(ctx, event.Authorizations, e.User)
}

// sideEffectRand implements [bot.Rand] deterministically in workflows.
func sideEffectRand(ctx workflow.Context, n int) int {
	var i int
	encoded := workflow.SideEffect(ctx, func(_ workflow.Context) any {
		return rand.IntN(n) //gosec:disable G404 -- not security-sensitive
	})
	if err := encoded.Get(&i); err != nil || i < 0 || i >= n {
		logger.From(ctx).Warn("failed to get random number", slog.Any("error", err), slog.Int("n", n))
		return 0
	}
	return i
}
