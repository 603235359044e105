// Package bot implements TeamBot's commands: it classifies the text of
// inbound Slack messages, resolves channel and subteam members, picks
// random members, and orchestrates the creation of "surprise" channels.
//
// All Slack interactions go through the [Slack] interface, and all
// randomness through [Rand], so the logic here is deterministic
// and safe to run inside Temporal workflows.
package bot

import (
	"log/slog"

	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
	"github.com/tzrikka/teambot/pkg/slack/api"
)

// InboundMessage is a Slack message (a DM or a mention) that is directed at the bot.
type InboundMessage struct {
	Text      string `json:"text"`
	ChannelID string `json:"channel_id"`
	SenderID  string `json:"sender_id"`
	// ThreadTS is the reply context: replies are posted in this thread, if not empty.
	ThreadTS string `json:"thread_ts,omitempty"`
}

// Slack is the subset of the Slack API that the bot depends on. In production,
// each method runs a Temporal activity, and returns typed errors from the [api] package.
type Slack interface {
	ChannelMembers(ctx workflow.Context, channelID string) ([]string, error)
	WorkspaceUsers(ctx workflow.Context) ([]api.User, error)
	SubteamMembers(ctx workflow.Context, subteamID string) ([]string, error)
	Subteams(ctx workflow.Context) ([]api.Subteam, error)
	UserProfile(ctx workflow.Context, userID string) (api.User, error)
	ChannelExists(ctx workflow.Context, name string) (bool, error)
	CreateChannel(ctx workflow.Context, name string, private bool) (api.Channel, error)
	InviteMembers(ctx workflow.Context, channelID string, userIDs []string) error

	// Reply sends text back to the message's conversation, in the same thread if there is one.
	Reply(ctx workflow.Context, msg InboundMessage, text string) error
}

// Rand returns a uniformly-distributed random integer in the range [0, n). It is
// called only with n > 0. In workflows it must be wrapped in [workflow.SideEffect].
type Rand func(ctx workflow.Context, n int) int

type Config struct {
	// BotUserID is the bot's own Slack user ID, which is never picked.
	BotUserID string

	// ReferenceChannel is the ID of the channel whose members are invited to surprise
	// channels. If it's empty, all the active human users in the workspace are invited.
	ReferenceChannel string

	// ChannelNamePrefix is prepended to the names of surprise channels.
	ChannelNamePrefix string

	// SurpriseExcludeBot removes the bot from the invitees of surprise channels.
	SurpriseExcludeBot bool

	// TestAccountSignupURLs are listed in the test account instructions.
	TestAccountSignupURLs []string
}

type Bot struct {
	slack Slack
	rand  Rand
	cfg   Config
}

func New(s Slack, r Rand, cfg Config) *Bot {
	if cfg.ChannelNamePrefix == "" {
		cfg.ChannelNamePrefix = DefaultChannelNamePrefix
	}
	return &Bot{slack: s, rand: r, cfg: cfg}
}

// reply sends a message back to the user. Failures are logged, but
// not reported to the user, because this is the reporting channel.
func (b *Bot) reply(ctx workflow.Context, msg InboundMessage, text string) {
	if err := b.slack.Reply(ctx, msg, text); err != nil {
		logger.From(ctx).Error("failed to reply to Slack message", slog.Any("error", err),
			slog.String("channel_id", msg.ChannelID), slog.String("thread_ts", msg.ThreadTS))
	}
}
