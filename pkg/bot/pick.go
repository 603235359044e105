package bot

import (
	"fmt"
	"log/slog"
	"strings"

	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
)

// pick replies with a random member of the subteam mentioned in the
// message, or of the user group named after "pick from", or else of
// the channel where the message was posted. The bot is never picked.
func (b *Bot) pick(ctx workflow.Context, msg InboundMessage) {
	if id, found := subteamMention(msg.Text); found {
		b.pickFromSubteam(ctx, msg, id)
		return
	}

	if handle := pickFromHandle(msg.Text); handle != "" {
		b.pickFromHandle(ctx, msg, handle)
		return
	}

	members, err := b.MembersOf(ctx, ChannelScope(msg.ChannelID), b.cfg.BotUserID)
	if err != nil {
		b.reply(ctx, msg, channelListFailedMessage)
		return
	}
	if len(members) == 0 {
		b.reply(ctx, msg, noChannelMembersMessage)
		return
	}

	b.reply(ctx, msg, fmt.Sprintf(pickedMessage, b.pickMember(ctx, members)))
}

func (b *Bot) pickFromSubteam(ctx workflow.Context, msg InboundMessage, subteamID string) {
	if subteamID == "" {
		logger.From(ctx).Warn("malformed subteam mention in Slack message", slog.String("text", msg.Text))
		b.reply(ctx, msg, badSubteamMessage)
		return
	}

	members, err := b.MembersOf(ctx, SubteamScope(subteamID), b.cfg.BotUserID)
	if err != nil {
		b.reply(ctx, msg, fmt.Sprintf(genericErrorMessage, "listing the members of this subteam"))
		return
	}
	if len(members) == 0 {
		b.reply(ctx, msg, fmt.Sprintf(noSubteamMembersMessage, subteamID))
		return
	}

	b.reply(ctx, msg, fmt.Sprintf(pickedMessage, b.pickMember(ctx, members)))
}

func (b *Bot) pickFromHandle(ctx workflow.Context, msg InboundMessage, handle string) {
	subteams, err := b.slack.Subteams(ctx)
	if err != nil {
		logger.From(ctx).Error("failed to list Slack user groups", slog.Any("error", err))
		b.reply(ctx, msg, fmt.Sprintf(genericErrorMessage, "looking up user groups"))
		return
	}

	for _, s := range subteams {
		if strings.EqualFold(s.Handle, handle) {
			b.pickFromSubteam(ctx, msg, s.ID)
			return
		}
	}

	b.reply(ctx, msg, fmt.Sprintf(unknownHandleMessage, handle))
}
