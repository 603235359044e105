package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
	"github.com/tzrikka/teambot/pkg/slack/api"
)

// SurpriseState is a step in the lifecycle of a single surprise command.
type SurpriseState int

const (
	ResolvingUser SurpriseState = iota
	NamingChannel
	CreatingChannel
	InvitingMembers
	Done
	Failed
)

func (s SurpriseState) String() string {
	switch s {
	case ResolvingUser:
		return "resolving_user"
	case NamingChannel:
		return "naming_channel"
	case CreatingChannel:
		return "creating_channel"
	case InvitingMembers:
		return "inviting_members"
	case Done:
		return "done"
	default:
		return "failed"
	}
}

// surpriseRun holds the state of a single surprise command, across its steps.
type surpriseRun struct {
	msg    InboundMessage
	target string
	state  SurpriseState

	seed    string
	name    string
	channel api.Channel
}

func (r *surpriseRun) transition(ctx workflow.Context, next SurpriseState) {
	logger.From(ctx).Debug("surprise channel state transition", slog.String("from", r.state.String()),
		slog.String("to", next.String()), slog.String("target_user_id", r.target))
	r.state = next
}

// surprise creates a private channel, and invites to it everyone in the reference channel
// (or workspace) except the last user mentioned in the message. If inviting fails, the
// channel is kept as it is: both outcomes are reported to the user separately.
func (b *Bot) surprise(ctx workflow.Context, msg InboundMessage) {
	target := lastUserMention(msg.Text, b.cfg.BotUserID)
	if target == "" {
		b.reply(ctx, msg, noSurpriseTargetMessage)
		return
	}

	run := &surpriseRun{msg: msg, target: target, state: ResolvingUser}
	for run.state != Done && run.state != Failed {
		switch run.state {
		case ResolvingUser:
			run.transition(ctx, b.resolveUser(ctx, run))
		case NamingChannel:
			run.transition(ctx, b.nameChannel(ctx, run))
		case CreatingChannel:
			run.transition(ctx, b.createChannel(ctx, run))
		case InvitingMembers:
			run.transition(ctx, b.inviteMembers(ctx, run))
		}
	}

	logger.From(ctx).Info("surprise channel command finished", slog.String("state", run.state.String()),
		slog.String("target_user_id", target), slog.String("channel_id", run.channel.ID),
		slog.String("channel_name", run.name))
}

func (b *Bot) resolveUser(ctx workflow.Context, run *surpriseRun) SurpriseState {
	user, err := b.slack.UserProfile(ctx, run.target)
	if err != nil {
		logger.From(ctx).Error("failed to retrieve Slack user profile",
			slog.Any("error", err), slog.String("user_id", run.target))
		if api.IsAPIError(err, "user_not_found") {
			b.reply(ctx, run.msg, fmt.Sprintf(userNotFoundMessage, run.target))
		} else {
			b.reply(ctx, run.msg, fmt.Sprintf(genericErrorMessage, "looking up the mentioned user"))
		}
		return Failed
	}

	run.seed = strings.TrimSpace(user.PreferredName())
	if ChannelNameBase("", run.seed) == "" {
		run.seed = run.target
	}
	return NamingChannel
}

func (b *Bot) nameChannel(ctx workflow.Context, run *surpriseRun) SurpriseState {
	name, err := b.ResolveUniqueName(ctx, run.seed)
	if err != nil {
		if errors.Is(err, ErrNamesExhausted) {
			logger.From(ctx).Error("no available name for surprise channel",
				slog.Any("error", err), slog.String("user_id", run.target))
		}
		b.reply(ctx, run.msg, namesUnavailableMessage)
		return Failed
	}

	run.name = name
	return CreatingChannel
}

func (b *Bot) createChannel(ctx workflow.Context, run *surpriseRun) SurpriseState {
	ch, err := b.slack.CreateChannel(ctx, run.name, true)
	if err != nil {
		logger.From(ctx).Error("failed to create Slack channel",
			slog.Any("error", err), slog.String("channel_name", run.name))
		b.reply(ctx, run.msg, fmt.Sprintf(channelCreateFailedMessage, run.name))
		return Failed
	}

	logger.From(ctx).Info("created Slack channel", slog.String("channel_id", ch.ID), slog.String("channel_name", run.name))
	run.channel = ch
	b.reply(ctx, run.msg, fmt.Sprintf(channelCreatedMessage, run.name))
	return InvitingMembers
}

func (b *Bot) inviteMembers(ctx workflow.Context, run *surpriseRun) SurpriseState {
	scope := WorkspaceScope()
	if b.cfg.ReferenceChannel != "" {
		scope = ChannelScope(b.cfg.ReferenceChannel)
	}

	invitees, err := b.MembersOf(ctx, scope, run.target)
	if err != nil {
		b.reply(ctx, run.msg, fmt.Sprintf(inviteFailedMessage, run.name))
		return Failed
	}

	if b.cfg.SurpriseExcludeBot {
		invitees = filterMembers(invitees, b.cfg.BotUserID)
	}
	if len(invitees) == 0 {
		b.reply(ctx, run.msg, fmt.Sprintf(noInviteesMessage, run.name))
		return Done
	}

	for batch := range slices.Chunk(invitees, api.MaxInviteBatch) {
		if err := b.slack.InviteMembers(ctx, run.channel.ID, batch); err != nil && !api.IsAPIError(err, "already_in_channel") {
			logger.From(ctx).Error("failed to invite users to Slack channel", slog.Any("error", err),
				slog.String("channel_id", run.channel.ID), slog.Int("batch_size", len(batch)))
			b.reply(ctx, run.msg, fmt.Sprintf(inviteFailedMessage, run.name))
			return Failed
		}
	}

	logger.From(ctx).Info("invited users to Slack channel", slog.String("channel_id", run.channel.ID),
		slog.Int("user_count", len(invitees)))
	b.reply(ctx, run.msg, fmt.Sprintf(invitedMessage, run.name))
	return Done
}
