package bot

import (
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
)

type scopeKind int

const (
	channelScope scopeKind = iota
	subteamScope
	workspaceScope
)

// Scope identifies a set of Slack users: the members of a
// channel, the members of a subteam, or the whole workspace.
type Scope struct {
	kind scopeKind
	id   string
}

func ChannelScope(channelID string) Scope {
	return Scope{kind: channelScope, id: channelID}
}

func SubteamScope(subteamID string) Scope {
	return Scope{kind: subteamScope, id: subteamID}
}

// WorkspaceScope covers all the active human users in the workspace.
func WorkspaceScope() Scope {
	return Scope{kind: workspaceScope}
}

func (s Scope) String() string {
	switch s.kind {
	case channelScope:
		return "channel " + s.id
	case subteamScope:
		return "subteam " + s.id
	default:
		return "workspace"
	}
}

// MembersOf returns the deduplicated IDs of all the users in the given
// scope, in their original order, without the excluded ID (if not empty).
func (b *Bot) MembersOf(ctx workflow.Context, s Scope, excluding string) ([]string, error) {
	var ids []string
	var err error

	switch s.kind {
	case channelScope:
		ids, err = b.slack.ChannelMembers(ctx, s.id)
	case subteamScope:
		ids, err = b.slack.SubteamMembers(ctx, s.id)
	case workspaceScope:
		users, wsErr := b.slack.WorkspaceUsers(ctx)
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		err = wsErr
	default:
		err = fmt.Errorf("unknown scope kind: %d", s.kind)
	}

	if err != nil {
		logger.From(ctx).Error("failed to list Slack users", slog.Any("error", err), slog.String("scope", s.String()))
		return nil, err
	}

	return filterMembers(ids, excluding), nil
}

func filterMembers(ids []string, excluding string) []string {
	seen := make(map[string]bool, len(ids))
	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == excluding || seen[id] {
			continue
		}
		seen[id] = true
		filtered = append(filtered, id)
	}
	return filtered
}

// pickMember returns a uniformly-random element of a non-empty list.
func (b *Bot) pickMember(ctx workflow.Context, ids []string) string {
	return ids[b.rand(ctx, len(ids))]
}
