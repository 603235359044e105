// Package activities wraps the Slack API client in Temporal activities, which run in
// TeamBot's worker, and provides workflow-side functions to execute them. Slack API errors
// cross the activity boundary as non-retryable Temporal application errors, and are
// restored as [api.APIError] and [api.TransportError] values on the workflow side.
package activities

import (
	"context"
	"errors"
	"log/slog"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/tzrikka/teambot/internal/logger"
	"github.com/tzrikka/teambot/pkg/slack/api"
)

// Activity names, based on the Slack API methods that they call.
const (
	ChannelMembersActivity = "slack.conversations.members"
	WorkspaceUsersActivity = "slack.users.list"
	SubteamMembersActivity = "slack.usergroups.users.list"
	SubteamsActivity       = "slack.usergroups.list"
	UserProfileActivity    = "slack.users.info"
	ChannelExistsActivity  = "slack.conversations.exists"
	CreateChannelActivity  = "slack.conversations.create"
	InviteMembersActivity  = "slack.conversations.invite"
	PostMessageActivity    = "slack.chat.postMessage"
)

// Temporal application error types.
const (
	APIErrorType       = "SlackAPIError"
	TransportErrorType = "SlackTransportError"
)

// Client is the subset of [api.Client] methods that the activities call.
type Client interface {
	ListChannelMembers(ctx context.Context, channelID string) ([]string, error)
	ListWorkspaceUsers(ctx context.Context) ([]api.User, error)
	ListSubteamMembers(ctx context.Context, subteamID string) ([]string, error)
	ListSubteams(ctx context.Context) ([]api.Subteam, error)
	GetUserProfile(ctx context.Context, userID string) (api.User, error)
	ChannelExists(ctx context.Context, name string) (bool, error)
	CreateChannel(ctx context.Context, name string, private bool) (api.Channel, error)
	InviteMembers(ctx context.Context, channelID string, userIDs []string) error
	PostMessage(ctx context.Context, channelID, threadTS, text string) (string, error)
}

// Registry is implemented by Temporal workers and test environments.
type Registry interface {
	RegisterActivityWithOptions(a any, opts activity.RegisterOptions)
}

type Activities struct {
	client Client
}

func New(c Client) *Activities {
	return &Activities{client: c}
}

// Register maps all the Slack activity functions to their names.
func (a *Activities) Register(w Registry) {
	w.RegisterActivityWithOptions(a.ChannelMembers, activity.RegisterOptions{Name: ChannelMembersActivity})
	w.RegisterActivityWithOptions(a.WorkspaceUsers, activity.RegisterOptions{Name: WorkspaceUsersActivity})
	w.RegisterActivityWithOptions(a.SubteamMembers, activity.RegisterOptions{Name: SubteamMembersActivity})
	w.RegisterActivityWithOptions(a.Subteams, activity.RegisterOptions{Name: SubteamsActivity})
	w.RegisterActivityWithOptions(a.UserProfile, activity.RegisterOptions{Name: UserProfileActivity})
	w.RegisterActivityWithOptions(a.ChannelExists, activity.RegisterOptions{Name: ChannelExistsActivity})
	w.RegisterActivityWithOptions(a.CreateChannel, activity.RegisterOptions{Name: CreateChannelActivity})
	w.RegisterActivityWithOptions(a.InviteMembers, activity.RegisterOptions{Name: InviteMembersActivity})
	w.RegisterActivityWithOptions(a.PostMessage, activity.RegisterOptions{Name: PostMessageActivity})
}

func (a *Activities) ChannelMembers(ctx context.Context, channelID string) ([]string, error) {
	ids, err := a.client.ListChannelMembers(ctx, channelID)
	return ids, toApplicationError(ctx, err)
}

func (a *Activities) WorkspaceUsers(ctx context.Context) ([]api.User, error) {
	users, err := a.client.ListWorkspaceUsers(ctx)
	return users, toApplicationError(ctx, err)
}

func (a *Activities) SubteamMembers(ctx context.Context, subteamID string) ([]string, error) {
	ids, err := a.client.ListSubteamMembers(ctx, subteamID)
	return ids, toApplicationError(ctx, err)
}

func (a *Activities) Subteams(ctx context.Context) ([]api.Subteam, error) {
	subteams, err := a.client.ListSubteams(ctx)
	return subteams, toApplicationError(ctx, err)
}

func (a *Activities) UserProfile(ctx context.Context, userID string) (api.User, error) {
	user, err := a.client.GetUserProfile(ctx, userID)
	return user, toApplicationError(ctx, err)
}

func (a *Activities) ChannelExists(ctx context.Context, name string) (bool, error) {
	exists, err := a.client.ChannelExists(ctx, name)
	return exists, toApplicationError(ctx, err)
}

func (a *Activities) CreateChannel(ctx context.Context, name string, private bool) (api.Channel, error) {
	ch, err := a.client.CreateChannel(ctx, name, private)
	return ch, toApplicationError(ctx, err)
}

func (a *Activities) InviteMembers(ctx context.Context, channelID string, userIDs []string) error {
	return toApplicationError(ctx, a.client.InviteMembers(ctx, channelID, userIDs))
}

func (a *Activities) PostMessage(ctx context.Context, channelID, threadTS, text string) (string, error) {
	ts, err := a.client.PostMessage(ctx, channelID, threadTS, text)
	return ts, toApplicationError(ctx, err)
}

// toApplicationError converts Slack API client errors into non-retryable Temporal
// application errors, with the original error's fields as details.
func toApplicationError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Debug("Slack API call failed", slog.Any("error", err))

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return temporal.NewNonRetryableApplicationError(err.Error(), APIErrorType, err, *apiErr)
	}

	method := ""
	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		method = transportErr.Method
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), TransportErrorType, err, method)
}
