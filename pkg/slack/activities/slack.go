package activities

import (
	"errors"
	"log/slog"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
	"github.com/tzrikka/teambot/pkg/bot"
	"github.com/tzrikka/teambot/pkg/slack/api"
)

// DefaultTimeout is the default start-to-close timeout of Slack activities.
// It covers all the pages of paginated API calls, not just a single request.
const DefaultTimeout = 2 * time.Minute

// Slack implements [bot.Slack] in Temporal workflows, by executing the activities
// registered by [Activities.Register]. Activities are attempted only once.
type Slack struct {
	Timeout time.Duration
}

var _ bot.Slack = Slack{}

func (s Slack) ChannelMembers(ctx workflow.Context, channelID string) ([]string, error) {
	var ids []string
	err := s.execute(ctx, ChannelMembersActivity, &ids, channelID)
	return ids, err
}

func (s Slack) WorkspaceUsers(ctx workflow.Context) ([]api.User, error) {
	var users []api.User
	err := s.execute(ctx, WorkspaceUsersActivity, &users)
	return users, err
}

func (s Slack) SubteamMembers(ctx workflow.Context, subteamID string) ([]string, error) {
	var ids []string
	err := s.execute(ctx, SubteamMembersActivity, &ids, subteamID)
	return ids, err
}

func (s Slack) Subteams(ctx workflow.Context) ([]api.Subteam, error) {
	var subteams []api.Subteam
	err := s.execute(ctx, SubteamsActivity, &subteams)
	return subteams, err
}

func (s Slack) UserProfile(ctx workflow.Context, userID string) (api.User, error) {
	var user api.User
	err := s.execute(ctx, UserProfileActivity, &user, userID)
	return user, err
}

func (s Slack) ChannelExists(ctx workflow.Context, name string) (bool, error) {
	var exists bool
	err := s.execute(ctx, ChannelExistsActivity, &exists, name)
	return exists, err
}

func (s Slack) CreateChannel(ctx workflow.Context, name string, private bool) (api.Channel, error) {
	var ch api.Channel
	err := s.execute(ctx, CreateChannelActivity, &ch, name, private)
	return ch, err
}

func (s Slack) InviteMembers(ctx workflow.Context, channelID string, userIDs []string) error {
	return s.execute(ctx, InviteMembersActivity, nil, channelID, userIDs)
}

func (s Slack) Reply(ctx workflow.Context, msg bot.InboundMessage, text string) error {
	return s.execute(ctx, PostMessageActivity, nil, msg.ChannelID, msg.ThreadTS, text)
}

func (s Slack) execute(ctx workflow.Context, name string, result any, args ...any) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: timeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	start := workflow.Now(ctx)
	err := workflow.ExecuteActivity(ctx, name, args...).Get(ctx, result)
	logger.From(ctx).Debug("executed Slack activity", slog.String("activity", name),
		slog.Duration("duration", workflow.Now(ctx).Sub(start)), slog.Any("error", err))

	return fromActivityError(name, err)
}

// fromActivityError restores the Slack API client error that was
// converted by [toApplicationError] in the activity's worker.
func fromActivityError(activity string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		switch appErr.Type() {
		case APIErrorType:
			var apiErr api.APIError
			if appErr.HasDetails() && appErr.Details(&apiErr) == nil {
				return &apiErr
			}
		case TransportErrorType:
			var method string
			if appErr.HasDetails() && appErr.Details(&method) == nil && method != "" {
				return &api.TransportError{Method: method, Err: errors.New(appErr.Message())}
			}
		}
	}

	// Timeouts, cancellations, and unexpected errors.
	return &api.TransportError{Method: activity, Err: err}
}
