package bot

import (
	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/pkg/slack/api"
)

// fakeSlack is an in-memory [Slack] implementation that records all the calls.
type fakeSlack struct {
	channelMembers map[string][]string
	subteamMembers map[string][]string
	workspaceUsers []api.User
	subteams       []api.Subteam
	users          map[string]api.User

	// existing is consumed in order: one result per ChannelExists call.
	existing  []bool
	existsErr error

	listErr    error
	profileErr error
	createErr  error
	inviteErr  error

	probes  []string
	created []string
	invited [][]string
	replies []string
}

func (f *fakeSlack) ChannelMembers(_ workflow.Context, channelID string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.channelMembers[channelID], nil
}

func (f *fakeSlack) WorkspaceUsers(_ workflow.Context) ([]api.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.workspaceUsers, nil
}

func (f *fakeSlack) SubteamMembers(_ workflow.Context, subteamID string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.subteamMembers[subteamID], nil
}

func (f *fakeSlack) Subteams(_ workflow.Context) ([]api.Subteam, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.subteams, nil
}

func (f *fakeSlack) UserProfile(_ workflow.Context, userID string) (api.User, error) {
	if f.profileErr != nil {
		return api.User{}, f.profileErr
	}
	u, ok := f.users[userID]
	if !ok {
		return api.User{}, &api.APIError{Method: "users.info", Code: "user_not_found"}
	}
	return u, nil
}

func (f *fakeSlack) ChannelExists(_ workflow.Context, name string) (bool, error) {
	f.probes = append(f.probes, name)
	if f.existsErr != nil {
		return false, f.existsErr
	}
	if len(f.existing) == 0 {
		return false, nil
	}
	exists := f.existing[0]
	f.existing = f.existing[1:]
	return exists, nil
}

func (f *fakeSlack) CreateChannel(_ workflow.Context, name string, private bool) (api.Channel, error) {
	if f.createErr != nil {
		return api.Channel{}, f.createErr
	}
	f.created = append(f.created, name)
	return api.Channel{ID: "G123", Name: name, IsPrivate: private}, nil
}

func (f *fakeSlack) InviteMembers(_ workflow.Context, _ string, userIDs []string) error {
	f.invited = append(f.invited, userIDs)
	return f.inviteErr
}

func (f *fakeSlack) Reply(_ workflow.Context, _ InboundMessage, text string) error {
	f.replies = append(f.replies, text)
	return nil
}

// firstIndex is a deterministic [Rand].
func firstIndex(_ workflow.Context, _ int) int {
	return 0
}

func lastIndex(_ workflow.Context, n int) int {
	return n - 1
}
