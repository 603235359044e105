package api

import (
	"context"

	"github.com/slack-go/slack"
)

// ListChannelMembers returns the IDs of all the members in a channel, across all pages.
// If any page fails, the partial result is discarded and the whole call fails.
//
// https://docs.slack.dev/reference/methods/conversations.members
func (c *Client) ListChannelMembers(ctx context.Context, channelID string) ([]string, error) {
	params := &slack.GetUsersInConversationParameters{ChannelID: channelID, Limit: pageLimit}

	var members []string
	for {
		page, cursor, err := c.api.GetUsersInConversationContext(ctx, params)
		if err != nil {
			return nil, wrap("conversations.members", err)
		}

		members = append(members, page...)
		if cursor == "" {
			return members, nil
		}
		params.Cursor = cursor
	}
}

// ListSubteamMembers returns the IDs of all the users in a user group.
//
// https://docs.slack.dev/reference/methods/usergroups.users.list
func (c *Client) ListSubteamMembers(ctx context.Context, subteamID string) ([]string, error) {
	users, err := c.api.GetUserGroupMembersContext(ctx, subteamID)
	if err != nil {
		return nil, wrap("usergroups.users.list", err)
	}
	return users, nil
}

// ListSubteams returns all the (enabled) user groups in the workspace.
//
// https://docs.slack.dev/reference/methods/usergroups.list
func (c *Client) ListSubteams(ctx context.Context) ([]Subteam, error) {
	groups, err := c.api.GetUserGroupsContext(ctx)
	if err != nil {
		return nil, wrap("usergroups.list", err)
	}

	subteams := make([]Subteam, 0, len(groups))
	for _, g := range groups {
		subteams = append(subteams, Subteam{ID: g.ID, Handle: g.Handle, Name: g.Name})
	}
	return subteams, nil
}
