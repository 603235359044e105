package api

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// MaxInviteBatch is the maximum number of users in a single call to
// [Client.InviteMembers]. This is a Slack API limitation.
const MaxInviteBatch = 1000

var channelTypes = []string{"public_channel", "private_channel"}

// ChannelExists checks whether any public or private channel visible to the bot
// (including archived ones, which still hold their names) is called exactly name.
// This is a snapshot: a channel may be created with the same name right after this check.
//
// https://docs.slack.dev/reference/methods/conversations.list
func (c *Client) ChannelExists(ctx context.Context, name string) (bool, error) {
	params := &slack.GetConversationsParameters{Types: channelTypes, Limit: pageLimit}

	for {
		channels, cursor, err := c.api.GetConversationsContext(ctx, params)
		if err != nil {
			return false, wrap("conversations.list", err)
		}

		for _, ch := range channels {
			if ch.Name == name {
				return true, nil
			}
		}

		if cursor == "" {
			return false, nil
		}
		params.Cursor = cursor
	}
}

// https://docs.slack.dev/reference/methods/conversations.create
func (c *Client) CreateChannel(ctx context.Context, name string, private bool) (Channel, error) {
	ch, err := c.api.CreateConversationContext(ctx, slack.CreateConversationParams{
		ChannelName: name,
		IsPrivate:   private,
	})
	if err != nil {
		return Channel{}, wrap("conversations.create", err)
	}

	return Channel{ID: ch.ID, Name: ch.Name, IsPrivate: ch.IsPrivate}, nil
}

// InviteMembers adds users to a channel in a single call. The caller is responsible
// for splitting larger sets into batches of up to [MaxInviteBatch] users.
//
// https://docs.slack.dev/reference/methods/conversations.invite
func (c *Client) InviteMembers(ctx context.Context, channelID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	if len(userIDs) > MaxInviteBatch {
		return fmt.Errorf("%w: %d", ErrInviteBatchTooLarge, len(userIDs))
	}

	if _, err := c.api.InviteUsersToConversationContext(ctx, channelID, userIDs...); err != nil {
		return wrap("conversations.invite", err)
	}
	return nil
}
