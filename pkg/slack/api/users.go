package api

import (
	"context"

	"github.com/slack-go/slack"
)

// ListWorkspaceUsers returns all the active (i.e. not deleted) human
// (i.e. not bot) users in the workspace, across all pages. If any page
// fails, the partial result is discarded and the whole call fails.
//
// https://docs.slack.dev/reference/methods/users.list
func (c *Client) ListWorkspaceUsers(ctx context.Context) ([]User, error) {
	p := c.api.GetUsersPaginated(slack.GetUsersOptionLimit(pageLimit))

	var users []User
	var err error
	for {
		p, err = p.Next(ctx)
		if p.Done(err) {
			return users, nil
		}
		if err != nil {
			return nil, wrap("users.list", err)
		}

		for i := range p.Users {
			u := newUser(&p.Users[i])
			if u.Deleted || u.IsBot || u.ID == "USLACKBOT" {
				continue
			}
			users = append(users, u)
		}
	}
}

// GetUserProfile returns the details of a single user.
//
// https://docs.slack.dev/reference/methods/users.info
func (c *Client) GetUserProfile(ctx context.Context, userID string) (User, error) {
	u, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return User{}, wrap("users.info", err)
	}
	return newUser(u), nil
}

// GetSelfUserID returns the user ID of the bot that owns the client's token.
//
// https://docs.slack.dev/reference/methods/auth.test
func (c *Client) GetSelfUserID(ctx context.Context) (string, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", wrap("auth.test", err)
	}
	return resp.UserID, nil
}
