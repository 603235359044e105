package api

import (
	"github.com/slack-go/slack"
)

// User is a slimmer version of https://docs.slack.dev/reference/objects/user-object/.
// It crosses Temporal activity boundaries, so it must remain JSON-serializable.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	RealName    string `json:"real_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	IsBot       bool   `json:"is_bot,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
}

// PreferredName returns the user's display name, or their real name if they
// don't have one, or their username as a last resort. It is never empty
// unless the user object itself is empty.
func (u User) PreferredName() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.RealName != "":
		return u.RealName
	default:
		return u.Name
	}
}

func newUser(u *slack.User) User {
	realName := u.Profile.RealName
	if realName == "" {
		realName = u.RealName
	}

	return User{
		ID:          u.ID,
		Name:        u.Name,
		RealName:    realName,
		DisplayName: u.Profile.DisplayName,
		IsBot:       u.IsBot,
		Deleted:     u.Deleted,
	}
}

// https://docs.slack.dev/reference/objects/conversation-object/
type Channel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private"`
}

// Subteam is a slimmer version of https://docs.slack.dev/reference/objects/usergroup-object/.
type Subteam struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Name   string `json:"name,omitempty"`
}
