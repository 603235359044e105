package workflows

// https://docs.slack.dev/apis/events-api/#events-JSON
type eventWrapper struct {
	APIAppID            string  `json:"api_app_id"`
	TeamID              string  `json:"team_id"`
	ContextTeamID       string  `json:"context_team_id"`
	ContextEnterpriseID *string `json:"context_enterprise_id,omitempty"`

	// Type string `json:"type"` // Always "event_callback".

	EventContext       string `json:"event_context"`
	EventID            string `json:"event_id"`
	EventTime          int    `json:"event_time"`
	IsExtSharedChannel bool   `json:"is_ext_shared_channel"`

	Authorizations []eventAuth `json:"authorizations"`
}

// https://docs.slack.dev/apis/events-api/#authorizations
type eventAuth struct {
	EnterpriseID        *string `json:"enterprise_id,omitempty"`
	TeamID              string  `json:"team_id"`
	UserID              string  `json:"user_id"`
	IsBot               bool    `json:"is_bot"`
	IsEnterpriseInstall bool    `json:"is_enterprise_install"`
}

type appMentionEventWrapper struct {
	eventWrapper

	InnerEvent MessageEvent `json:"event"`
}

type messageEventWrapper struct {
	eventWrapper

	InnerEvent MessageEvent `json:"event"`
}

// MessageEvent covers both of these event types, which share the same relevant fields:
//   - https://docs.slack.dev/reference/events/app_mention/
//   - https://docs.slack.dev/reference/events/message/
type MessageEvent struct {
	Type string `json:"type"` // "app_mention" or "message".

	// https://docs.slack.dev/reference/events/message/#subtypes
	Subtype string `json:"subtype,omitempty"`

	User     string `json:"user,omitempty"`
	BotID    string `json:"bot_id,omitempty"`
	Username string `json:"username,omitempty"` // Customized display name, when bot_id is present.

	Team    string `json:"team,omitempty"`
	Channel string `json:"channel,omitempty"`
	// ChannelType is "im" for DMs. It's missing in app_mention events.
	ChannelType string `json:"channel_type,omitempty"`

	Text string `json:"text,omitempty"`

	TS       string `json:"ts"`
	EventTS  string `json:"event_ts,omitempty"`
	ThreadTS string `json:"thread_ts,omitempty"`
}
