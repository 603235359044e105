package api

import (
	"context"

	"github.com/slack-go/slack"
)

// PostMessage posts a plain text message to a channel. If threadTS is not empty,
// the message is posted as a reply in that thread. It returns the new message's timestamp.
//
// https://docs.slack.dev/reference/methods/chat.postMessage
func (c *Client) PostMessage(ctx context.Context, channelID, threadTS, text string) (string, error) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return "", wrap("chat.postMessage", err)
	}
	return ts, nil
}
