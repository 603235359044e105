// Package api is a thin client for the subset of the Slack Web API that TeamBot
// uses. It is based on [slack-go], but normalizes pagination (every list call
// returns the concatenation of all pages, or an error) and error reporting
// (every failure is either an [*APIError] or a [*TransportError]).
//
// [slack-go]: https://pkg.go.dev/github.com/slack-go/slack
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

const (
	DefaultTimeout = 30 * time.Second

	// Page size for cursor-based list methods. Slack recommends no more than 200.
	pageLimit = 200
)

// Config is the explicit, per-process configuration of a [Client].
type Config struct {
	Token   string        // Bot token ("xoxb-..."), sent as a bearer credential.
	APIURL  string        // Optional, defaults to [slack.APIURL].
	Timeout time.Duration // Optional, defaults to [DefaultTimeout].
}

// Client calls Slack Web API methods on behalf of a single bot user in a single workspace.
// It holds no mutable state, so it is safe for concurrent use.
type Client struct {
	api *slack.Client
}

// New initializes a [Client]. A missing token is a configuration error,
// because every call would be rejected anyway.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, ErrMissingToken
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := []slack.Option{slack.OptionHTTPClient(&http.Client{Timeout: timeout})}
	if cfg.APIURL != "" {
		u := cfg.APIURL
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		opts = append(opts, slack.OptionAPIURL(u))
	}

	return &Client{api: slack.New(cfg.Token, opts...)}, nil
}
