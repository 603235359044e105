package api

import (
	"errors"
	"fmt"

	"github.com/slack-go/slack"
)

var (
	ErrMissingToken        = errors.New("missing Slack bot token")
	ErrInviteBatchTooLarge = fmt.Errorf("more than %d users in a single Slack invite", MaxInviteBatch)
)

// APIError means that Slack responded, but with "ok": false.
type APIError struct {
	Method string `json:"method"`
	Code   string `json:"code"` // E.g. "channel_not_found", "name_taken".
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Slack API error in %s: %s", e.Method, e.Code)
}

// TransportError means that the call did not reach Slack, or its response
// could not be read (network failures, timeouts, HTTP errors, rate limiting).
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to call Slack API method %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the Slack error code of an [*APIError]
// anywhere in the error chain, or an empty string.
func ErrorCode(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// IsAPIError reports whether the error chain contains an [*APIError]
// with one of the given codes, or with any code if none are specified.
func IsAPIError(err error, codes ...string) bool {
	code := ErrorCode(err)
	if code == "" {
		return false
	}
	if len(codes) == 0 {
		return true
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// wrap classifies errors returned by the slack-go library.
func wrap(method string, err error) error {
	if err == nil {
		return nil
	}

	var resp slack.SlackErrorResponse
	if errors.As(err, &resp) {
		return &APIError{Method: method, Code: resp.Err}
	}
	var respPtr *slack.SlackErrorResponse
	if errors.As(err, &respPtr) && respPtr != nil {
		return &APIError{Method: method, Code: respPtr.Err}
	}

	return &TransportError{Method: method, Err: err}
}
