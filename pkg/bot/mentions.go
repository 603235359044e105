package bot

import (
	"regexp"
	"strings"
)

// https://docs.slack.dev/messaging/formatting-message-text/#mentioning-users
// https://docs.slack.dev/messaging/formatting-message-text/#mentioning-groups
var (
	userMentionPattern    = regexp.MustCompile(`<@(\w+)(\|[^>]*)?>`)
	subteamMentionPattern = regexp.MustCompile(`<!subteam\^(\w+)(\|[^>]*)?>`)
	pickFromPattern       = regexp.MustCompile(`\bpick from @?([\w.-]+)`)
)

const subteamMentionPrefix = "<!subteam^"

// lastUserMention returns the ID of the last user mentioned in the text,
// ignoring mentions of the given bot ID, or an empty string if there aren't any.
func lastUserMention(text, botID string) string {
	matches := userMentionPattern.FindAllStringSubmatch(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if id := strings.ToUpper(matches[i][1]); id != botID {
			return id
		}
	}
	return ""
}

// subteamMention returns the ID of the first subteam mentioned in the text. The
// boolean result reports whether the text contains a subteam mention token at all,
// so that a malformed token can be distinguished from no token.
func subteamMention(text string) (string, bool) {
	if !strings.Contains(text, subteamMentionPrefix) {
		return "", false
	}
	if m := subteamMentionPattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]), true
	}
	return "", true
}

// pickFromHandle returns the plain-text user group handle in a
// "pick from <handle>" command, or an empty string if there isn't one.
func pickFromHandle(text string) string {
	if m := pickFromPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
