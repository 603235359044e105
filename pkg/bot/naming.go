package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/teambot/internal/logger"
)

const (
	DefaultChannelNamePrefix = "temp_surprise-for-"

	// MaxNameProbes is the maximum number of channel names that [Bot.ResolveUniqueName]
	// checks: the base name, and then suffixes "-2" through "-100".
	MaxNameProbes = 100

	// https://docs.slack.dev/reference/methods/conversations.create#naming
	maxChannelNameLength = 80
	maxSuffixLength      = len("-100")
)

var ErrNamesExhausted = errors.New("all candidate channel names are already taken")

var (
	invalidNameChars  = regexp.MustCompile(`[^a-z0-9_-]+`)
	repeatedNameSeps  = regexp.MustCompile(`[_-]{2,}`)
	quotesInNameChars = regexp.MustCompile("['`]")
)

// ChannelNameBase derives a valid Slack channel name from a user's name: lower-cased,
// spaces replaced with hyphens, other invalid characters removed, and the result
// prefixed and truncated so that a numeric suffix still fits within Slack's limit.
func ChannelNameBase(prefix, seed string) string {
	seed = strings.ToLower(strings.TrimSpace(seed))
	seed = strings.ReplaceAll(seed, " ", "-")
	seed = quotesInNameChars.ReplaceAllString(seed, "")
	seed = invalidNameChars.ReplaceAllString(seed, "-")
	seed = repeatedNameSeps.ReplaceAllString(seed, "-")
	seed = strings.Trim(seed, "-_")

	if maxLen := maxChannelNameLength - maxSuffixLength - len(prefix); len(seed) > maxLen {
		seed = strings.TrimRight(seed[:max(maxLen, 0)], "-_")
	}

	return prefix + seed
}

// ResolveUniqueName returns the first channel name that doesn't exist yet, out of:
// the base name derived from the seed, and then the base name with the suffixes
// "-2", "-3", and so on. Each check depends on the result of the previous one,
// so they run sequentially. A channel with the same name may still be created by
// someone else between this check and the creation of the channel.
func (b *Bot) ResolveUniqueName(ctx workflow.Context, seed string) (string, error) {
	base := ChannelNameBase(b.cfg.ChannelNamePrefix, seed)

	for i := 1; i <= MaxNameProbes; i++ {
		name := base
		if i > 1 {
			name = fmt.Sprintf("%s-%d", base, i)
		}

		exists, err := b.slack.ChannelExists(ctx, name)
		if err != nil {
			logger.From(ctx).Error("failed to check if Slack channel exists",
				slog.Any("error", err), slog.String("channel_name", name))
			return "", err
		}
		if !exists {
			return name, nil
		}

		logger.From(ctx).Debug("Slack channel name already taken", slog.String("channel_name", name))
	}

	return "", fmt.Errorf("%w: %s (%d probes)", ErrNamesExhausted, base, MaxNameProbes)
}
