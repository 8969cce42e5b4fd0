package view

import (
	"regexp"
	"strings"

	"github.com/tokenradar/tokenradar/internal/domain"
)

// channelPalette is the fixed display palette; channels pick a color by
// ordinal position, cycling when there are more channels than entries.
var channelPalette = [8]string{
	"#00C853",
	"#FF9800",
	"#F44336",
	"#9C27B0",
	"#3F51B5",
	"#E91E63",
	"#009688",
	"#795548",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ChannelSlug derives the slug-like telegram identifier for a channel
// name: lowercased, with runs of whitespace collapsed to underscores.
func ChannelSlug(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "_")
}

// ChannelAt builds the Channel record for a name at the given ordinal
// position among the distinct channel names. Identity is positional: id and
// color shift if the distinct-name order changes between derivations.
func ChannelAt(name string, ordinal int) domain.Channel {
	return domain.Channel{
		ID:         int64(ordinal) + 1,
		Name:       name,
		TelegramID: ChannelSlug(name),
		Color:      channelPalette[ordinal%len(channelPalette)],
		IsActive:   true,
	}
}

// DeriveChannels computes one Channel per distinct channel name, in
// first-seen order. Empty names are skipped. The input is typically the
// store's distinct-channel listing in its natural order.
func DeriveChannels(names []string) []domain.Channel {
	seen := make(map[string]struct{}, len(names))
	channels := make([]domain.Channel, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		channels = append(channels, ChannelAt(name, len(channels)))
	}
	return channels
}
