package view

import (
	"time"

	"github.com/tokenradar/tokenradar/internal/domain"
	"github.com/tokenradar/tokenradar/internal/store/schema"
)

// sightingClock is the recency instant of a sighting: the update timestamp
// when present, the observation timestamp otherwise, zero when both are
// absent.
func sightingClock(s schema.Sighting) time.Time {
	if s.UpdatedAt != nil {
		return *s.UpdatedAt
	}
	if s.Date != nil {
		return *s.Date
	}
	return time.Time{}
}

// Representative selects the latest sighting of a group by sightingClock.
// Ties keep the earlier document in iteration order. The slice must be
// non-empty.
func Representative(docs []schema.Sighting) schema.Sighting {
	rep := docs[0]
	best := sightingClock(rep)
	for _, doc := range docs[1:] {
		if clock := sightingClock(doc); clock.After(best) {
			rep = doc
			best = clock
		}
	}
	return rep
}

// BuildTokenWithChannels turns one contract group into a TokenWithChannels:
// the group's latest sighting mapped as the Token, annotated with the
// derived Channel for each distinct channel name in the group. Every
// channel carries the representative's observation timestamp as its
// discovery instant; when the representative has none, the current time is
// used. Channel names not present in the derived channel set are skipped.
func BuildTokenWithChannels(docs []schema.Sighting, channelNames []string, channels []domain.Channel) domain.TokenWithChannels {
	rep := Representative(docs)
	token := MapSighting(rep)

	discoveredAt := time.Now().UTC()
	if rep.Date != nil {
		discoveredAt = *rep.Date
	}

	byName := make(map[string]domain.Channel, len(channels))
	for _, c := range channels {
		byName[c.Name] = c
	}

	withDiscovery := make([]domain.ChannelWithDiscovery, 0, len(channelNames))
	for _, name := range channelNames {
		channel, ok := byName[name]
		if !ok {
			continue
		}
		withDiscovery = append(withDiscovery, domain.ChannelWithDiscovery{
			Channel:      channel,
			DiscoveredAt: discoveredAt,
		})
	}

	return domain.TokenWithChannels{
		Token:    token,
		Channels: withDiscovery,
	}
}
