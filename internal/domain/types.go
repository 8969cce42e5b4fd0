package domain

import (
	"time"
)

// Token is the canonical view of one token sighting, exposed upward to the
// API layer. Its ID is a surrogate derived from the store-native document
// identifier and is only stable within a single process lifetime.
type Token struct {
	// ID is the derived numeric surrogate id
	ID int64
	// Symbol is the token ticker symbol (e.g. "FOO")
	Symbol string
	// Name is the token display name
	Name string
	// Address is the on-chain contract address
	Address string
	// Marketcap is the current market cap as canonical decimal text
	Marketcap *string
	// MarketcapCall is the market cap at the time of the original call
	MarketcapCall *string
	// Ath is the all-time-high value as canonical decimal text
	Ath *string
	// Low is the lowest observed value as canonical decimal text
	Low *string
	// AthAt is when the all-time high was reached
	AthAt *time.Time
	// LowAt is when the low was reached
	LowAt *time.Time
	// CreatedAt is the observation timestamp of the underlying sighting
	CreatedAt *time.Time
	// UpdatedAt is the last-update timestamp of the underlying sighting
	UpdatedAt *time.Time
	// IsFavorite reports whether the sighting is marked as a favorite
	IsFavorite bool
	// Channel is the name of the channel the sighting came from
	Channel string
	// MessageID is the collector-side message reference, when present
	MessageID *string
}

// Channel is derived from the distinct channel names observed in the
// sighting collection. Channels are never persisted: id and color are
// positional (first-seen ordinal among distinct names) and may shift when
// the distinct-name order changes. Treat the id as a display handle, not a
// durable foreign key.
type Channel struct {
	ID         int64
	Name       string
	TelegramID string
	Color      string
	IsActive   bool
}

// ChannelWithDiscovery annotates a Channel with the timestamp at which a
// particular token was discovered in it.
type ChannelWithDiscovery struct {
	Channel
	DiscoveredAt time.Time
}

// TokenWithChannels is a Token plus the set of channels it was sighted in.
// Produced only by aggregation over same-address sightings.
type TokenWithChannels struct {
	Token
	Channels []ChannelWithDiscovery
}

// TokenWithDiscovery annotates a Token with its discovery timestamp inside
// one specific channel.
type TokenWithDiscovery struct {
	Token
	DiscoveredAt time.Time
}

// ChannelWithTokens is a Channel plus every token sighted in it.
type ChannelWithTokens struct {
	Channel
	Tokens     []TokenWithDiscovery
	TokenCount int
}
