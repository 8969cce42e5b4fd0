package dto

import (
	"time"

	"github.com/tokenradar/tokenradar/internal/domain"
)

// ChannelResponse represents a derived channel
type ChannelResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TelegramID string `json:"telegramId"`
	Color      string `json:"color"`
	IsActive   bool   `json:"isActive"`
}

// TokenResponse represents a token with optional channel annotations
type TokenResponse struct {
	ID            int64      `json:"id"`
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	Marketcap     *string    `json:"marketcap"`
	MarketcapCall *string    `json:"marketcapCall"`
	Ath           *string    `json:"ath"`
	AthAt         *time.Time `json:"athAt"`
	Low           *string    `json:"low"`
	LowAt         *time.Time `json:"lowAt"`
	CreatedAt     *time.Time `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
	IsFavorite    bool       `json:"isFavorite"`
	Channel       string     `json:"channel,omitempty"`
	MessageID     *string    `json:"messageId,omitempty"`

	// Annotations
	DiscoveredAt *time.Time `json:"discoveredAt,omitempty"`
}

// ChannelWithDiscoveryResponse represents a channel annotated with when a
// token was discovered in it
type ChannelWithDiscoveryResponse struct {
	ChannelResponse
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// TokenWithChannelsResponse represents a token plus the channels it was
// sighted in
type TokenWithChannelsResponse struct {
	TokenResponse
	Channels []ChannelWithDiscoveryResponse `json:"channels"`
}

// ChannelWithTokensResponse represents a channel plus its tokens
type ChannelWithTokensResponse struct {
	ChannelResponse
	Tokens     []TokenResponse `json:"tokens"`
	TokenCount int             `json:"tokenCount"`
}

// FavoriteToggleResponse represents the outcome of a favorite toggle
type FavoriteToggleResponse struct {
	Address  string `json:"address"`
	Favorite bool   `json:"favorite"`
}

// MessageResponse represents a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// NewChannelResponse converts a domain channel
func NewChannelResponse(c domain.Channel) ChannelResponse {
	return ChannelResponse{
		ID:         c.ID,
		Name:       c.Name,
		TelegramID: c.TelegramID,
		Color:      c.Color,
		IsActive:   c.IsActive,
	}
}

// NewChannelResponses converts a domain channel slice, preserving order
func NewChannelResponses(channels []domain.Channel) []ChannelResponse {
	out := make([]ChannelResponse, 0, len(channels))
	for _, c := range channels {
		out = append(out, NewChannelResponse(c))
	}
	return out
}

// NewTokenResponse converts a domain token
func NewTokenResponse(t domain.Token) TokenResponse {
	return TokenResponse{
		ID:            t.ID,
		Symbol:        t.Symbol,
		Name:          t.Name,
		Address:       t.Address,
		Marketcap:     t.Marketcap,
		MarketcapCall: t.MarketcapCall,
		Ath:           t.Ath,
		AthAt:         t.AthAt,
		Low:           t.Low,
		LowAt:         t.LowAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		IsFavorite:    t.IsFavorite,
		Channel:       t.Channel,
		MessageID:     t.MessageID,
	}
}

// NewTokenResponses converts a domain token slice, preserving order
func NewTokenResponses(tokens []domain.Token) []TokenResponse {
	out := make([]TokenResponse, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, NewTokenResponse(t))
	}
	return out
}

// NewTokenWithDiscoveryResponse converts a channel-scoped token, attaching
// its discovery timestamp
func NewTokenWithDiscoveryResponse(t domain.TokenWithDiscovery) TokenResponse {
	resp := NewTokenResponse(t.Token)
	discoveredAt := t.DiscoveredAt
	resp.DiscoveredAt = &discoveredAt
	return resp
}

// NewTokenWithChannelsResponse converts an aggregated token
func NewTokenWithChannelsResponse(t domain.TokenWithChannels) TokenWithChannelsResponse {
	channels := make([]ChannelWithDiscoveryResponse, 0, len(t.Channels))
	for _, c := range t.Channels {
		channels = append(channels, ChannelWithDiscoveryResponse{
			ChannelResponse: NewChannelResponse(c.Channel),
			DiscoveredAt:    c.DiscoveredAt,
		})
	}
	return TokenWithChannelsResponse{
		TokenResponse: NewTokenResponse(t.Token),
		Channels:      channels,
	}
}

// NewTokenWithChannelsResponses converts an aggregated token slice
func NewTokenWithChannelsResponses(tokens []domain.TokenWithChannels) []TokenWithChannelsResponse {
	out := make([]TokenWithChannelsResponse, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, NewTokenWithChannelsResponse(t))
	}
	return out
}

// NewChannelWithTokensResponse converts a channel with its token listing
func NewChannelWithTokensResponse(c domain.ChannelWithTokens) ChannelWithTokensResponse {
	tokens := make([]TokenResponse, 0, len(c.Tokens))
	for _, t := range c.Tokens {
		tokens = append(tokens, NewTokenWithDiscoveryResponse(t))
	}
	return ChannelWithTokensResponse{
		ChannelResponse: NewChannelResponse(c.Channel),
		Tokens:          tokens,
		TokenCount:      c.TokenCount,
	}
}

// NewChannelWithTokensResponses converts a channel-with-tokens slice
func NewChannelWithTokensResponses(channels []domain.ChannelWithTokens) []ChannelWithTokensResponse {
	out := make([]ChannelWithTokensResponse, 0, len(channels))
	for _, c := range channels {
		out = append(out, NewChannelWithTokensResponse(c))
	}
	return out
}
