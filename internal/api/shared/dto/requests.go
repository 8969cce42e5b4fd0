package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apierrors "github.com/tokenradar/tokenradar/internal/api/shared/errors"
)

// CreateTokenRequest represents the request body for creating a token
type CreateTokenRequest struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	Marketcap     *string    `json:"marketcap,omitempty"`
	MarketcapCall *string    `json:"marketcapCall,omitempty"`
	Ath           *string    `json:"ath,omitempty"`
	AthAt         *time.Time `json:"athAt,omitempty"`
	Low           *string    `json:"low,omitempty"`
	LowAt         *time.Time `json:"lowAt,omitempty"`
	MessageID     *string    `json:"messageId,omitempty"`
}

// Validate validates the request body
func (r *CreateTokenRequest) Validate() error {
	// Validate: symbol, name, address must be provided
	if r.Symbol == "" {
		return apierrors.NewValidationError("symbol is required")
	}
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	if r.Address == "" {
		return apierrors.NewValidationError("address is required")
	}

	// Validate: numeric fields must be decimal text
	return validateDecimals(map[string]*string{
		"marketcap":     r.Marketcap,
		"marketcapCall": r.MarketcapCall,
		"ath":           r.Ath,
		"low":           r.Low,
	})
}

// UpdateTokenRequest represents the request body for a partial token update.
// Only non-nil fields are merged into the stored sighting.
type UpdateTokenRequest struct {
	Symbol        *string    `json:"symbol,omitempty"`
	Name          *string    `json:"name,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Marketcap     *string    `json:"marketcap,omitempty"`
	MarketcapCall *string    `json:"marketcapCall,omitempty"`
	Ath           *string    `json:"ath,omitempty"`
	AthAt         *time.Time `json:"athAt,omitempty"`
	Low           *string    `json:"low,omitempty"`
	LowAt         *time.Time `json:"lowAt,omitempty"`
	IsFavorite    *bool      `json:"isFavorite,omitempty"`
}

// Validate validates the request body
func (r *UpdateTokenRequest) Validate() error {
	// Validate: provided identity fields must not be blanked out
	if r.Symbol != nil && *r.Symbol == "" {
		return apierrors.NewValidationError("symbol must not be empty")
	}
	if r.Name != nil && *r.Name == "" {
		return apierrors.NewValidationError("name must not be empty")
	}
	if r.Address != nil && *r.Address == "" {
		return apierrors.NewValidationError("address must not be empty")
	}

	// Validate: numeric fields must be decimal text
	return validateDecimals(map[string]*string{
		"marketcap":     r.Marketcap,
		"marketcapCall": r.MarketcapCall,
		"ath":           r.Ath,
		"low":           r.Low,
	})
}

// WebhookRequest represents the request body for ingesting a sighting from
// an external collector
type WebhookRequest struct {
	ChannelTelegramID string              `json:"channelTelegramId"`
	TokenData         *CreateTokenRequest `json:"tokenData"`
}

// Validate validates the request body
func (r *WebhookRequest) Validate() error {
	// Validate: channel and token payload must be provided
	if r.ChannelTelegramID == "" {
		return apierrors.NewValidationError("channelTelegramId is required")
	}
	if r.TokenData == nil {
		return apierrors.NewValidationError("tokenData is required")
	}

	return r.TokenData.Validate()
}

func validateDecimals(fields map[string]*string) error {
	for field, value := range fields {
		if value == nil {
			continue
		}
		if _, err := decimal.NewFromString(*value); err != nil {
			return apierrors.NewValidationError(fmt.Sprintf("%s must be a decimal number", field))
		}
	}
	return nil
}
