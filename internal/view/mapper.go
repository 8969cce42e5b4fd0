package view

import (
	"github.com/shopspring/decimal"

	"github.com/tokenradar/tokenradar/internal/domain"
	"github.com/tokenradar/tokenradar/internal/store/schema"
)

// MapSighting transforms one raw sighting document into the canonical
// Token shape. Numeric fields are rendered as canonical decimal text so no
// precision is lost in transit; absent optional fields map to nil.
func MapSighting(s schema.Sighting) domain.Token {
	return domain.Token{
		ID:            SightingID(s.ID),
		Symbol:        s.Symbol,
		Name:          s.Name,
		Address:       s.Contract,
		Marketcap:     decimalText(s.MarketCap),
		MarketcapCall: decimalText(s.MarketCapCall),
		Ath:           decimalText(s.ATH),
		Low:           decimalText(s.Low),
		AthAt:         s.ATHAt,
		LowAt:         s.LowAt,
		CreatedAt:     s.Date,
		UpdatedAt:     s.UpdatedAt,
		IsFavorite:    s.IsFavorite,
		Channel:       s.Channel,
		MessageID:     s.MessageID,
	}
}

// MapSightings maps a document slice, preserving order. Returns an empty
// slice for empty input, never nil.
func MapSightings(docs []schema.Sighting) []domain.Token {
	tokens := make([]domain.Token, 0, len(docs))
	for _, doc := range docs {
		tokens = append(tokens, MapSighting(doc))
	}
	return tokens
}

func decimalText(v *float64) *string {
	if v == nil {
		return nil
	}
	text := decimal.NewFromFloat(*v).String()
	return &text
}
