package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SightingCollection is the collection the Telegram collectors write into.
const SightingCollection = "tokens"

// Sighting is one raw observation of a token mentioned in a channel, as
// stored by the external collectors. Several sightings may share a contract
// address (same token called in different channels, or re-called in the
// same channel); duplicates are tolerated and resolved at aggregation time.
type Sighting struct {
	// ID is the store-native document identifier
	ID bson.ObjectID `bson:"_id,omitempty"`
	// Channel is the name of the Telegram channel the mention was seen in
	Channel string `bson:"channel"`
	// Contract is the on-chain contract address, stored byte-exact
	Contract string `bson:"contract"`
	// Name is the token display name
	Name string `bson:"name"`
	// Symbol is the token ticker symbol
	Symbol string `bson:"symbol"`
	// MarketCap is the market cap at the last update
	MarketCap *float64 `bson:"marketCap,omitempty"`
	// MarketCapCall is the market cap at the time of the original call
	MarketCapCall *float64 `bson:"marketCapCall,omitempty"`
	// ATH is the highest value observed since the call
	ATH *float64 `bson:"ath,omitempty"`
	// ATHAt is when the all-time high was reached
	ATHAt *time.Time `bson:"ath_at,omitempty"`
	// Low is the lowest value observed since the call
	Low *float64 `bson:"low,omitempty"`
	// LowAt is when the low was reached
	LowAt *time.Time `bson:"low_at,omitempty"`
	// Date is the observation timestamp
	Date *time.Time `bson:"date,omitempty"`
	// UpdatedAt is bumped by collectors and by API mutations
	UpdatedAt *time.Time `bson:"updatedAt,omitempty"`
	// MessageID is the collector-side Telegram message reference
	MessageID *string `bson:"messageId,omitempty"`
	// IsFavorite marks the sighting as a user favorite
	IsFavorite bool `bson:"isFavorite,omitempty"`
}

// SightingUpdate carries the fields of a partial update. Nil fields are
// left untouched in the stored document.
type SightingUpdate struct {
	Symbol        *string
	Name          *string
	Contract      *string
	MarketCap     *float64
	MarketCapCall *float64
	ATH           *float64
	ATHAt         *time.Time
	Low           *float64
	LowAt         *time.Time
	IsFavorite    *bool
}
