package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tokenradar/tokenradar/internal/store/schema"
)

// ContractGroup is one aggregation bucket: every sighting sharing a
// contract address, plus the distinct channel names among them. Grouping is
// byte-exact on the address; differently-cased addresses form distinct
// groups.
type ContractGroup struct {
	Contract  string            `bson:"_id"`
	Channels  []string          `bson:"channels"`
	Sightings []schema.Sighting `bson:"docs"`
}

// Store defines the interface for sighting collection operations
type Store interface {
	// ListSightings returns every sighting in the collection's natural
	// iteration order
	ListSightings(ctx context.Context) ([]schema.Sighting, error)
	// ListSightingsByChannel returns every sighting whose channel name
	// equals the given name
	ListSightingsByChannel(ctx context.Context, channel string) ([]schema.Sighting, error)
	// FindFirstByContract returns the first sighting matching the contract
	// address, or nil when none matches
	FindFirstByContract(ctx context.Context, contract string) (*schema.Sighting, error)
	// FindByContractAndChannel returns the sighting matching both the exact
	// contract address and the exact channel name, or nil
	FindByContractAndChannel(ctx context.Context, contract, channel string) (*schema.Sighting, error)
	// SearchSightings returns sightings whose symbol, name, or contract
	// contains the query (case-insensitive), optionally constrained to one
	// channel name
	SearchSightings(ctx context.Context, query, channel string) ([]schema.Sighting, error)
	// InsertSighting inserts a new sighting and returns it with its
	// assigned document id
	InsertSighting(ctx context.Context, s *schema.Sighting) (*schema.Sighting, error)
	// UpdateSighting merges the non-nil update fields into the sighting
	// with the given document id, always bumping updatedAt; returns the
	// updated document or nil when the id matches nothing
	UpdateSighting(ctx context.Context, id bson.ObjectID, update schema.SightingUpdate) (*schema.Sighting, error)
	// DeleteSighting removes the sighting with the given document id and
	// reports whether one was removed
	DeleteSighting(ctx context.Context, id bson.ObjectID) (bool, error)
	// SetFavoriteByContract applies the favorite flag to every sighting
	// sharing the contract address in a single filtered update, returning
	// the number of matched documents
	SetFavoriteByContract(ctx context.Context, contract string, favorite bool) (int64, error)
	// DistinctChannels returns the distinct channel names in the store's
	// natural order, empty names included (callers filter)
	DistinctChannels(ctx context.Context) ([]string, error)
	// GroupByContract groups sightings by contract address and returns the
	// groups whose distinct-channel count is at least minChannels. When
	// favoritesOnly is set, only favorited sightings enter the grouping.
	GroupByContract(ctx context.Context, minChannels int, favoritesOnly bool) ([]ContractGroup, error)
	// EnsureIndexes creates the collection indexes used by lookups
	EnsureIndexes(ctx context.Context) error
}
