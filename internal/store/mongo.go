package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tokenradar/tokenradar/internal/store/schema"
)

type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a new MongoDB-backed store over the sighting
// collection of the given database.
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection(schema.SightingCollection)}
}

// Connect opens a MongoDB client for the given connection string, verifies
// connectivity, and returns the client together with the database handle.
// Callers own the client and must Disconnect it on shutdown.
func Connect(ctx context.Context, uri, dbName string, maxPoolSize, minPoolSize uint64) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(uri)
	if maxPoolSize > 0 {
		opts.SetMaxPoolSize(maxPoolSize)
	}
	if minPoolSize > 0 {
		opts.SetMinPoolSize(minPoolSize)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the lookup indexes on channel, contract, and symbol.
func (s *mongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "channel", Value: 1}}},
		{Keys: bson.D{{Key: "contract", Value: 1}}},
		{Keys: bson.D{{Key: "symbol", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (s *mongoStore) ListSightings(ctx context.Context) ([]schema.Sighting, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoStore) ListSightingsByChannel(ctx context.Context, channel string) ([]schema.Sighting, error) {
	return s.find(ctx, bson.M{"channel": channel})
}

func (s *mongoStore) FindFirstByContract(ctx context.Context, contract string) (*schema.Sighting, error) {
	return s.findOne(ctx, bson.M{"contract": contract})
}

func (s *mongoStore) FindByContractAndChannel(ctx context.Context, contract, channel string) (*schema.Sighting, error) {
	return s.findOne(ctx, bson.M{"contract": contract, "channel": channel})
}

func (s *mongoStore) SearchSightings(ctx context.Context, query, channel string) ([]schema.Sighting, error) {
	pattern := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"symbol": pattern},
			bson.M{"name": pattern},
			bson.M{"contract": pattern},
		},
	}
	if channel != "" {
		filter["channel"] = channel
	}
	return s.find(ctx, filter)
}

func (s *mongoStore) InsertSighting(ctx context.Context, sighting *schema.Sighting) (*schema.Sighting, error) {
	result, err := s.coll.InsertOne(ctx, sighting)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sighting: %w", err)
	}

	inserted := *sighting
	if id, ok := result.InsertedID.(bson.ObjectID); ok {
		inserted.ID = id
	}
	return &inserted, nil
}

func (s *mongoStore) UpdateSighting(ctx context.Context, id bson.ObjectID, update schema.SightingUpdate) (*schema.Sighting, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Symbol != nil {
		set["symbol"] = *update.Symbol
	}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Contract != nil {
		set["contract"] = *update.Contract
	}
	if update.MarketCap != nil {
		set["marketCap"] = *update.MarketCap
	}
	if update.MarketCapCall != nil {
		set["marketCapCall"] = *update.MarketCapCall
	}
	if update.ATH != nil {
		set["ath"] = *update.ATH
	}
	if update.ATHAt != nil {
		set["ath_at"] = *update.ATHAt
	}
	if update.Low != nil {
		set["low"] = *update.Low
	}
	if update.LowAt != nil {
		set["low_at"] = *update.LowAt
	}
	if update.IsFavorite != nil {
		set["isFavorite"] = *update.IsFavorite
	}

	result := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var doc schema.Sighting
	if err := result.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update sighting: %w", err)
	}
	return &doc, nil
}

func (s *mongoStore) DeleteSighting(ctx context.Context, id bson.ObjectID) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete sighting: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// SetFavoriteByContract fans the flag out to every same-address sighting as
// one filtered update, so concurrent toggles cannot interleave per-document
// writes.
func (s *mongoStore) SetFavoriteByContract(ctx context.Context, contract string, favorite bool) (int64, error) {
	result, err := s.coll.UpdateMany(ctx,
		bson.M{"contract": contract},
		bson.M{"$set": bson.M{"isFavorite": favorite}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update favorite flag: %w", err)
	}
	return result.MatchedCount, nil
}

func (s *mongoStore) DistinctChannels(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.coll.Distinct(ctx, "channel", bson.M{}).Decode(&names); err != nil {
		return nil, fmt.Errorf("failed to list distinct channels: %w", err)
	}
	return names, nil
}

func (s *mongoStore) GroupByContract(ctx context.Context, minChannels int, favoritesOnly bool) ([]ContractGroup, error) {
	pipeline := mongo.Pipeline{}
	if favoritesOnly {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "isFavorite", Value: true},
		}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$contract"},
			{Key: "channels", Value: bson.D{{Key: "$addToSet", Value: "$channel"}}},
			{Key: "docs", Value: bson.D{{Key: "$push", Value: "$$ROOT"}}},
		}}},
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "$expr", Value: bson.D{{Key: "$gte", Value: bson.A{
				bson.D{{Key: "$size", Value: "$channels"}},
				minChannels,
			}}}},
		}}},
	)

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sightings: %w", err)
	}

	var groups []ContractGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode contract groups: %w", err)
	}
	return groups, nil
}

func (s *mongoStore) find(ctx context.Context, filter bson.M) ([]schema.Sighting, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find sightings: %w", err)
	}

	var docs []schema.Sighting
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode sightings: %w", err)
	}
	return docs, nil
}

func (s *mongoStore) findOne(ctx context.Context, filter bson.M) (*schema.Sighting, error) {
	var doc schema.Sighting
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find sighting: %w", err)
	}
	return &doc, nil
}
