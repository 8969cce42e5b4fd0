package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tokenradar/tokenradar/internal/api/shared/constants"
	"github.com/tokenradar/tokenradar/internal/api/shared/dto"
	"github.com/tokenradar/tokenradar/internal/domain"
	"github.com/tokenradar/tokenradar/internal/store"
	"github.com/tokenradar/tokenradar/internal/store/schema"
	"github.com/tokenradar/tokenradar/internal/view"
)

// fakeStore is an in-memory Store for executor tests
type fakeStore struct {
	docs []schema.Sighting
	err  error
}

func (f *fakeStore) ListSightings(ctx context.Context) ([]schema.Sighting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]schema.Sighting(nil), f.docs...), nil
}

func (f *fakeStore) ListSightingsByChannel(ctx context.Context, channel string) ([]schema.Sighting, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []schema.Sighting
	for _, doc := range f.docs {
		if doc.Channel == channel {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeStore) FindFirstByContract(ctx context.Context, contract string) (*schema.Sighting, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i, doc := range f.docs {
		if doc.Contract == contract {
			return &f.docs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByContractAndChannel(ctx context.Context, contract, channel string) (*schema.Sighting, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i, doc := range f.docs {
		if doc.Contract == contract && doc.Channel == channel {
			return &f.docs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SearchSightings(ctx context.Context, query, channel string) ([]schema.Sighting, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []schema.Sighting
	for _, doc := range f.docs {
		if channel != "" && doc.Channel != channel {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (f *fakeStore) InsertSighting(ctx context.Context, s *schema.Sighting) (*schema.Sighting, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc := *s
	doc.ID = bson.NewObjectID()
	f.docs = append(f.docs, doc)
	return &doc, nil
}

func (f *fakeStore) UpdateSighting(ctx context.Context, id bson.ObjectID, update schema.SightingUpdate) (*schema.Sighting, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.docs {
		if f.docs[i].ID != id {
			continue
		}
		if update.Symbol != nil {
			f.docs[i].Symbol = *update.Symbol
		}
		if update.Name != nil {
			f.docs[i].Name = *update.Name
		}
		if update.Contract != nil {
			f.docs[i].Contract = *update.Contract
		}
		if update.MarketCap != nil {
			f.docs[i].MarketCap = update.MarketCap
		}
		if update.IsFavorite != nil {
			f.docs[i].IsFavorite = *update.IsFavorite
		}
		now := time.Now().UTC()
		f.docs[i].UpdatedAt = &now
		return &f.docs[i], nil
	}
	return nil, nil
}

func (f *fakeStore) DeleteSighting(ctx context.Context, id bson.ObjectID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i := range f.docs {
		if f.docs[i].ID == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) SetFavoriteByContract(ctx context.Context, contract string, favorite bool) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var matched int64
	for i := range f.docs {
		if f.docs[i].Contract == contract {
			f.docs[i].IsFavorite = favorite
			matched++
		}
	}
	return matched, nil
}

func (f *fakeStore) DistinctChannels(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := make(map[string]struct{})
	var names []string
	for _, doc := range f.docs {
		if _, ok := seen[doc.Channel]; ok {
			continue
		}
		seen[doc.Channel] = struct{}{}
		names = append(names, doc.Channel)
	}
	return names, nil
}

func (f *fakeStore) GroupByContract(ctx context.Context, minChannels int, favoritesOnly bool) ([]store.ContractGroup, error) {
	if f.err != nil {
		return nil, f.err
	}
	groups := make(map[string]*store.ContractGroup)
	var order []string
	for _, doc := range f.docs {
		if favoritesOnly && !doc.IsFavorite {
			continue
		}
		g, ok := groups[doc.Contract]
		if !ok {
			g = &store.ContractGroup{Contract: doc.Contract}
			groups[doc.Contract] = g
			order = append(order, doc.Contract)
		}
		found := false
		for _, name := range g.Channels {
			if name == doc.Channel {
				found = true
				break
			}
		}
		if !found {
			g.Channels = append(g.Channels, doc.Channel)
		}
		g.Sightings = append(g.Sightings, doc)
	}

	var out []store.ContractGroup
	for _, contract := range order {
		if len(groups[contract].Channels) >= minChannels {
			out = append(out, *groups[contract])
		}
	}
	return out, nil
}

func (f *fakeStore) EnsureIndexes(ctx context.Context) error { return f.err }

func seedSighting(f *fakeStore, channel, contract, symbol string, at time.Time) schema.Sighting {
	doc := schema.Sighting{
		ID:       bson.NewObjectID(),
		Channel:  channel,
		Contract: contract,
		Name:     symbol + " Token",
		Symbol:   symbol,
		Date:     &at,
	}
	f.docs = append(f.docs, doc)
	return doc
}

func TestGetChannels(t *testing.T) {
	f := &fakeStore{}
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)
	seedSighting(f, "Beta Signals", "0xbbb", "BBB", base)
	seedSighting(f, "Alpha Calls", "0xccc", "CCC", base)

	exec := NewExecutor(f)
	channels, err := exec.GetChannels(context.Background())
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, int64(1), channels[0].ID)
	assert.Equal(t, "Alpha Calls", channels[0].Name)
	assert.Equal(t, "alpha_calls", channels[0].TelegramID)
	assert.Equal(t, int64(2), channels[1].ID)
	assert.Equal(t, "Beta Signals", channels[1].Name)
}

func TestGetChannelTokens(t *testing.T) {
	f := &fakeStore{}
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)
	seedSighting(f, "Alpha Calls", "0xbbb", "BBB", base)
	seedSighting(f, "Beta Signals", "0xccc", "CCC", base)

	exec := NewExecutor(f)

	t.Run("returns tokens of the addressed channel", func(t *testing.T) {
		resp, err := exec.GetChannelTokens(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Alpha Calls", resp.Name)
		assert.Equal(t, 2, resp.TokenCount)
		require.Len(t, resp.Tokens, 2)
		require.NotNil(t, resp.Tokens[0].DiscoveredAt)
		assert.Equal(t, base, *resp.Tokens[0].DiscoveredAt)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := exec.GetChannelTokens(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrChannelNotFound)
	})
}

func TestGetTokenByID(t *testing.T) {
	f := &fakeStore{}
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	doc := seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)
	seedSighting(f, "Beta Signals", "0xbbb", "BBB", base)

	exec := NewExecutor(f)

	t.Run("finds by derived surrogate id", func(t *testing.T) {
		resp, err := exec.GetTokenByID(context.Background(), view.SightingID(doc.ID))
		require.NoError(t, err)
		assert.Equal(t, "AAA", resp.Symbol)
		assert.Equal(t, "0xaaa", resp.Address)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := exec.GetTokenByID(context.Background(), -1)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

func TestCreateToken(t *testing.T) {
	f := &fakeStore{}
	exec := NewExecutor(f)

	marketcap := "1250000.5"
	resp, err := exec.CreateToken(context.Background(), &dto.CreateTokenRequest{
		Symbol:    "NEW",
		Name:      "New Token",
		Address:   "0xnew",
		Marketcap: &marketcap,
	})
	require.NoError(t, err)

	assert.Equal(t, "NEW", resp.Symbol)
	require.NotNil(t, resp.Marketcap)
	assert.Equal(t, "1250000.5", *resp.Marketcap)
	assert.Equal(t, constants.API_SUBMITTED_CHANNEL, resp.Channel)
	require.NotNil(t, resp.CreatedAt)
	require.NotNil(t, resp.UpdatedAt)

	require.Len(t, f.docs, 1)
	assert.Equal(t, constants.API_SUBMITTED_CHANNEL, f.docs[0].Channel)
}

func TestUpdateToken(t *testing.T) {
	f := &fakeStore{}
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	doc := seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)

	exec := NewExecutor(f)

	t.Run("merges provided fields", func(t *testing.T) {
		symbol := "AAA2"
		resp, err := exec.UpdateToken(context.Background(), view.SightingID(doc.ID), &dto.UpdateTokenRequest{Symbol: &symbol})
		require.NoError(t, err)
		assert.Equal(t, "AAA2", resp.Symbol)
		assert.Equal(t, "AAA Token", resp.Name)
		require.NotNil(t, resp.UpdatedAt)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		symbol := "ZZZ"
		_, err := exec.UpdateToken(context.Background(), -1, &dto.UpdateTokenRequest{Symbol: &symbol})
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

func TestDeleteToken(t *testing.T) {
	f := &fakeStore{}
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	doc := seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)

	exec := NewExecutor(f)
	id := view.SightingID(doc.ID)

	require.NoError(t, exec.DeleteToken(context.Background(), id))
	assert.Empty(t, f.docs)

	err := exec.DeleteToken(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestToggleFavorite(t *testing.T) {
	f := &fakeStore{}
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)
	seedSighting(f, "Beta Signals", "0xaaa", "AAA", base)

	exec := NewExecutor(f)
	ctx := context.Background()

	t.Run("flips every sighting of the address", func(t *testing.T) {
		resp, err := exec.ToggleFavorite(ctx, "0xaaa")
		require.NoError(t, err)
		assert.Equal(t, "0xaaa", resp.Address)
		assert.True(t, resp.Favorite)
		for _, doc := range f.docs {
			assert.True(t, doc.IsFavorite)
		}
	})

	t.Run("second toggle restores the original flag", func(t *testing.T) {
		resp, err := exec.ToggleFavorite(ctx, "0xaaa")
		require.NoError(t, err)
		assert.False(t, resp.Favorite)
		for _, doc := range f.docs {
			assert.False(t, doc.IsFavorite)
		}
	})

	t.Run("unknown address is not found", func(t *testing.T) {
		_, err := exec.ToggleFavorite(ctx, "0xmissing")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

func TestGetCommonTokens(t *testing.T) {
	f := &fakeStore{}
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)
	seedSighting(f, "Beta Signals", "0xaaa", "AAA", base.Add(time.Hour))
	seedSighting(f, "Gamma Gems", "0xaaa", "AAA", base)
	seedSighting(f, "Alpha Calls", "0xbbb", "BBB", base)
	seedSighting(f, "Beta Signals", "0xbbb", "BBB", base)
	seedSighting(f, "Alpha Calls", "0xccc", "CCC", base)

	exec := NewExecutor(f)
	ctx := context.Background()

	contracts := func(tokens []dto.TokenWithChannelsResponse) map[string]bool {
		out := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			out[t.Address] = true
		}
		return out
	}

	t.Run("thresholds form nested subsets", func(t *testing.T) {
		n1, err := exec.GetCommonTokens(ctx, 1)
		require.NoError(t, err)
		n2, err := exec.GetCommonTokens(ctx, 2)
		require.NoError(t, err)
		n3, err := exec.GetCommonTokens(ctx, 3)
		require.NoError(t, err)

		assert.Len(t, n1, 3)
		assert.Len(t, n2, 2)
		assert.Len(t, n3, 1)

		c1, c2, c3 := contracts(n1), contracts(n2), contracts(n3)
		for addr := range c3 {
			assert.True(t, c2[addr])
		}
		for addr := range c2 {
			assert.True(t, c1[addr])
		}
	})

	t.Run("each token carries at least the threshold channels", func(t *testing.T) {
		tokens, err := exec.GetCommonTokens(ctx, 2)
		require.NoError(t, err)
		for _, token := range tokens {
			assert.GreaterOrEqual(t, len(token.Channels), 2)
		}
	})

	t.Run("representative is the latest sighting", func(t *testing.T) {
		tokens, err := exec.GetCommonTokens(ctx, 3)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		require.NotNil(t, tokens[0].CreatedAt)
		assert.Equal(t, base.Add(time.Hour), *tokens[0].CreatedAt)
	})
}

func TestGetFavoriteTokens(t *testing.T) {
	f := &fakeStore{}
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fav := seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)
	seedSighting(f, "Beta Signals", "0xbbb", "BBB", base)
	for i := range f.docs {
		if f.docs[i].ID == fav.ID {
			f.docs[i].IsFavorite = true
		}
	}

	exec := NewExecutor(f)
	tokens, err := exec.GetFavoriteTokens(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "0xaaa", tokens[0].Address)
	assert.True(t, tokens[0].IsFavorite)
	require.Len(t, tokens[0].Channels, 1)
}

func TestIngestWebhook(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("unknown channel slug is not found", func(t *testing.T) {
		f := &fakeStore{}
		seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)

		exec := NewExecutor(f)
		_, err := exec.IngestWebhook(context.Background(), &dto.WebhookRequest{
			ChannelTelegramID: "no_such_channel",
			TokenData:         &dto.CreateTokenRequest{Symbol: "X", Name: "X", Address: "0x1"},
		})
		assert.ErrorIs(t, err, domain.ErrChannelNotFound)
	})

	t.Run("new contract inserts a sighting in the channel", func(t *testing.T) {
		f := &fakeStore{}
		seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)

		exec := NewExecutor(f)
		resp, err := exec.IngestWebhook(context.Background(), &dto.WebhookRequest{
			ChannelTelegramID: "alpha_calls",
			TokenData:         &dto.CreateTokenRequest{Symbol: "NEW", Name: "New Token", Address: "0xnew"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Alpha Calls", resp.Channel)
		assert.Len(t, f.docs, 2)
	})

	t.Run("existing contract in the channel is updated in place", func(t *testing.T) {
		f := &fakeStore{}
		seedSighting(f, "Alpha Calls", "0xaaa", "AAA", base)

		exec := NewExecutor(f)
		resp, err := exec.IngestWebhook(context.Background(), &dto.WebhookRequest{
			ChannelTelegramID: "alpha_calls",
			TokenData:         &dto.CreateTokenRequest{Symbol: "AAA2", Name: "AAA Token", Address: "0xaaa"},
		})
		require.NoError(t, err)
		assert.Equal(t, "AAA2", resp.Symbol)
		assert.Len(t, f.docs, 1)
	})
}

func TestStoreFailuresSurfaceAsDatabaseErrors(t *testing.T) {
	f := &fakeStore{err: errors.New("connection reset")}
	exec := NewExecutor(f)
	ctx := context.Background()

	_, err := exec.GetTokens(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_error")

	_, err = exec.GetChannels(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_error")
}
