package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokenradar/tokenradar/internal/api/shared/constants"
	"github.com/tokenradar/tokenradar/internal/api/shared/dto"
	apierrors "github.com/tokenradar/tokenradar/internal/api/shared/errors"
	"github.com/tokenradar/tokenradar/internal/domain"
	"github.com/tokenradar/tokenradar/internal/store"
	"github.com/tokenradar/tokenradar/internal/store/schema"
	"github.com/tokenradar/tokenradar/internal/view"
)

// Executor is the interface for the API executor
type Executor interface {
	// GetChannels derives the channel list from the distinct channel names
	// currently present in the sighting collection
	GetChannels(ctx context.Context) ([]dto.ChannelResponse, error)

	// GetChannelsWithTokens returns every derived channel together with its
	// full token listing
	GetChannelsWithTokens(ctx context.Context) ([]dto.ChannelWithTokensResponse, error)

	// GetChannelTokens returns one channel's token listing by derived
	// channel id
	GetChannelTokens(ctx context.Context, id int64) (*dto.ChannelWithTokensResponse, error)

	// GetTokens returns every sighting mapped to the token view, unfiltered
	GetTokens(ctx context.Context) ([]dto.TokenResponse, error)

	// GetTokenByID returns the token whose derived surrogate id matches
	GetTokenByID(ctx context.Context, id int64) (*dto.TokenResponse, error)

	// GetCommonTokens returns tokens sighted in at least minChannels
	// distinct channels, grouped by contract address
	GetCommonTokens(ctx context.Context, minChannels int) ([]dto.TokenWithChannelsResponse, error)

	// GetFavoriteTokens returns favorited tokens grouped by contract
	// address, regardless of channel spread
	GetFavoriteTokens(ctx context.Context) ([]dto.TokenWithChannelsResponse, error)

	// CreateToken inserts a new sighting submitted through the API
	CreateToken(ctx context.Context, req *dto.CreateTokenRequest) (*dto.TokenResponse, error)

	// UpdateToken merges the provided fields into the sighting with the
	// given surrogate id
	UpdateToken(ctx context.Context, id int64, req *dto.UpdateTokenRequest) (*dto.TokenResponse, error)

	// DeleteToken removes the sighting with the given surrogate id
	DeleteToken(ctx context.Context, id int64) error

	// ToggleFavorite flips the favorite flag for every sighting sharing the
	// address and returns the new flag value
	ToggleFavorite(ctx context.Context, address string) (*dto.FavoriteToggleResponse, error)

	// SearchTokens searches symbol, name, and address by case-insensitive
	// substring, optionally constrained to one channel
	SearchTokens(ctx context.Context, query, channel string) ([]dto.TokenResponse, error)

	// SearchTokenByContract returns the single sighting matching the exact
	// contract address and channel name pair
	SearchTokenByContract(ctx context.Context, contract, channel string) (*dto.TokenResponse, error)

	// IngestWebhook records a sighting delivered by an external collector,
	// updating the existing (contract, channel) sighting when one exists
	IngestWebhook(ctx context.Context, req *dto.WebhookRequest) (*dto.TokenResponse, error)
}

type executor struct {
	store store.Store
}

func NewExecutor(store store.Store) Executor {
	return &executor{store: store}
}

func (e *executor) GetChannels(ctx context.Context) ([]dto.ChannelResponse, error) {
	channels, err := e.deriveChannels(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewChannelResponses(channels), nil
}

func (e *executor) GetChannelsWithTokens(ctx context.Context) ([]dto.ChannelWithTokensResponse, error) {
	channels, err := e.deriveChannels(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChannelWithTokensResponse, 0, len(channels))
	for _, channel := range channels {
		withTokens, err := e.channelTokens(ctx, channel)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewChannelWithTokensResponse(*withTokens))
	}
	return out, nil
}

func (e *executor) GetChannelTokens(ctx context.Context, id int64) (*dto.ChannelWithTokensResponse, error) {
	channels, err := e.deriveChannels(ctx)
	if err != nil {
		return nil, err
	}

	for _, channel := range channels {
		if channel.ID != id {
			continue
		}
		withTokens, err := e.channelTokens(ctx, channel)
		if err != nil {
			return nil, err
		}
		resp := dto.NewChannelWithTokensResponse(*withTokens)
		return &resp, nil
	}
	return nil, domain.ErrChannelNotFound
}

func (e *executor) GetTokens(ctx context.Context) ([]dto.TokenResponse, error) {
	docs, err := e.store.ListSightings(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list sightings: %v", err))
	}
	return dto.NewTokenResponses(view.MapSightings(docs)), nil
}

func (e *executor) GetTokenByID(ctx context.Context, id int64) (*dto.TokenResponse, error) {
	doc, err := e.findByDerivedID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTokenResponse(view.MapSighting(*doc))
	return &resp, nil
}

func (e *executor) GetCommonTokens(ctx context.Context, minChannels int) ([]dto.TokenWithChannelsResponse, error) {
	return e.aggregate(ctx, minChannels, false)
}

func (e *executor) GetFavoriteTokens(ctx context.Context) ([]dto.TokenWithChannelsResponse, error) {
	return e.aggregate(ctx, constants.FAVORITES_MIN_CHANNELS, true)
}

func (e *executor) CreateToken(ctx context.Context, req *dto.CreateTokenRequest) (*dto.TokenResponse, error) {
	return e.insertSighting(ctx, constants.API_SUBMITTED_CHANNEL, req)
}

func (e *executor) UpdateToken(ctx context.Context, id int64, req *dto.UpdateTokenRequest) (*dto.TokenResponse, error) {
	doc, err := e.findByDerivedID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := schema.SightingUpdate{
		Symbol:        req.Symbol,
		Name:          req.Name,
		Contract:      req.Address,
		MarketCap:     decimalFloat(req.Marketcap),
		MarketCapCall: decimalFloat(req.MarketcapCall),
		ATH:           decimalFloat(req.Ath),
		ATHAt:         req.AthAt,
		Low:           decimalFloat(req.Low),
		LowAt:         req.LowAt,
		IsFavorite:    req.IsFavorite,
	}

	updated, err := e.store.UpdateSighting(ctx, doc.ID, update)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update sighting: %v", err))
	}
	if updated == nil {
		return nil, domain.ErrTokenNotFound
	}

	resp := dto.NewTokenResponse(view.MapSighting(*updated))
	return &resp, nil
}

func (e *executor) DeleteToken(ctx context.Context, id int64) error {
	doc, err := e.findByDerivedID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := e.store.DeleteSighting(ctx, doc.ID)
	if err != nil {
		return apierrors.NewDatabaseError(fmt.Sprintf("Failed to delete sighting: %v", err))
	}
	if !deleted {
		return domain.ErrTokenNotFound
	}
	return nil
}

func (e *executor) ToggleFavorite(ctx context.Context, address string) (*dto.FavoriteToggleResponse, error) {
	doc, err := e.store.FindFirstByContract(ctx, address)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to find sighting: %v", err))
	}
	if doc == nil {
		return nil, domain.ErrTokenNotFound
	}

	// Read-then-write without a transaction: two concurrent toggles can
	// land in an order-dependent final state. Acceptable for a
	// low-contention dashboard.
	newFlag := !doc.IsFavorite
	if _, err := e.store.SetFavoriteByContract(ctx, address, newFlag); err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update favorite flag: %v", err))
	}

	return &dto.FavoriteToggleResponse{Address: address, Favorite: newFlag}, nil
}

func (e *executor) SearchTokens(ctx context.Context, query, channel string) ([]dto.TokenResponse, error) {
	docs, err := e.store.SearchSightings(ctx, query, channel)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to search sightings: %v", err))
	}
	return dto.NewTokenResponses(view.MapSightings(docs)), nil
}

func (e *executor) SearchTokenByContract(ctx context.Context, contract, channel string) (*dto.TokenResponse, error) {
	doc, err := e.store.FindByContractAndChannel(ctx, contract, channel)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to find sighting: %v", err))
	}
	if doc == nil {
		return nil, domain.ErrTokenNotFound
	}

	resp := dto.NewTokenResponse(view.MapSighting(*doc))
	return &resp, nil
}

func (e *executor) IngestWebhook(ctx context.Context, req *dto.WebhookRequest) (*dto.TokenResponse, error) {
	channels, err := e.deriveChannels(ctx)
	if err != nil {
		return nil, err
	}

	var target *domain.Channel
	for i, channel := range channels {
		if channel.TelegramID == req.ChannelTelegramID {
			target = &channels[i]
			break
		}
	}
	if target == nil {
		return nil, domain.ErrChannelNotFound
	}

	existing, err := e.store.FindByContractAndChannel(ctx, req.TokenData.Address, target.Name)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to find sighting: %v", err))
	}

	if existing == nil {
		return e.insertSighting(ctx, target.Name, req.TokenData)
	}

	update := schema.SightingUpdate{
		Symbol:        &req.TokenData.Symbol,
		Name:          &req.TokenData.Name,
		MarketCap:     decimalFloat(req.TokenData.Marketcap),
		MarketCapCall: decimalFloat(req.TokenData.MarketcapCall),
		ATH:           decimalFloat(req.TokenData.Ath),
		ATHAt:         req.TokenData.AthAt,
		Low:           decimalFloat(req.TokenData.Low),
		LowAt:         req.TokenData.LowAt,
	}
	updated, err := e.store.UpdateSighting(ctx, existing.ID, update)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update sighting: %v", err))
	}
	if updated == nil {
		return nil, domain.ErrTokenNotFound
	}

	resp := dto.NewTokenResponse(view.MapSighting(*updated))
	return &resp, nil
}

func (e *executor) insertSighting(ctx context.Context, channel string, req *dto.CreateTokenRequest) (*dto.TokenResponse, error) {
	now := time.Now().UTC()
	doc := &schema.Sighting{
		Channel:       channel,
		Contract:      req.Address,
		Name:          req.Name,
		Symbol:        req.Symbol,
		MarketCap:     decimalFloat(req.Marketcap),
		MarketCapCall: decimalFloat(req.MarketcapCall),
		ATH:           decimalFloat(req.Ath),
		ATHAt:         req.AthAt,
		Low:           decimalFloat(req.Low),
		LowAt:         req.LowAt,
		Date:          &now,
		UpdatedAt:     &now,
		MessageID:     req.MessageID,
	}

	inserted, err := e.store.InsertSighting(ctx, doc)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to insert sighting: %v", err))
	}

	resp := dto.NewTokenResponse(view.MapSighting(*inserted))
	return &resp, nil
}

// findByDerivedID scans the whole collection re-deriving surrogate ids until
// one matches. Reads every document to find one record, the known
// scalability ceiling of surrogate-id lookups.
func (e *executor) findByDerivedID(ctx context.Context, id int64) (*schema.Sighting, error) {
	docs, err := e.store.ListSightings(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list sightings: %v", err))
	}

	for i, doc := range docs {
		if view.SightingID(doc.ID) == id {
			return &docs[i], nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (e *executor) deriveChannels(ctx context.Context) ([]domain.Channel, error) {
	names, err := e.store.DistinctChannels(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list channels: %v", err))
	}
	return view.DeriveChannels(names), nil
}

func (e *executor) channelTokens(ctx context.Context, channel domain.Channel) (*domain.ChannelWithTokens, error) {
	docs, err := e.store.ListSightingsByChannel(ctx, channel.Name)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list channel sightings: %v", err))
	}

	now := time.Now().UTC()
	tokens := make([]domain.TokenWithDiscovery, 0, len(docs))
	for _, doc := range docs {
		discoveredAt := now
		if doc.Date != nil {
			discoveredAt = *doc.Date
		}
		tokens = append(tokens, domain.TokenWithDiscovery{
			Token:        view.MapSighting(doc),
			DiscoveredAt: discoveredAt,
		})
	}

	return &domain.ChannelWithTokens{
		Channel:    channel,
		Tokens:     tokens,
		TokenCount: len(tokens),
	}, nil
}

func (e *executor) aggregate(ctx context.Context, minChannels int, favoritesOnly bool) ([]dto.TokenWithChannelsResponse, error) {
	groups, err := e.store.GroupByContract(ctx, minChannels, favoritesOnly)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to aggregate sightings: %v", err))
	}

	channels, err := e.deriveChannels(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.TokenWithChannels, 0, len(groups))
	for _, group := range groups {
		out = append(out, view.BuildTokenWithChannels(group.Sightings, group.Channels, channels))
	}
	return dto.NewTokenWithChannelsResponses(out), nil
}

func decimalFloat(text *string) *float64 {
	if text == nil {
		return nil
	}
	d, err := decimal.NewFromString(*text)
	if err != nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}
