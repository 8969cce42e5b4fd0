package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tokenradar/tokenradar/internal/api/shared/constants"
	"github.com/tokenradar/tokenradar/internal/api/shared/dto"
	"github.com/tokenradar/tokenradar/internal/api/shared/executor"
	"github.com/tokenradar/tokenradar/internal/domain"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetChannels lists the derived channels
	// GET /api/channels
	GetChannels(c *gin.Context)

	// GetChannelsWithTokens lists every channel with its nested tokens
	// GET /api/channels/with-tokens
	GetChannelsWithTokens(c *gin.Context)

	// GetChannelTokens lists one channel's tokens
	// GET /api/channels/:id/tokens
	GetChannelTokens(c *gin.Context)

	// ListTokens lists every token
	// GET /api/tokens
	ListTokens(c *gin.Context)

	// SearchTokens searches tokens by contract substring, or by exact
	// contract and channel pair when a channel is given
	// GET /api/tokens/search?contract=<contract>&channel=<channel>
	SearchTokens(c *gin.Context)

	// GetCommonTokens lists tokens sighted in at least minChannels channels
	// GET /api/tokens/common?minChannels=<n>
	GetCommonTokens(c *gin.Context)

	// GetFavoriteTokens lists favorited tokens grouped by address
	// GET /api/tokens/favorites
	GetFavoriteTokens(c *gin.Context)

	// CreateToken creates a token submitted through the API
	// POST /api/tokens
	CreateToken(c *gin.Context)

	// UpdateToken partially updates a token by surrogate id
	// PATCH /api/tokens/:id
	UpdateToken(c *gin.Context)

	// DeleteToken deletes a token by surrogate id
	// DELETE /api/tokens/:id
	DeleteToken(c *gin.Context)

	// ToggleFavorite flips the favorite flag for an address
	// POST /api/tokens/:address/favorite
	ToggleFavorite(c *gin.Context)

	// AssociateToken links a token to a channel; the backing collection
	// already carries the association, so this is a reserved no-op
	// POST /api/channels/:id/tokens/:tokenId
	AssociateToken(c *gin.Context)

	// TelegramWebhook ingests a sighting from an external collector
	// POST /api/telegram/webhook
	TelegramWebhook(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

func (h *handler) GetChannels(c *gin.Context) {
	channels, err := h.executor.GetChannels(c.Request.Context())
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

func (h *handler) GetChannelsWithTokens(c *gin.Context) {
	// Registered under the :id parameter; only the with-tokens
	// subresource exists there.
	if c.Param("id") != "with-tokens" {
		respondNotFound(c, "Channel resource not found")
		return
	}

	channels, err := h.executor.GetChannelsWithTokens(c.Request.Context())
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

func (h *handler) GetChannelTokens(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid channel ID")
		return
	}

	channel, err := h.executor.GetChannelTokens(c.Request.Context(), id)
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, channel)
}

func (h *handler) ListTokens(c *gin.Context) {
	tokens, err := h.executor.GetTokens(c.Request.Context())
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *handler) SearchTokens(c *gin.Context) {
	contract := c.Query("contract")
	if contract == "" {
		respondBadRequest(c, "contract query parameter is required")
		return
	}
	channel := c.Query("channel")

	// An exact (contract, channel) pair addresses a single per-channel
	// sighting; without a channel the contract is a substring query.
	if channel != "" {
		token, err := h.executor.SearchTokenByContract(c.Request.Context(), contract, channel)
		if err != nil {
			if errors.Is(err, domain.ErrTokenNotFound) {
				c.JSON(http.StatusOK, []dto.TokenResponse{})
				return
			}
			respondExecutorError(c, err)
			return
		}
		c.JSON(http.StatusOK, []dto.TokenResponse{*token})
		return
	}

	tokens, err := h.executor.SearchTokens(c.Request.Context(), contract, "")
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *handler) GetCommonTokens(c *gin.Context) {
	minChannels := constants.DEFAULT_MIN_CHANNELS
	if raw := c.Query("minChannels"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			minChannels = parsed
		}
	}

	tokens, err := h.executor.GetCommonTokens(c.Request.Context(), minChannels)
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *handler) GetFavoriteTokens(c *gin.Context) {
	tokens, err := h.executor.GetFavoriteTokens(c.Request.Context())
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *handler) CreateToken(c *gin.Context) {
	var req dto.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	token, err := h.executor.CreateToken(c.Request.Context(), &req)
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, token)
}

func (h *handler) UpdateToken(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token ID")
		return
	}

	var req dto.UpdateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	token, err := h.executor.UpdateToken(c.Request.Context(), id, &req)
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *handler) DeleteToken(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token ID")
		return
	}

	if err := h.executor.DeleteToken(c.Request.Context(), id); err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Token deleted successfully"})
}

func (h *handler) ToggleFavorite(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respondBadRequest(c, "Token address is required")
		return
	}

	result, err := h.executor.ToggleFavorite(c.Request.Context(), address)
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) AssociateToken(c *gin.Context) {
	// The sighting document already names its channel, so there is no
	// association to record.
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Association recorded"})
}

func (h *handler) TelegramWebhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	token, err := h.executor.IngestWebhook(c.Request.Context(), &req)
	if err != nil {
		respondExecutorError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
