package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		// Channel endpoints. The router cannot hold a static with-tokens
		// segment next to the :id parameter, so the parameter route
		// dispatches on its value.
		api.GET("/channels", handler.GetChannels)
		api.GET("/channels/:id", handler.GetChannelsWithTokens)
		api.GET("/channels/:id/tokens", handler.GetChannelTokens)
		api.POST("/channels/:id/tokens/:tokenId", handler.AssociateToken)

		// Token endpoints
		api.GET("/tokens", handler.ListTokens)
		api.GET("/tokens/search", handler.SearchTokens)
		api.GET("/tokens/common", handler.GetCommonTokens)
		api.GET("/tokens/favorites", handler.GetFavoriteTokens)
		api.POST("/tokens", handler.CreateToken)
		api.PATCH("/tokens/:id", handler.UpdateToken)
		api.DELETE("/tokens/:id", handler.DeleteToken)
		api.POST("/tokens/:address/favorite", handler.ToggleFavorite)

		// Ingestion endpoint for the external Telegram collector
		api.POST("/telegram/webhook", handler.TelegramWebhook)
	}
}
