package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes (public read access; the API has no write surface)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/players", handler.ListPlayers)
		v1.GET("/players/detail", handler.GetPlayerDetail)
		v1.GET("/stats", handler.GetTrendStats)
	}
}
