package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/XinhoGOD/ARCHVTEL/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// ListPlayers retrieves the paginated distinct-player list with recent changes
	// GET /api/v1/players?page=<page>&limit=<limit>&sortBy=<column>&sortOrder=<asc|desc>&player=<substring>&team=<substring>&position=<position>&semana=<week>
	ListPlayers(c *gin.Context)

	// GetPlayerDetail retrieves one player's full time series plus summary
	// GET /api/v1/players/detail?playerName=<name>
	GetPlayerDetail(c *gin.Context)

	// GetTrendStats retrieves the leaderboards and whole-dataset totals
	// GET /api/v1/stats
	GetTrendStats(c *gin.Context)

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

// ListPlayers retrieves the paginated distinct-player list with recent changes
func (h *handler) ListPlayers(c *gin.Context) {
	params, err := ParseListPlayersQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListPlayers(c.Request.Context(), executor.ListPlayersParams{
		Page:       params.Page,
		Limit:      params.Limit,
		SortColumn: params.SortBy,
		SortDesc:   params.SortOrder.Desc(),
		Player:     params.Player,
		Team:       params.Team,
		Position:   params.Position,
		Semana:     params.Semana,
	})
	if err != nil {
		respondUpstreamError(c, err, "Failed to list players")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPlayerDetail retrieves one player's full time series plus summary
func (h *handler) GetPlayerDetail(c *gin.Context) {
	playerName := c.Query("playerName")
	if playerName == "" {
		respondBadRequest(c, "playerName is required")
		return
	}

	response, err := h.executor.GetPlayerDetail(c.Request.Context(), playerName)
	if err != nil {
		respondUpstreamError(c, err, "Failed to get player detail")
		return
	}

	if response == nil {
		respondNotFound(c, "Player not found")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTrendStats retrieves the leaderboards and whole-dataset totals
func (h *handler) GetTrendStats(c *gin.Context) {
	response, err := h.executor.GetTrendStats(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "Failed to get trend stats")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "fantasy-trends-api",
	})
}
