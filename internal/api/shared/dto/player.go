package dto

import (
	"time"

	"github.com/XinhoGOD/ARCHVTEL/internal/aggregate"
	"github.com/XinhoGOD/ARCHVTEL/internal/store/schema"
)

// TrendResponse represents one observation row in API responses. It is used
// both for raw per-player series and for the deduplicated distinct-player list.
type TrendResponse struct {
	ID                    uint64     `json:"id"`
	PlayerName            string     `json:"player_name"`
	PlayerID              *string    `json:"player_id"`
	Position              *string    `json:"position"`
	Team                  *string    `json:"team"`
	Opponent              *string    `json:"opponent"`
	PercentRostered       *float64   `json:"percent_rostered"`
	PercentRosteredChange *float64   `json:"percent_rostered_change"`
	PercentStarted        *float64   `json:"percent_started"`
	PercentStartedChange  *float64   `json:"percent_started_change"`
	Adds                  *int64     `json:"adds"`
	Drops                 *int64     `json:"drops"`
	Semana                int        `json:"semana"`
	Timestamp             time.Time  `json:"timestamp"`
	ScrapedAt             *time.Time `json:"scraped_at,omitempty"`
}

// Pagination describes the page slice of a list response
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PlayerListResponse is the body of GET /api/v1/players
type PlayerListResponse struct {
	Players    []TrendResponse `json:"players"`
	Pagination Pagination      `json:"pagination"`
}

// PlayerDetailResponse is the body of GET /api/v1/players/detail.
// Position and team are taken from the first row of the series.
type PlayerDetailResponse struct {
	PlayerDetails []TrendResponse         `json:"playerDetails"`
	Summary       aggregate.PlayerSummary `json:"summary"`
	PlayerName    string                  `json:"playerName"`
	Position      *string                 `json:"position"`
	Team          *string                 `json:"team"`
}

// MapTrendToDTO converts a schema row to its response representation
func MapTrendToDTO(trend schema.PlayerTrend) TrendResponse {
	return TrendResponse{
		ID:                    trend.ID,
		PlayerName:            trend.PlayerName,
		PlayerID:              trend.PlayerID,
		Position:              trend.Position,
		Team:                  trend.Team,
		Opponent:              trend.Opponent,
		PercentRostered:       trend.PercentRostered,
		PercentRosteredChange: trend.PercentRosteredChange,
		PercentStarted:        trend.PercentStarted,
		PercentStartedChange:  trend.PercentStartedChange,
		Adds:                  trend.Adds,
		Drops:                 trend.Drops,
		Semana:                trend.Semana,
		Timestamp:             trend.Timestamp,
		ScrapedAt:             trend.ScrapedAt,
	}
}

// MapTrendsToDTO converts a slice of schema rows to response rows
func MapTrendsToDTO(trends []schema.PlayerTrend) []TrendResponse {
	out := make([]TrendResponse, len(trends))
	for i, trend := range trends {
		out[i] = MapTrendToDTO(trend)
	}
	return out
}
