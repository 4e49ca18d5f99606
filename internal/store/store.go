package store

import (
	"context"

	"github.com/XinhoGOD/ARCHVTEL/internal/store/schema"
)

// TrendFilter narrows the changed-trends query for the player list endpoint.
// Player and Team are case-insensitive substring filters; Position is an
// exact match; Semana filters to one week. Empty/zero values disable a filter.
// SortColumn must already be validated against the allowed sort fields.
type TrendFilter struct {
	Player     string
	Team       string
	Position   string
	Semana     int
	SortColumn string
	SortDesc   bool
}

// Store defines the read interface over the nfl_fantasy_trends table.
// The API is read-only: nothing here writes.
type Store interface {
	// ListChangedTrends retrieves every observation matching the filter that has a
	// non-zero value in at least one of the change columns (adds, drops,
	// percent_rostered_change, percent_started_change; NULL counts as zero)
	ListChangedTrends(ctx context.Context, filter TrendFilter) ([]schema.PlayerTrend, error)
	// GetPlayerSeries retrieves all observations whose player_name matches exactly,
	// case-insensitively. An unknown player yields an empty slice, not an error.
	GetPlayerSeries(ctx context.Context, playerName string) ([]schema.PlayerTrend, error)
	// ListAddActivity retrieves observations with a recorded adds counter
	ListAddActivity(ctx context.Context) ([]schema.PlayerTrend, error)
	// ListDropActivity retrieves observations with a recorded drops counter
	ListDropActivity(ctx context.Context) ([]schema.PlayerTrend, error)
	// ListRosteredLeaders retrieves observations with a recorded rostered
	// percentage, ordered descending by it
	ListRosteredLeaders(ctx context.Context) ([]schema.PlayerTrend, error)
	// ListStartedRisers retrieves observations with a positive started-percentage
	// change, ordered descending by it
	ListStartedRisers(ctx context.Context) ([]schema.PlayerTrend, error)
	// ListStartedFallers retrieves observations with a negative started-percentage
	// change, ordered ascending by it
	ListStartedFallers(ctx context.Context) ([]schema.PlayerTrend, error)
	// ListAllTrends retrieves the full table for whole-dataset statistics
	ListAllTrends(ctx context.Context) ([]schema.PlayerTrend, error)
}
