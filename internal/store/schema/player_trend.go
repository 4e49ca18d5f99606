package schema

import (
	"time"
)

// Position represents a fantasy-football roster position
type Position string

const (
	// PositionQB represents quarterbacks
	PositionQB Position = "QB"
	// PositionRB represents running backs
	PositionRB Position = "RB"
	// PositionWR represents wide receivers
	PositionWR Position = "WR"
	// PositionTE represents tight ends
	PositionTE Position = "TE"
	// PositionK represents kickers
	PositionK Position = "K"
	// PositionDEF represents team defenses
	PositionDEF Position = "DEF"
)

// PlayerTrend represents the nfl_fantasy_trends table - one row per (player, timestamp)
// observation of weekly roster/start percentages and add/drop activity.
//
// player_name is the de facto player key across observations. Position and team may
// vary between observations of the same player; no reconciliation is attempted.
// Rows are append-only: the API never writes to this table.
type PlayerTrend struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// PlayerName is the display name used as the stable grouping key
	PlayerName string `gorm:"column:player_name;not null;type:text;index:idx_nfl_fantasy_trends_player_name" json:"player_name"`
	// PlayerID is the upstream provider's player identifier, when known
	PlayerID *string `gorm:"column:player_id;type:text" json:"player_id"`
	// Position is the roster position recorded with this observation (QB/RB/WR/TE/K/DEF)
	Position *string `gorm:"column:position;type:text" json:"position"`
	// Team is the NFL team abbreviation recorded with this observation
	Team *string `gorm:"column:team;type:text" json:"team"`
	// Opponent is the opposing team for the observation's week
	Opponent *string `gorm:"column:opponent;type:text" json:"opponent"`
	// PercentRostered is the share of leagues rostering the player
	PercentRostered *float64 `gorm:"column:percent_rostered" json:"percent_rostered"`
	// PercentRosteredChange is the week-over-week delta of PercentRostered (may be negative)
	PercentRosteredChange *float64 `gorm:"column:percent_rostered_change" json:"percent_rostered_change"`
	// PercentStarted is the share of leagues starting the player
	PercentStarted *float64 `gorm:"column:percent_started" json:"percent_started"`
	// PercentStartedChange is the week-over-week delta of PercentStarted (may be negative)
	PercentStartedChange *float64 `gorm:"column:percent_started_change" json:"percent_started_change"`
	// Adds is the count of roster-add transactions in the observation period
	Adds *int64 `gorm:"column:adds" json:"adds"`
	// Drops is the count of roster-drop transactions in the observation period
	Drops *int64 `gorm:"column:drops" json:"drops"`
	// Semana is the fantasy-season week number the observation pertains to
	Semana int `gorm:"column:semana;not null;index:idx_nfl_fantasy_trends_semana" json:"semana"`
	// Timestamp is the point in time the observation represents
	Timestamp time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
	// ScrapedAt records when the upstream scraper collected this row (ingestion metadata)
	ScrapedAt *time.Time `gorm:"column:scraped_at" json:"scraped_at"`
	// CreatedAt is the timestamp when this row was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for the PlayerTrend model
func (PlayerTrend) TableName() string {
	return "nfl_fantasy_trends"
}
