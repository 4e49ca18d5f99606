// Package aggregate implements the pure aggregation queries behind the trends API:
// distinct-player deduplication, add/drop leaderboards, per-player extremum
// leaderboards, and dataset/player summary statistics.
//
// All functions treat nil numeric fields as zero and never exclude rows from
// counts. Ties compare on IEEE doubles with no epsilon; equal keys resolve to
// whichever row appeared first in input order, so callers that need a total
// order must sort their input first.
package aggregate

import (
	"sort"

	"github.com/XinhoGOD/ARCHVTEL/internal/store/schema"
)

// LeaderboardSize is the number of entries kept on each leaderboard
const LeaderboardSize = 5

// CounterField selects an integer activity counter on an observation
type CounterField string

const (
	// FieldAdds selects the roster-add counter
	FieldAdds CounterField = "adds"
	// FieldDrops selects the roster-drop counter
	FieldDrops CounterField = "drops"
)

// MetricField selects a floating-point percentage metric on an observation
type MetricField string

const (
	// FieldPercentRostered selects the rostered percentage
	FieldPercentRostered MetricField = "percent_rostered"
	// FieldPercentStartedChange selects the started-percentage delta
	FieldPercentStartedChange MetricField = "percent_started_change"
)

// Direction selects which extremum ExtremumByPlayer keeps per player
type Direction int

const (
	// Max keeps the row with the largest metric value
	Max Direction = iota
	// Min keeps the row with the smallest metric value
	Min
)

// PlayerTotal is one add/drop leaderboard entry: a summed counter for a
// (player_name, position, team) group.
type PlayerTotal struct {
	PlayerName string  `json:"player_name"`
	Position   *string `json:"position"`
	Team       *string `json:"team"`
	Total      int64   `json:"total"`
}

// PlayerExtremum is one metric leaderboard entry: the extremum observation of
// a metric for a player_name group.
type PlayerExtremum struct {
	PlayerName string  `json:"player_name"`
	Position   *string `json:"position"`
	Team       *string `json:"team"`
	Value      float64 `json:"value"`
}

// TotalStats summarizes the whole observation table
type TotalStats struct {
	TotalAdds     int64   `json:"totalAdds"`
	TotalDrops    int64   `json:"totalDrops"`
	AvgRostered   float64 `json:"avgRostered"`
	AvgStarted    float64 `json:"avgStarted"`
	TotalRecords  int     `json:"totalRecords"`
	UniquePlayers int     `json:"uniquePlayers"`
}

// PlayerSummary summarizes one player's full observation series.
// Current values come from the chronologically last row of the series sorted
// ascending by (semana, timestamp).
type PlayerSummary struct {
	TotalAdds         int64   `json:"totalAdds"`
	TotalDrops        int64   `json:"totalDrops"`
	AvgRosteredChange float64 `json:"avgRosteredChange"`
	AvgStartedChange  float64 `json:"avgStartedChange"`
	MaxRostered       float64 `json:"maxRostered"`
	MaxStarted        float64 `json:"maxStarted"`
	CurrentRostered   float64 `json:"currentRostered"`
	CurrentStarted    float64 `json:"currentStarted"`
}

// Float returns the value of a nullable float column, nil as 0
func Float(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Count returns the value of a nullable counter column, nil as 0
func Count(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func counter(row schema.PlayerTrend, field CounterField) int64 {
	if field == FieldDrops {
		return Count(row.Drops)
	}
	return Count(row.Adds)
}

func metric(row schema.PlayerTrend, field MetricField) float64 {
	if field == FieldPercentRostered {
		return Float(row.PercentRostered)
	}
	return Float(row.PercentStartedChange)
}

// DistinctLatestByChange collapses a multi-week row set to one row per
// player_name: the row with the maximum percent_started_change (nil as 0).
// On ties the first row in input order wins. The result is sorted descending
// by percent_started_change, preserving input order between equal values.
func DistinctLatestByChange(rows []schema.PlayerTrend) []schema.PlayerTrend {
	index := make(map[string]int, len(rows))
	distinct := make([]schema.PlayerTrend, 0, len(rows))

	for _, row := range rows {
		i, seen := index[row.PlayerName]
		if !seen {
			index[row.PlayerName] = len(distinct)
			distinct = append(distinct, row)
			continue
		}
		if Float(row.PercentStartedChange) > Float(distinct[i].PercentStartedChange) {
			distinct[i] = row
		}
	}

	sort.SliceStable(distinct, func(i, j int) bool {
		return Float(distinct[i].PercentStartedChange) > Float(distinct[j].PercentStartedChange)
	})

	return distinct
}

// SumByPlayer sums an activity counter per (player_name, position, team)
// group and returns the top groups sorted descending by total.
//
// The composite key is intentional: a player recorded with a different
// position or team on different rows forms a separate group here, while the
// other aggregations group by player_name alone.
func SumByPlayer(rows []schema.PlayerTrend, field CounterField) []PlayerTotal {
	type groupKey struct {
		name     string
		position string
		team     string
	}

	index := make(map[groupKey]int, len(rows))
	totals := make([]PlayerTotal, 0, len(rows))

	for _, row := range rows {
		key := groupKey{name: row.PlayerName}
		if row.Position != nil {
			key.position = *row.Position
		}
		if row.Team != nil {
			key.team = *row.Team
		}

		i, seen := index[key]
		if !seen {
			index[key] = len(totals)
			totals = append(totals, PlayerTotal{
				PlayerName: row.PlayerName,
				Position:   row.Position,
				Team:       row.Team,
			})
			i = len(totals) - 1
		}
		totals[i].Total += counter(row, field)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})

	return truncate(totals)
}

// ExtremumByPlayer keeps, per player_name, the observation with the maximum
// (or minimum) value of a metric (nil as 0), and returns the top players
// sorted in the same direction. Ties keep the first row in input order.
func ExtremumByPlayer(rows []schema.PlayerTrend, field MetricField, dir Direction) []PlayerExtremum {
	better := func(candidate, current float64) bool {
		if dir == Min {
			return candidate < current
		}
		return candidate > current
	}

	index := make(map[string]int, len(rows))
	entries := make([]PlayerExtremum, 0, len(rows))

	for _, row := range rows {
		value := metric(row, field)
		i, seen := index[row.PlayerName]
		if !seen {
			index[row.PlayerName] = len(entries)
			entries = append(entries, PlayerExtremum{
				PlayerName: row.PlayerName,
				Position:   row.Position,
				Team:       row.Team,
				Value:      value,
			})
			continue
		}
		if better(value, entries[i].Value) {
			entries[i] = PlayerExtremum{
				PlayerName: row.PlayerName,
				Position:   row.Position,
				Team:       row.Team,
				Value:      value,
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return better(entries[i].Value, entries[j].Value)
	})

	return truncate(entries)
}

// SummarizeAll computes whole-table statistics. Averages divide by the row
// count and are 0 for an empty input.
func SummarizeAll(rows []schema.PlayerTrend) TotalStats {
	stats := TotalStats{TotalRecords: len(rows)}

	players := make(map[string]struct{}, len(rows))
	var rosteredSum, startedSum float64
	for _, row := range rows {
		stats.TotalAdds += Count(row.Adds)
		stats.TotalDrops += Count(row.Drops)
		rosteredSum += Float(row.PercentRostered)
		startedSum += Float(row.PercentStarted)
		players[row.PlayerName] = struct{}{}
	}
	stats.UniquePlayers = len(players)

	if len(rows) > 0 {
		stats.AvgRostered = rosteredSum / float64(len(rows))
		stats.AvgStarted = startedSum / float64(len(rows))
	}

	return stats
}

// SummarizePlayer computes aggregate statistics over one player's series.
// The series must already be sorted ascending by (semana, timestamp); the
// current values are taken from its last row. An empty series yields the
// zero summary, but callers are expected to have verified the player exists.
func SummarizePlayer(series []schema.PlayerTrend) PlayerSummary {
	var summary PlayerSummary
	if len(series) == 0 {
		return summary
	}

	summary.MaxRostered = Float(series[0].PercentRostered)
	summary.MaxStarted = Float(series[0].PercentStarted)

	var rosteredChangeSum, startedChangeSum float64
	for _, row := range series {
		summary.TotalAdds += Count(row.Adds)
		summary.TotalDrops += Count(row.Drops)
		rosteredChangeSum += Float(row.PercentRosteredChange)
		startedChangeSum += Float(row.PercentStartedChange)

		if rostered := Float(row.PercentRostered); rostered > summary.MaxRostered {
			summary.MaxRostered = rostered
		}
		if started := Float(row.PercentStarted); started > summary.MaxStarted {
			summary.MaxStarted = started
		}
	}

	summary.AvgRosteredChange = rosteredChangeSum / float64(len(series))
	summary.AvgStartedChange = startedChangeSum / float64(len(series))

	last := series[len(series)-1]
	summary.CurrentRostered = Float(last.PercentRostered)
	summary.CurrentStarted = Float(last.PercentStarted)

	return summary
}

// SortSeries sorts observations ascending by (semana, timestamp) in place
// and returns the slice. Duplicate (semana, timestamp) rows keep input order.
func SortSeries(series []schema.PlayerTrend) []schema.PlayerTrend {
	sort.SliceStable(series, func(i, j int) bool {
		if series[i].Semana != series[j].Semana {
			return series[i].Semana < series[j].Semana
		}
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
	return series
}

func truncate[T any](entries []T) []T {
	if len(entries) > LeaderboardSize {
		return entries[:LeaderboardSize]
	}
	return entries
}
