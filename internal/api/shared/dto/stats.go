package dto

import (
	"github.com/XinhoGOD/ARCHVTEL/internal/aggregate"
)

// LeaderboardEntry is one row of a top-5 leaderboard
type LeaderboardEntry struct {
	PlayerName string  `json:"player_name"`
	Position   *string `json:"position"`
	Team       *string `json:"team"`
	Value      float64 `json:"value"`
}

// TrendStatsResponse is the body of GET /api/v1/stats
type TrendStatsResponse struct {
	TopAdds            []LeaderboardEntry   `json:"topAdds"`
	TopDrops           []LeaderboardEntry   `json:"topDrops"`
	TopRostered        []LeaderboardEntry   `json:"topRostered"`
	TopPositiveChanges []LeaderboardEntry   `json:"topPositiveChanges"`
	TopNegativeChanges []LeaderboardEntry   `json:"topNegativeChanges"`
	TotalStats         aggregate.TotalStats `json:"totalStats"`
}

// MapTotalsToDTO converts summed-counter leaderboard entries
func MapTotalsToDTO(totals []aggregate.PlayerTotal) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(totals))
	for i, total := range totals {
		out[i] = LeaderboardEntry{
			PlayerName: total.PlayerName,
			Position:   total.Position,
			Team:       total.Team,
			Value:      float64(total.Total),
		}
	}
	return out
}

// MapExtremaToDTO converts extremum leaderboard entries
func MapExtremaToDTO(extrema []aggregate.PlayerExtremum) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(extrema))
	for i, extremum := range extrema {
		out[i] = LeaderboardEntry{
			PlayerName: extremum.PlayerName,
			Position:   extremum.Position,
			Team:       extremum.Team,
			Value:      extremum.Value,
		}
	}
	return out
}
