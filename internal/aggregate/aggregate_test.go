package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XinhoGOD/ARCHVTEL/internal/store/schema"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }
func strPtr(v string) *string     { return &v }

// buildTrend creates a minimal observation for aggregation tests
func buildTrend(name string, startedChange *float64) schema.PlayerTrend {
	return schema.PlayerTrend{
		PlayerName:           name,
		PercentStartedChange: startedChange,
		Semana:               1,
		Timestamp:            time.Date(2025, 9, 4, 12, 0, 0, 0, time.UTC),
	}
}

func TestDistinctLatestByChange(t *testing.T) {
	t.Run("one entry per player, sorted descending", func(t *testing.T) {
		rows := []schema.PlayerTrend{
			buildTrend("A", floatPtr(5)),
			buildTrend("A", floatPtr(-2)),
			buildTrend("B", floatPtr(3)),
		}

		distinct := DistinctLatestByChange(rows)

		require.Len(t, distinct, 2)
		assert.Equal(t, "A", distinct[0].PlayerName)
		assert.Equal(t, 5.0, Float(distinct[0].PercentStartedChange))
		assert.Equal(t, "B", distinct[1].PlayerName)
		assert.Equal(t, 3.0, Float(distinct[1].PercentStartedChange))
	})

	t.Run("keeps the row with the maximum change regardless of order", func(t *testing.T) {
		rows := []schema.PlayerTrend{
			buildTrend("A", floatPtr(-2)),
			buildTrend("B", floatPtr(3)),
			buildTrend("A", floatPtr(5)),
		}

		distinct := DistinctLatestByChange(rows)

		require.Len(t, distinct, 2)
		assert.Equal(t, "A", distinct[0].PlayerName)
		assert.Equal(t, 5.0, Float(distinct[0].PercentStartedChange))
	})

	t.Run("nil change is treated as zero", func(t *testing.T) {
		rows := []schema.PlayerTrend{
			buildTrend("A", nil),
			buildTrend("A", floatPtr(-1)),
			buildTrend("B", floatPtr(0.5)),
		}

		distinct := DistinctLatestByChange(rows)

		require.Len(t, distinct, 2)
		assert.Equal(t, "B", distinct[0].PlayerName)
		assert.Equal(t, "A", distinct[1].PlayerName)
		assert.Nil(t, distinct[1].PercentStartedChange)
	})

	t.Run("ties keep the first row in input order", func(t *testing.T) {
		first := buildTrend("A", floatPtr(2))
		first.Semana = 1
		second := buildTrend("A", floatPtr(2))
		second.Semana = 2

		distinct := DistinctLatestByChange([]schema.PlayerTrend{first, second})

		require.Len(t, distinct, 1)
		assert.Equal(t, 1, distinct[0].Semana)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, DistinctLatestByChange(nil))
	})
}

func TestSumByPlayer(t *testing.T) {
	t.Run("sums adds per composite key sorted descending", func(t *testing.T) {
		rows := []schema.PlayerTrend{
			{PlayerName: "A", Position: strPtr("RB"), Team: strPtr("KC"), Adds: intPtr(10)},
			{PlayerName: "A", Position: strPtr("RB"), Team: strPtr("KC"), Adds: intPtr(7)},
			{PlayerName: "B", Position: strPtr("WR"), Team: strPtr("DAL"), Adds: intPtr(20)},
			{PlayerName: "C", Position: strPtr("QB"), Team: strPtr("BUF"), Adds: nil},
		}

		totals := SumByPlayer(rows, FieldAdds)

		require.Len(t, totals, 3)
		assert.Equal(t, PlayerTotal{PlayerName: "B", Position: strPtr("WR"), Team: strPtr("DAL"), Total: 20}, totals[0])
		assert.Equal(t, int64(17), totals[1].Total)
		assert.Equal(t, "A", totals[1].PlayerName)
		assert.Equal(t, int64(0), totals[2].Total)
	})

	t.Run("same player with different team forms separate groups", func(t *testing.T) {
		rows := []schema.PlayerTrend{
			{PlayerName: "A", Position: strPtr("RB"), Team: strPtr("KC"), Adds: intPtr(5)},
			{PlayerName: "A", Position: strPtr("RB"), Team: strPtr("NYJ"), Adds: intPtr(4)},
		}

		totals := SumByPlayer(rows, FieldAdds)

		require.Len(t, totals, 2)
		assert.Equal(t, int64(5), totals[0].Total)
		assert.Equal(t, int64(4), totals[1].Total)
	})

	t.Run("truncates to the leaderboard size", func(t *testing.T) {
		var rows []schema.PlayerTrend
		for i := 0; i < 8; i++ {
			rows = append(rows, schema.PlayerTrend{
				PlayerName: string(rune('A' + i)),
				Drops:      intPtr(int64(i)),
			})
		}

		totals := SumByPlayer(rows, FieldDrops)

		require.Len(t, totals, LeaderboardSize)
		assert.Equal(t, int64(7), totals[0].Total)
		assert.Equal(t, int64(3), totals[4].Total)
	})
}

func TestExtremumByPlayer(t *testing.T) {
	t.Run("max keeps the largest observation per player", func(t *testing.T) {
		rows := []schema.PlayerTrend{
			{PlayerName: "A", PercentRostered: floatPtr(90), Team: strPtr("KC")},
			{PlayerName: "A", PercentRostered: floatPtr(95), Team: strPtr("KC")},
			{PlayerName: "B", PercentRostered: floatPtr(99), Team: strPtr("SF")},
			{PlayerName: "C", PercentRostered: nil},
		}

		leaders := ExtremumByPlayer(rows, FieldPercentRostered, Max)

		require.Len(t, leaders, 3)
		assert.Equal(t, "B", leaders[0].PlayerName)
		assert.Equal(t, 99.0, leaders[0].Value)
		assert.Equal(t, "A", leaders[1].PlayerName)
		assert.Equal(t, 95.0, leaders[1].Value)
		assert.Equal(t, 0.0, leaders[2].Value)
	})

	t.Run("min keeps the most negative change and sorts ascending", func(t *testing.T) {
		rows := []schema.PlayerTrend{
			{PlayerName: "A", PercentStartedChange: floatPtr(-3)},
			{PlayerName: "B", PercentStartedChange: floatPtr(-9)},
			{PlayerName: "B", PercentStartedChange: floatPtr(-1)},
		}

		fallers := ExtremumByPlayer(rows, FieldPercentStartedChange, Min)

		require.Len(t, fallers, 2)
		assert.Equal(t, "B", fallers[0].PlayerName)
		assert.Equal(t, -9.0, fallers[0].Value)
		assert.Equal(t, -3.0, fallers[1].Value)
	})

	t.Run("ties resolve to the first row in input order", func(t *testing.T) {
		rows := []schema.PlayerTrend{
			{PlayerName: "A", PercentRostered: floatPtr(50), Team: strPtr("KC")},
			{PlayerName: "A", PercentRostered: floatPtr(50), Team: strPtr("NYJ")},
		}

		leaders := ExtremumByPlayer(rows, FieldPercentRostered, Max)

		require.Len(t, leaders, 1)
		assert.Equal(t, "KC", *leaders[0].Team)
	})
}

func TestSummarizeAll(t *testing.T) {
	t.Run("empty input returns zeroes without dividing", func(t *testing.T) {
		stats := SummarizeAll(nil)

		assert.Equal(t, TotalStats{}, stats)
	})

	t.Run("totals and means over all rows with nil as zero", func(t *testing.T) {
		rows := []schema.PlayerTrend{
			{PlayerName: "A", Adds: intPtr(10), Drops: intPtr(2), PercentRostered: floatPtr(80), PercentStarted: floatPtr(40)},
			{PlayerName: "A", Adds: nil, Drops: intPtr(3), PercentRostered: floatPtr(60), PercentStarted: nil},
			{PlayerName: "B", Adds: intPtr(5), Drops: nil, PercentRostered: nil, PercentStarted: floatPtr(20)},
		}

		stats := SummarizeAll(rows)

		assert.Equal(t, int64(15), stats.TotalAdds)
		assert.Equal(t, int64(5), stats.TotalDrops)
		assert.Equal(t, 3, stats.TotalRecords)
		assert.Equal(t, 2, stats.UniquePlayers)
		assert.InDelta(t, (80.0+60.0)/3.0, stats.AvgRostered, 1e-9)
		assert.InDelta(t, 20.0, stats.AvgStarted, 1e-9)
	})
}

func TestSummarizePlayer(t *testing.T) {
	t.Run("current values come from the last sorted row", func(t *testing.T) {
		series := []schema.PlayerTrend{
			{PlayerName: "A", Semana: 3, Timestamp: time.Date(2025, 9, 18, 0, 0, 0, 0, time.UTC), PercentRostered: floatPtr(70), PercentStarted: floatPtr(55), Adds: intPtr(4)},
			{PlayerName: "A", Semana: 1, Timestamp: time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC), PercentRostered: floatPtr(40), PercentStarted: floatPtr(20), Adds: intPtr(8), Drops: intPtr(1)},
			{PlayerName: "A", Semana: 2, Timestamp: time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC), PercentRostered: floatPtr(90), PercentStarted: floatPtr(35), PercentStartedChange: floatPtr(15)},
		}

		summary := SummarizePlayer(SortSeries(series))

		assert.Equal(t, int64(12), summary.TotalAdds)
		assert.Equal(t, int64(1), summary.TotalDrops)
		assert.Equal(t, 90.0, summary.MaxRostered)
		assert.Equal(t, 55.0, summary.MaxStarted)
		assert.Equal(t, 70.0, summary.CurrentRostered)
		assert.Equal(t, 55.0, summary.CurrentStarted)
		assert.InDelta(t, 5.0, summary.AvgStartedChange, 1e-9)
		assert.InDelta(t, 0.0, summary.AvgRosteredChange, 1e-9)
	})

	t.Run("empty series yields the zero summary", func(t *testing.T) {
		assert.Equal(t, PlayerSummary{}, SummarizePlayer(nil))
	})
}

func TestSortSeries(t *testing.T) {
	t.Run("sorts by semana then timestamp ascending", func(t *testing.T) {
		early := time.Date(2025, 9, 11, 8, 0, 0, 0, time.UTC)
		late := time.Date(2025, 9, 11, 20, 0, 0, 0, time.UTC)
		series := []schema.PlayerTrend{
			{PlayerName: "A", Semana: 2, Timestamp: late},
			{PlayerName: "A", Semana: 2, Timestamp: early},
			{PlayerName: "A", Semana: 1, Timestamp: late},
		}

		sorted := SortSeries(series)

		assert.Equal(t, 1, sorted[0].Semana)
		assert.Equal(t, early, sorted[1].Timestamp)
		assert.Equal(t, late, sorted[2].Timestamp)
	})
}
