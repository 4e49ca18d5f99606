package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/XinhoGOD/ARCHVTEL/internal/aggregate"
	"github.com/XinhoGOD/ARCHVTEL/internal/api/shared/dto"
	apierrors "github.com/XinhoGOD/ARCHVTEL/internal/api/shared/errors"
	"github.com/XinhoGOD/ARCHVTEL/internal/store"
	"github.com/XinhoGOD/ARCHVTEL/internal/store/schema"
)

// ListPlayersParams holds the validated inputs of the player list pipeline
type ListPlayersParams struct {
	Page       int
	Limit      int
	SortColumn string
	SortDesc   bool
	Player     string
	Team       string
	Position   string
	Semana     int
}

// Executor carries the business logic shared by all API surfaces
type Executor interface {
	// ListPlayers runs the filter/dedupe/paginate pipeline over players with
	// recent change activity. Out-of-range pages yield an empty page, not an error.
	ListPlayers(ctx context.Context, params ListPlayersParams) (*dto.PlayerListResponse, error)

	// GetPlayerDetail retrieves one player's full observation series plus its
	// summary. Returns (nil, nil) when no observation matches the name.
	GetPlayerDetail(ctx context.Context, playerName string) (*dto.PlayerDetailResponse, error)

	// GetTrendStats assembles the five leaderboards and whole-dataset totals
	// from independent store fetches issued concurrently. Any fetch failing
	// fails the whole response.
	GetTrendStats(ctx context.Context) (*dto.TrendStatsResponse, error)
}

// Config holds executor tuning
type Config struct {
	// QueryTimeout bounds each logical store operation
	QueryTimeout time.Duration
	// StatsFanout is the worker count for the stats fan-out
	StatsFanout int
}

type executor struct {
	store  store.Store
	config Config
}

// NewExecutor creates a new executor over the given store
func NewExecutor(s store.Store, cfg Config) Executor {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 15 * time.Second
	}
	if cfg.StatsFanout <= 0 {
		cfg.StatsFanout = 6
	}
	return &executor{store: s, config: cfg}
}

func (e *executor) ListPlayers(ctx context.Context, params ListPlayersParams) (*dto.PlayerListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.QueryTimeout)
	defer cancel()

	rows, err := e.store.ListChangedTrends(ctx, store.TrendFilter{
		Player:     params.Player,
		Team:       params.Team,
		Position:   params.Position,
		Semana:     params.Semana,
		SortColumn: params.SortColumn,
		SortDesc:   params.SortDesc,
	})
	if err != nil {
		return nil, storeError(err, "Failed to list changed trends")
	}

	distinct := aggregate.DistinctLatestByChange(rows)

	total := len(distinct)
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	start := (params.Page - 1) * params.Limit
	end := start + params.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &dto.PlayerListResponse{
		Players: dto.MapTrendsToDTO(distinct[start:end]),
		Pagination: dto.Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (e *executor) GetPlayerDetail(ctx context.Context, playerName string) (*dto.PlayerDetailResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.QueryTimeout)
	defer cancel()

	series, err := e.store.GetPlayerSeries(ctx, playerName)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("Failed to get series for %q", playerName))
	}

	if len(series) == 0 {
		return nil, nil
	}

	series = aggregate.SortSeries(series)

	// Representative metadata comes from the first row of the series, while
	// the summary's current values come from the last. Both ends are fixed
	// behavior of this API.
	first := series[0]

	return &dto.PlayerDetailResponse{
		PlayerDetails: dto.MapTrendsToDTO(series),
		Summary:       aggregate.SummarizePlayer(series),
		PlayerName:    first.PlayerName,
		Position:      first.Position,
		Team:          first.Team,
	}, nil
}

func (e *executor) GetTrendStats(ctx context.Context) (*dto.TrendStatsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.QueryTimeout)
	defer cancel()

	var (
		addRows      []schema.PlayerTrend
		dropRows     []schema.PlayerTrend
		rosteredRows []schema.PlayerTrend
		riserRows    []schema.PlayerTrend
		fallerRows   []schema.PlayerTrend
		allRows      []schema.PlayerTrend
	)

	// Fan out the independent fetches and join before aggregating; the first
	// failure fails the whole response.
	pool := pond.NewPool(e.config.StatsFanout, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	group.SubmitErr(func() error {
		var err error
		addRows, err = e.store.ListAddActivity(ctx)
		return err
	})
	group.SubmitErr(func() error {
		var err error
		dropRows, err = e.store.ListDropActivity(ctx)
		return err
	})
	group.SubmitErr(func() error {
		var err error
		rosteredRows, err = e.store.ListRosteredLeaders(ctx)
		return err
	})
	group.SubmitErr(func() error {
		var err error
		riserRows, err = e.store.ListStartedRisers(ctx)
		return err
	})
	group.SubmitErr(func() error {
		var err error
		fallerRows, err = e.store.ListStartedFallers(ctx)
		return err
	})
	group.SubmitErr(func() error {
		var err error
		allRows, err = e.store.ListAllTrends(ctx)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, storeError(err, "Failed to fetch trend stats")
	}

	return &dto.TrendStatsResponse{
		TopAdds:            dto.MapTotalsToDTO(aggregate.SumByPlayer(addRows, aggregate.FieldAdds)),
		TopDrops:           dto.MapTotalsToDTO(aggregate.SumByPlayer(dropRows, aggregate.FieldDrops)),
		TopRostered:        dto.MapExtremaToDTO(aggregate.ExtremumByPlayer(rosteredRows, aggregate.FieldPercentRostered, aggregate.Max)),
		TopPositiveChanges: dto.MapExtremaToDTO(aggregate.ExtremumByPlayer(riserRows, aggregate.FieldPercentStartedChange, aggregate.Max)),
		TopNegativeChanges: dto.MapExtremaToDTO(aggregate.ExtremumByPlayer(fallerRows, aggregate.FieldPercentStartedChange, aggregate.Min)),
		TotalStats:         aggregate.SummarizeAll(allRows),
	}, nil
}

// storeError classifies a store failure: deadline overruns become the timeout
// error kind, everything else a database error. The wrapped detail stays
// server-side; responders only expose the code and message.
func storeError(err error, message string) *apierrors.APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(message, err.Error())
	}
	return apierrors.NewDatabaseError(message, err.Error())
}
