package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XinhoGOD/ARCHVTEL/internal/api/shared/dto"
	apierrors "github.com/XinhoGOD/ARCHVTEL/internal/api/shared/errors"
	"github.com/XinhoGOD/ARCHVTEL/internal/api/shared/executor"
	"github.com/XinhoGOD/ARCHVTEL/internal/logger"
)

// fakeExecutor stubs the executor behind the handlers
type fakeExecutor struct {
	listResponse   *dto.PlayerListResponse
	listErr        error
	listParams     executor.ListPlayersParams
	detailResponse *dto.PlayerDetailResponse
	detailErr      error
	statsResponse  *dto.TrendStatsResponse
	statsErr       error
}

func (f *fakeExecutor) ListPlayers(_ context.Context, params executor.ListPlayersParams) (*dto.PlayerListResponse, error) {
	f.listParams = params
	return f.listResponse, f.listErr
}

func (f *fakeExecutor) GetPlayerDetail(_ context.Context, _ string) (*dto.PlayerDetailResponse, error) {
	return f.detailResponse, f.detailErr
}

func (f *fakeExecutor) GetTrendStats(_ context.Context) (*dto.TrendStatsResponse, error) {
	return f.statsResponse, f.statsErr
}

func setupRouter(t *testing.T, exec executor.Executor) *gin.Engine {
	t.Helper()
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, NewHandler(exec))
	return router
}

func doRequest(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestListPlayersEndpoint(t *testing.T) {
	t.Run("returns the page with pagination", func(t *testing.T) {
		fake := &fakeExecutor{listResponse: &dto.PlayerListResponse{
			Players:    []dto.TrendResponse{{PlayerName: "A"}},
			Pagination: dto.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1},
		}}
		router := setupRouter(t, fake)

		w := doRequest(router, "/api/v1/players")

		require.Equal(t, http.StatusOK, w.Code)
		var body dto.PlayerListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Players, 1)
		assert.Equal(t, "A", body.Players[0].PlayerName)
		assert.Equal(t, 1, body.Pagination.TotalPages)
	})

	t.Run("forwards filters and sort to the executor", func(t *testing.T) {
		fake := &fakeExecutor{listResponse: &dto.PlayerListResponse{}}
		router := setupRouter(t, fake)

		w := doRequest(router, "/api/v1/players?page=2&limit=10&sortBy=adds&sortOrder=asc&player=maho&team=kc&position=QB&semana=3")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, executor.ListPlayersParams{
			Page: 2, Limit: 10, SortColumn: "adds", SortDesc: false,
			Player: "maho", Team: "kc", Position: "QB", Semana: 3,
		}, fake.listParams)
	})

	t.Run("rejects an unknown sort column", func(t *testing.T) {
		router := setupRouter(t, &fakeExecutor{})

		w := doRequest(router, "/api/v1/players?sortBy=drop%20table")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects page zero", func(t *testing.T) {
		router := setupRouter(t, &fakeExecutor{})

		w := doRequest(router, "/api/v1/players?page=0")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure responds 500 without internal detail", func(t *testing.T) {
		fake := &fakeExecutor{listErr: apierrors.NewDatabaseError("Failed to list changed trends", "pq: connection refused")}
		router := setupRouter(t, fake)

		w := doRequest(router, "/api/v1/players")

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("query timeout responds 504", func(t *testing.T) {
		fake := &fakeExecutor{listErr: apierrors.NewTimeoutError("Failed to list changed trends")}
		router := setupRouter(t, fake)

		w := doRequest(router, "/api/v1/players")

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})
}

func TestGetPlayerDetailEndpoint(t *testing.T) {
	t.Run("missing playerName responds 400", func(t *testing.T) {
		router := setupRouter(t, &fakeExecutor{})

		w := doRequest(router, "/api/v1/players/detail")

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "playerName is required")
	})

	t.Run("unknown player responds 404, not an empty success", func(t *testing.T) {
		router := setupRouter(t, &fakeExecutor{})

		w := doRequest(router, "/api/v1/players/detail?playerName=Nobody")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("known player responds with series and summary", func(t *testing.T) {
		team := "KC"
		fake := &fakeExecutor{detailResponse: &dto.PlayerDetailResponse{
			PlayerDetails: []dto.TrendResponse{{PlayerName: "A", Semana: 1}},
			PlayerName:    "A",
			Team:          &team,
		}}
		router := setupRouter(t, fake)

		w := doRequest(router, "/api/v1/players/detail?playerName=A")

		require.Equal(t, http.StatusOK, w.Code)
		var body dto.PlayerDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "A", body.PlayerName)
		require.Len(t, body.PlayerDetails, 1)
	})
}

func TestGetTrendStatsEndpoint(t *testing.T) {
	t.Run("responds with leaderboards", func(t *testing.T) {
		fake := &fakeExecutor{statsResponse: &dto.TrendStatsResponse{
			TopAdds: []dto.LeaderboardEntry{{PlayerName: "A", Value: 30}},
		}}
		router := setupRouter(t, fake)

		w := doRequest(router, "/api/v1/stats")

		require.Equal(t, http.StatusOK, w.Code)
		var body dto.TrendStatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.TopAdds, 1)
		assert.Equal(t, 30.0, body.TopAdds[0].Value)
	})

	t.Run("any sub-query failure responds 500", func(t *testing.T) {
		fake := &fakeExecutor{statsErr: apierrors.NewDatabaseError("Failed to fetch trend stats")}
		router := setupRouter(t, fake)

		w := doRequest(router, "/api/v1/stats")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(t, &fakeExecutor{})

	w := doRequest(router, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
