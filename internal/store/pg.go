package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/XinhoGOD/ARCHVTEL/internal/store/schema"
)

// hasChangeActivity keeps only rows where at least one change column is
// non-zero. COALESCE makes NULL behave as zero, so a NULL change does not
// qualify a row.
const hasChangeActivity = "(COALESCE(percent_rostered_change, 0) <> 0" +
	" OR COALESCE(percent_started_change, 0) <> 0" +
	" OR COALESCE(adds, 0) <> 0" +
	" OR COALESCE(drops, 0) <> 0)"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection by accessing the underlying *sql.DB.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// ListChangedTrends retrieves every observation matching the filter with
// non-zero change activity, ordered server-side so that the in-process
// deduplication tie-break is deterministic
func (s *pgStore) ListChangedTrends(ctx context.Context, filter TrendFilter) ([]schema.PlayerTrend, error) {
	q := s.db.WithContext(ctx).Model(&schema.PlayerTrend{}).Where(hasChangeActivity)

	if filter.Player != "" {
		q = q.Where("player_name ILIKE ?", "%"+filter.Player+"%")
	}
	if filter.Team != "" {
		q = q.Where("team ILIKE ?", "%"+filter.Team+"%")
	}
	if filter.Position != "" {
		q = q.Where("position = ?", filter.Position)
	}
	if filter.Semana != 0 {
		q = q.Where("semana = ?", filter.Semana)
	}

	sortColumn := filter.SortColumn
	if sortColumn == "" {
		sortColumn = "percent_started_change"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	// NULLS LAST keeps nil metrics behind real values in either direction;
	// timestamp breaks remaining ties so input order is fully deterministic.
	q = q.Order(fmt.Sprintf("%s %s NULLS LAST", sortColumn, direction)).
		Order("timestamp DESC")

	var trends []schema.PlayerTrend
	if err := q.Find(&trends).Error; err != nil {
		return nil, fmt.Errorf("failed to list changed trends: %w", err)
	}

	return trends, nil
}

// GetPlayerSeries retrieves all observations for one player by exact
// case-insensitive name match
func (s *pgStore) GetPlayerSeries(ctx context.Context, playerName string) ([]schema.PlayerTrend, error) {
	var trends []schema.PlayerTrend
	err := s.db.WithContext(ctx).
		Where("player_name ILIKE ?", playerName).
		Order("semana ASC").
		Order("timestamp ASC").
		Find(&trends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get player series: %w", err)
	}

	return trends, nil
}

// ListAddActivity retrieves observations with a recorded adds counter
func (s *pgStore) ListAddActivity(ctx context.Context) ([]schema.PlayerTrend, error) {
	var trends []schema.PlayerTrend
	err := s.db.WithContext(ctx).
		Where("adds IS NOT NULL").
		Find(&trends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list add activity: %w", err)
	}

	return trends, nil
}

// ListDropActivity retrieves observations with a recorded drops counter
func (s *pgStore) ListDropActivity(ctx context.Context) ([]schema.PlayerTrend, error) {
	var trends []schema.PlayerTrend
	err := s.db.WithContext(ctx).
		Where("drops IS NOT NULL").
		Find(&trends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list drop activity: %w", err)
	}

	return trends, nil
}

// ListRosteredLeaders retrieves observations with a recorded rostered
// percentage, highest first
func (s *pgStore) ListRosteredLeaders(ctx context.Context) ([]schema.PlayerTrend, error) {
	var trends []schema.PlayerTrend
	err := s.db.WithContext(ctx).
		Where("percent_rostered IS NOT NULL").
		Order("percent_rostered DESC").
		Find(&trends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rostered leaders: %w", err)
	}

	return trends, nil
}

// ListStartedRisers retrieves observations with a positive started-percentage
// change, largest first
func (s *pgStore) ListStartedRisers(ctx context.Context) ([]schema.PlayerTrend, error) {
	var trends []schema.PlayerTrend
	err := s.db.WithContext(ctx).
		Where("percent_started_change > 0").
		Order("percent_started_change DESC").
		Find(&trends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list started risers: %w", err)
	}

	return trends, nil
}

// ListStartedFallers retrieves observations with a negative started-percentage
// change, most negative first
func (s *pgStore) ListStartedFallers(ctx context.Context) ([]schema.PlayerTrend, error) {
	var trends []schema.PlayerTrend
	err := s.db.WithContext(ctx).
		Where("percent_started_change < 0").
		Order("percent_started_change ASC").
		Find(&trends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list started fallers: %w", err)
	}

	return trends, nil
}

// ListAllTrends retrieves the full table for whole-dataset statistics
func (s *pgStore) ListAllTrends(ctx context.Context) ([]schema.PlayerTrend, error) {
	var trends []schema.PlayerTrend
	err := s.db.WithContext(ctx).Find(&trends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trends: %w", err)
	}

	return trends, nil
}
