package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/observability"
	"jyotish-engine/internal/storage"
)

// ChartStore implements storage.ChartStore using PostgreSQL.
type ChartStore struct {
	pool *Pool
}

// NewChartStore creates a new ChartStore.
func NewChartStore(pool *Pool) *ChartStore {
	return &ChartStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ChartStore = (*ChartStore)(nil)

// Insert adds a new chart record. Returns ErrDuplicateKey if chart_id exists.
func (s *ChartStore) Insert(ctx context.Context, r *domain.ChartRecord) (err error) {
	if r == nil || r.ChartID == "" {
		return storage.ErrInvalidInput
	}
	done := observability.TimeDBQuery("postgres", "insert_chart")
	defer func() { done(err) }()

	query := `
		INSERT INTO charts (
			chart_id, name, birth_date, birth_time, latitude, longitude,
			offset_hours, ayanamsa_mode, house_system, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = s.pool.Exec(ctx, query,
		r.ChartID,
		r.Name,
		r.BirthDate,
		r.BirthTime,
		r.Latitude,
		r.Longitude,
		r.OffsetHours,
		r.AyanamsaMode,
		r.HouseSystem,
		r.Payload,
		r.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert chart: %w", err)
	}
	return nil
}

// GetByID retrieves a chart by its ID. Returns ErrNotFound if not exists.
func (s *ChartStore) GetByID(ctx context.Context, chartID string) (_ *domain.ChartRecord, err error) {
	done := observability.TimeDBQuery("postgres", "get_chart_by_id")
	defer func() { done(err) }()

	query := chartColumns + ` WHERE chart_id = $1`

	row := s.pool.QueryRow(ctx, query, chartID)
	r, err := scanChart(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get chart by id: %w", err)
	}
	return r, nil
}

// GetByName retrieves all charts stored under a name, newest first.
func (s *ChartStore) GetByName(ctx context.Context, name string) (_ []*domain.ChartRecord, err error) {
	done := observability.TimeDBQuery("postgres", "get_charts_by_name")
	defer func() { done(err) }()

	query := chartColumns + ` WHERE name = $1 ORDER BY created_at DESC, chart_id ASC`

	rows, err := s.pool.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("get charts by name: %w", err)
	}
	defer rows.Close()

	return scanCharts(rows)
}

// GetByTimeRange retrieves charts created within [start, end] (inclusive).
func (s *ChartStore) GetByTimeRange(ctx context.Context, start, end int64) (_ []*domain.ChartRecord, err error) {
	done := observability.TimeDBQuery("postgres", "get_charts_by_time_range")
	defer func() { done(err) }()

	query := chartColumns + ` WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at ASC, chart_id ASC`

	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("get charts by time range: %w", err)
	}
	defer rows.Close()

	return scanCharts(rows)
}

const chartColumns = `
	SELECT chart_id, name, birth_date, birth_time, latitude, longitude,
	       offset_hours, ayanamsa_mode, house_system, payload, created_at
	FROM charts
`

// scanChart scans a single row into a ChartRecord.
func scanChart(row pgx.Row) (*domain.ChartRecord, error) {
	var r domain.ChartRecord
	err := row.Scan(
		&r.ChartID,
		&r.Name,
		&r.BirthDate,
		&r.BirthTime,
		&r.Latitude,
		&r.Longitude,
		&r.OffsetHours,
		&r.AyanamsaMode,
		&r.HouseSystem,
		&r.Payload,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// scanCharts scans all rows into ChartRecords.
func scanCharts(rows pgx.Rows) ([]*domain.ChartRecord, error) {
	var out []*domain.ChartRecord
	for rows.Next() {
		r, err := scanChart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chart: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate charts: %w", err)
	}
	return out, nil
}
