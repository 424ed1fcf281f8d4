package storage

import (
	"context"

	"jyotish-engine/internal/domain"
)

// ChartStore provides access to persisted chart computations.
type ChartStore interface {
	// Insert adds a new chart record. Returns ErrDuplicateKey if chart_id exists.
	Insert(ctx context.Context, r *domain.ChartRecord) error

	// GetByID retrieves a chart by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, chartID string) (*domain.ChartRecord, error)

	// GetByName retrieves all charts stored under a name, newest first.
	GetByName(ctx context.Context, name string) ([]*domain.ChartRecord, error)

	// GetByTimeRange retrieves charts created within [start, end] unix seconds (inclusive).
	GetByTimeRange(ctx context.Context, start, end int64) ([]*domain.ChartRecord, error)
}

// PanchangaStore provides access to computed calendar days.
type PanchangaStore interface {
	// InsertBulk adds multiple days. Fails the entire batch on any duplicate
	// (date, latitude, longitude).
	InsertBulk(ctx context.Context, days []*domain.PanchangaRecord) error

	// GetByDate retrieves one day at a location. Returns ErrNotFound if not exists.
	GetByDate(ctx context.Context, date string, lat, lon float64) (*domain.PanchangaRecord, error)

	// GetByDateRange retrieves days at a location within [from, to] (inclusive),
	// ordered by date ASC.
	GetByDateRange(ctx context.Context, from, to string, lat, lon float64) ([]*domain.PanchangaRecord, error)
}
