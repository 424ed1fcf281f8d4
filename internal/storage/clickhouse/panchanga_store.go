package clickhouse

import (
	"context"
	"fmt"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/observability"
	"jyotish-engine/internal/storage"
)

// PanchangaStore implements storage.PanchangaStore using ClickHouse.
type PanchangaStore struct {
	conn *Conn
}

// NewPanchangaStore creates a new PanchangaStore.
func NewPanchangaStore(conn *Conn) *PanchangaStore {
	return &PanchangaStore{conn: conn}
}

// Compile-time interface check.
var _ storage.PanchangaStore = (*PanchangaStore)(nil)

// InsertBulk adds multiple days. Fails entire batch on duplicate (date, latitude, longitude).
func (s *PanchangaStore) InsertBulk(ctx context.Context, days []*domain.PanchangaRecord) (err error) {
	if len(days) == 0 {
		return nil
	}
	done := observability.TimeDBQuery("clickhouse", "insert_panchanga_days")
	defer func() { done(err) }()

	// Check for intra-batch duplicates
	type key struct {
		date string
		lat  float64
		lon  float64
	}
	seen := make(map[key]struct{})
	for _, d := range days {
		k := key{d.Date, d.Latitude, d.Longitude}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, d := range days {
		exists, err := s.exists(ctx, d.Date, d.Latitude, d.Longitude)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO panchanga_days (
			date, latitude, longitude, weekday,
			tithi_index, tithi, nakshatra_index, nakshatra,
			yoga_index, yoga, karana_index, karana,
			sunrise_unix, sunset_unix, computed_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, d := range days {
		err = batch.Append(
			d.Date, d.Latitude, d.Longitude, d.Weekday,
			uint8(d.TithiIndex), d.Tithi, uint8(d.NakshatraIndex), d.Nakshatra,
			uint8(d.YogaIndex), d.Yoga, uint8(d.KaranaIndex), d.Karana,
			d.SunriseUnix, d.SunsetUnix, d.ComputedAt,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByDate retrieves one day at a location. Returns ErrNotFound if not exists.
func (s *PanchangaStore) GetByDate(ctx context.Context, date string, lat, lon float64) (_ *domain.PanchangaRecord, err error) {
	done := observability.TimeDBQuery("clickhouse", "get_day_by_date")
	defer func() { done(err) }()

	query := panchangaColumns + `
		WHERE date = ? AND latitude = ? AND longitude = ?
		LIMIT 1
	`

	rows, err := s.conn.Query(ctx, query, date, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("query by date: %w", err)
	}
	defer rows.Close()

	days, err := scanPanchangaDays(rows)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, storage.ErrNotFound
	}
	return days[0], nil
}

// GetByDateRange retrieves days at a location within [from, to] (inclusive), ordered by date ASC.
func (s *PanchangaStore) GetByDateRange(ctx context.Context, from, to string, lat, lon float64) (_ []*domain.PanchangaRecord, err error) {
	done := observability.TimeDBQuery("clickhouse", "get_days_by_range")
	defer func() { done(err) }()

	query := panchangaColumns + `
		WHERE date >= ? AND date <= ? AND latitude = ? AND longitude = ?
		ORDER BY date ASC
	`

	rows, err := s.conn.Query(ctx, query, from, to, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("query by date range: %w", err)
	}
	defer rows.Close()

	return scanPanchangaDays(rows)
}

// exists checks if a day with the given key exists.
func (s *PanchangaStore) exists(ctx context.Context, date string, lat, lon float64) (bool, error) {
	query := `
		SELECT count(*) FROM panchanga_days
		WHERE date = ? AND latitude = ? AND longitude = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, date, lat, lon).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

const panchangaColumns = `
	SELECT date, latitude, longitude, weekday,
	       tithi_index, tithi, nakshatra_index, nakshatra,
	       yoga_index, yoga, karana_index, karana,
	       sunrise_unix, sunset_unix, computed_at
	FROM panchanga_days
`

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanPanchangaDays scans multiple rows.
func scanPanchangaDays(rows chRows) ([]*domain.PanchangaRecord, error) {
	var days []*domain.PanchangaRecord

	for rows.Next() {
		var d domain.PanchangaRecord
		var tithiIdx, nakIdx, yogaIdx, karanaIdx uint8

		err := rows.Scan(
			&d.Date, &d.Latitude, &d.Longitude, &d.Weekday,
			&tithiIdx, &d.Tithi, &nakIdx, &d.Nakshatra,
			&yogaIdx, &d.Yoga, &karanaIdx, &d.Karana,
			&d.SunriseUnix, &d.SunsetUnix, &d.ComputedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan panchanga row: %w", err)
		}

		d.TithiIndex = int(tithiIdx)
		d.NakshatraIndex = int(nakIdx)
		d.YogaIndex = int(yogaIdx)
		d.KaranaIndex = int(karanaIdx)
		days = append(days, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate panchanga rows: %w", err)
	}

	return days, nil
}
