package memory

import (
	"context"
	"sort"
	"sync"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/storage"
)

// panchangaKey identifies one computed day at one location.
type panchangaKey struct {
	date string
	lat  float64
	lon  float64
}

// PanchangaStore is an in-memory implementation of storage.PanchangaStore.
type PanchangaStore struct {
	mu   sync.RWMutex
	data map[panchangaKey]*domain.PanchangaRecord
}

// NewPanchangaStore creates a new in-memory panchanga store.
func NewPanchangaStore() *PanchangaStore {
	return &PanchangaStore{
		data: make(map[panchangaKey]*domain.PanchangaRecord),
	}
}

// Compile-time interface check.
var _ storage.PanchangaStore = (*PanchangaStore)(nil)

// InsertBulk adds multiple days. Fails the entire batch on any duplicate
// (date, latitude, longitude); nothing is written on failure.
func (s *PanchangaStore) InsertBulk(_ context.Context, days []*domain.PanchangaRecord) error {
	if len(days) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before writing anything
	seen := make(map[panchangaKey]struct{})
	for _, d := range days {
		if d == nil || d.Date == "" {
			return storage.ErrInvalidInput
		}
		k := panchangaKey{d.Date, d.Latitude, d.Longitude}
		if _, dup := seen[k]; dup {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.data[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, d := range days {
		recordCopy := *d
		s.data[panchangaKey{d.Date, d.Latitude, d.Longitude}] = &recordCopy
	}
	return nil
}

// GetByDate retrieves one day at a location. Returns ErrNotFound if not exists.
func (s *PanchangaStore) GetByDate(_ context.Context, date string, lat, lon float64) (*domain.PanchangaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.data[panchangaKey{date, lat, lon}]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy
	recordCopy := *d
	return &recordCopy, nil
}

// GetByDateRange retrieves days at a location within [from, to] (inclusive),
// ordered by date ASC. Dates compare lexically in YYYY-MM-DD form.
func (s *PanchangaStore) GetByDateRange(_ context.Context, from, to string, lat, lon float64) ([]*domain.PanchangaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.PanchangaRecord
	for k, d := range s.data {
		if k.lat == lat && k.lon == lon && k.date >= from && k.date <= to {
			recordCopy := *d
			result = append(result, &recordCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	return result, nil
}
