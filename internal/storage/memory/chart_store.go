package memory

import (
	"context"
	"sort"
	"sync"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/storage"
)

// ChartStore is an in-memory implementation of storage.ChartStore.
type ChartStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ChartRecord // keyed by chart_id
}

// NewChartStore creates a new in-memory chart store.
func NewChartStore() *ChartStore {
	return &ChartStore{
		data: make(map[string]*domain.ChartRecord),
	}
}

// Compile-time interface check.
var _ storage.ChartStore = (*ChartStore)(nil)

// Insert adds a new chart record. Returns ErrDuplicateKey if chart_id exists.
func (s *ChartStore) Insert(_ context.Context, r *domain.ChartRecord) error {
	if r == nil || r.ChartID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.ChartID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	recordCopy := *r
	s.data[r.ChartID] = &recordCopy
	return nil
}

// GetByID retrieves a chart by its ID. Returns ErrNotFound if not exists.
func (s *ChartStore) GetByID(_ context.Context, chartID string) (*domain.ChartRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[chartID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy
	recordCopy := *r
	return &recordCopy, nil
}

// GetByName retrieves all charts stored under a name, newest first.
func (s *ChartStore) GetByName(_ context.Context, name string) ([]*domain.ChartRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ChartRecord
	for _, r := range s.data {
		if r.Name == name {
			recordCopy := *r
			result = append(result, &recordCopy)
		}
	}

	// Sort by created_at DESC, chart_id ASC for stable order
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt > result[j].CreatedAt
		}
		return result[i].ChartID < result[j].ChartID
	})

	return result, nil
}

// GetByTimeRange retrieves charts created within [start, end] (inclusive).
func (s *ChartStore) GetByTimeRange(_ context.Context, start, end int64) ([]*domain.ChartRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ChartRecord
	for _, r := range s.data {
		if r.CreatedAt >= start && r.CreatedAt <= end {
			recordCopy := *r
			result = append(result, &recordCopy)
		}
	}

	// Sort by created_at ASC, chart_id ASC for stable order
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt < result[j].CreatedAt
		}
		return result[i].ChartID < result[j].ChartID
	})

	return result, nil
}
