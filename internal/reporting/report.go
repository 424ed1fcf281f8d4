package reporting

import (
	"time"

	"jyotish-engine/internal/domain"
)

// KundliReport is the full natal report structure.
type KundliReport struct {
	// Metadata
	GeneratedAt time.Time
	Name        string
	BirthDate   string // YYYY-MM-DD
	BirthTime   string // HH:MM
	Place       string

	// Chart
	Chart *domain.Chart

	// Divisional charts to include (D9 at minimum)
	Divisionals []*domain.DivisionalChart

	// Vimshottari periods, mahadashas with antardashas
	Dashas []domain.DashaNode

	// Evaluated chart patterns
	Yogas []domain.YogaMatch
}

// PanchangaRow is one day in a calendar CSV export.
type PanchangaRow struct {
	Date      string
	Weekday   string
	Tithi     string
	Nakshatra string
	Yoga      string
	Karana    string
	Sunrise   string
	Sunset    string
	Festivals string
}

// MuhurtaRow is one scored window in a muhurta CSV export.
type MuhurtaRow struct {
	Time      string
	Lagna     string
	Tithi     string
	Nakshatra string
	Yoga      string
	Score     float64
}
