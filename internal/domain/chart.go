package domain

import "time"

// HouseSystem codes accepted by the ephemeris provider, following the Swiss
// Ephemeris single-letter convention.
const (
	HousePlacidus  = "P"
	HouseEqual     = "E"
	HouseWholeSign = "W"
)

// Moment is a normalized birth or query instant. Immutable once constructed.
type Moment struct {
	Civil       time.Time // civil wall-clock time with its UTC offset applied
	OffsetHours float64   // UTC offset used to derive UT
	JulianDayUT float64
	Latitude    float64
	Longitude   float64
}

// Chart is a fully built sidereal chart for one moment and location.
type Chart struct {
	Moment      Moment
	Ayanamsa    Ayanamsa
	HouseSystem string
	Ascendant   Ascendant
	Cusps       [12]float64 // sidereal cusp longitudes, house 1 first
	Positions   map[Body]Position
}

// MoonPosition returns the Moon's position. The Moon is always present in a
// built chart.
func (c *Chart) MoonPosition() Position {
	return c.Positions[Moon]
}

// DivisionalChart maps each body to its remapped sign for one division factor.
type DivisionalChart struct {
	Division int // D-factor: 1, 3, 7, 9, 10, 12, 24, 60, ...
	Signs    map[Body]int
}

// YogaMatch is one evaluated chart pattern. Derived, never persisted.
type YogaMatch struct {
	Name    string  `json:"name"`
	Active  bool    `json:"active"`
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
	Remedy  string  `json:"remedy,omitempty"`
}

// CompatibilityResult is an ashtakoot match between two charts.
type CompatibilityResult struct {
	AshtakootScore  float64         `json:"ashtakootScore"` // 0-36
	MaxScore        float64         `json:"ashtakootOutOf"` // always 36
	Categories      []CategoryScore `json:"categories"`     // the 8 kootas in order
	DashaAlignment  string          `json:"dashaAlignment"`
	ManglikMismatch bool            `json:"manglikMismatch"`
}

// CategoryScore is one koota's contribution.
type CategoryScore struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	OutOf  float64 `json:"outOf"`
	Detail string  `json:"detail,omitempty"`
}

// MuhurtaWindow is one scored time slot from a day scan.
type MuhurtaWindow struct {
	Time      time.Time `json:"time"`
	Lagna     string    `json:"lagna"`
	Tithi     string    `json:"tithi"`
	Nakshatra string    `json:"nakshatra"`
	Yoga      string    `json:"yoga"`
	Score     float64   `json:"score"`
	Reasons   []string  `json:"reasons"`
}
