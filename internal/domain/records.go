package domain

// ChartRecord is a persisted natal chart computation. The payload carries the
// full serialized chart snapshot; the scalar columns exist for lookup.
type ChartRecord struct {
	ChartID      string // base58 fingerprint of the birth inputs
	Name         string
	BirthDate    string // YYYY-MM-DD
	BirthTime    string // HH:MM
	Latitude     float64
	Longitude    float64
	OffsetHours  float64
	AyanamsaMode string
	HouseSystem  string
	Payload      []byte // chart snapshot JSON
	CreatedAt    int64  // unix seconds
}

// PanchangaRecord is one computed calendar day at one location, stored for
// calendar range queries.
type PanchangaRecord struct {
	Date           string // YYYY-MM-DD
	Latitude       float64
	Longitude      float64
	Weekday        string
	TithiIndex     int
	Tithi          string
	NakshatraIndex int
	Nakshatra      string
	YogaIndex      int
	Yoga           string
	KaranaIndex    int
	Karana         string
	SunriseUnix    int64
	SunsetUnix     int64
	ComputedAt     int64 // unix seconds
}
