// Package moment normalizes civil date, time and location into the Julian
// Day (UT) instants the ephemeris provider consumes.
package moment

import (
	"fmt"
	"math"
	"time"

	"jyotish-engine/internal/domain"
)

// Accepted civil formats.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// New parses a civil date and time with an explicit UTC offset and builds an
// immutable Moment. Returns domain.ErrInvalidTimeFormat if either field fails
// to parse.
func New(date, timeOfDay string, offsetHours, lat, lon float64) (domain.Moment, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return domain.Moment{}, fmt.Errorf("%w: date %q (want YYYY-MM-DD)", domain.ErrInvalidTimeFormat, date)
	}
	td, err := time.Parse(TimeLayout, timeOfDay)
	if err != nil {
		return domain.Moment{}, fmt.Errorf("%w: time %q (want HH:MM)", domain.ErrInvalidTimeFormat, timeOfDay)
	}

	zone := time.FixedZone("", int(offsetHours*3600))
	civil := time.Date(d.Year(), d.Month(), d.Day(), td.Hour(), td.Minute(), 0, 0, zone)

	return domain.Moment{
		Civil:       civil,
		OffsetHours: offsetHours,
		JulianDayUT: JulianDay(civil.UTC()),
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}

// JulianDay converts a UTC instant to a Julian Day using the standard civil
// calendar formula, matching the ephemeris provider's own conversion.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	y := t.Year()
	m := int(t.Month())
	day := float64(t.Day()) +
		float64(t.Hour())/24.0 +
		float64(t.Minute())/1440.0 +
		float64(t.Second())/86400.0

	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		day + float64(b) - 1524.5
}

// FromJulianDay converts a Julian Day (UT) back to a civil time at the given
// UTC offset. Inverse of JulianDay to within a second.
func FromJulianDay(jd, offsetHours float64) time.Time {
	z := math.Floor(jd + 0.5)
	f := jd + 0.5 - z

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := b - d - math.Floor(30.6001*e) + f
	month := int(e) - 1
	if e >= 14 {
		month = int(e) - 13
	}
	year := int(c) - 4716
	if month <= 2 {
		year = int(c) - 4715
	}

	dayInt := int(day)
	frac := day - float64(dayInt)
	secs := int(math.Round(frac * 86400.0))

	utc := time.Date(year, time.Month(month), dayInt, 0, 0, secs, 0, time.UTC)
	return utc.In(time.FixedZone("", int(offsetHours*3600)))
}
