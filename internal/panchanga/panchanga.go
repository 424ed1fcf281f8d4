// Package panchanga derives the five calendar elements and the day's
// time-window partitions (Rahu Kaal, Abhijit, Choghadiya) for a civil date
// and location.
package panchanga

import (
	"context"
	"fmt"
	"time"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris"
	"jyotish-engine/internal/moment"
)

// Engine computes panchanga days from an ephemeris provider. The ayanamsa is
// fixed at construction; build one engine per mode.
type Engine struct {
	provider ephemeris.Provider
	ayanamsa domain.Ayanamsa
}

// NewEngine creates a panchanga engine.
func NewEngine(p ephemeris.Provider, ay domain.Ayanamsa) *Engine {
	return &Engine{provider: p, ayanamsa: ay}
}

// Day computes the full panchanga for one civil date. The elements are
// evaluated at local sunrise, the traditional reference instant.
func (e *Engine) Day(ctx context.Context, date string, offsetHours, lat, lon float64) (*domain.PanchangaDay, error) {
	m, err := moment.New(date, "00:00", offsetHours, lat, lon)
	if err != nil {
		return nil, err
	}
	localNoonJD := m.JulianDayUT + 0.5

	sunriseJD, err := e.provider.RiseTransit(ctx, localNoonJD, domain.Sun, lat, lon, ephemeris.Rise)
	if err != nil {
		return nil, fmt.Errorf("%w: sunrise: %v", domain.ErrEphemerisProvider, err)
	}
	sunsetJD, err := e.provider.RiseTransit(ctx, localNoonJD, domain.Sun, lat, lon, ephemeris.Set)
	if err != nil {
		return nil, fmt.Errorf("%w: sunset: %v", domain.ErrEphemerisProvider, err)
	}
	sunrise := moment.FromJulianDay(sunriseJD, offsetHours)
	sunset := moment.FromJulianDay(sunsetJD, offsetHours)

	sunTrop, err := e.provider.Longitude(ctx, sunriseJD, domain.Sun)
	if err != nil {
		return nil, fmt.Errorf("%w: sun longitude: %v", domain.ErrEphemerisProvider, err)
	}
	moonTrop, err := e.provider.Longitude(ctx, sunriseJD, domain.Moon)
	if err != nil {
		return nil, fmt.Errorf("%w: moon longitude: %v", domain.ErrEphemerisProvider, err)
	}
	sunLon := domain.Normalize(sunTrop - e.ayanamsa.Degrees)
	moonLon := domain.Normalize(moonTrop - e.ayanamsa.Degrees)

	diff := domain.Normalize(moonLon - sunLon)
	tithiIndex := int(diff / 12.0)
	nakIndex := domain.NakshatraOf(moonLon)
	yogaIndex := int(domain.Normalize(sunLon+moonLon) / domain.NakshatraSpan)
	karanaIndex := int(diff / 6.0)

	civil := time.Date(m.Civil.Year(), m.Civil.Month(), m.Civil.Day(), 0, 0, 0, 0, m.Civil.Location())
	weekday := civil.Weekday()

	day := &domain.PanchangaDay{
		Date:           civil,
		Weekday:        weekday,
		TithiIndex:     tithiIndex,
		Tithi:          domain.TithiNames[tithiIndex],
		NakshatraIndex: nakIndex,
		Nakshatra:      domain.NakshatraNames[nakIndex],
		YogaIndex:      yogaIndex,
		Yoga:           domain.YogaNames[yogaIndex],
		KaranaIndex:    karanaIndex,
		Karana:         KaranaName(karanaIndex),
		Sunrise:        sunrise,
		Sunset:         sunset,
		RahuKaal:       rahuKaal(sunrise, sunset, weekday),
		Abhijit:        abhijit(sunrise, sunset),
		Choghadiya:     choghadiya(sunrise, sunset, weekday),
		Festivals:      festivals(tithiIndex, nakIndex, civil),
		MoonPhase:      moonPhase(diff),
		VedicMonth:     domain.VedicMonths[domain.SignOf(sunLon)],
		RaviYoga:       isRaviYoga(weekday, nakIndex),
		AmritSiddhi:    isAmritSiddhi(weekday, nakIndex),
	}
	return day, nil
}

// KaranaName maps a half-tithi slot (0-59) to its karana. Slot 0 and slots
// 57-59 carry the four fixed karanas; the seven movable names cycle through
// the 56 slots between.
func KaranaName(slot int) string {
	switch {
	case slot == 0:
		return domain.FixedKaranas[0]
	case slot >= 57 && slot <= 59:
		return domain.FixedKaranas[slot-56]
	default:
		return domain.MovableKaranas[(slot-1)%7]
	}
}

// rahuKaal picks the weekday's eighth of the daylight span.
func rahuKaal(sunrise, sunset time.Time, weekday time.Weekday) domain.TimeWindow {
	segment := domain.RahuKaalSegment[weekday]
	slot := sunset.Sub(sunrise) / 8
	start := sunrise.Add(time.Duration(segment-1) * slot)
	return domain.TimeWindow{Start: start, End: start.Add(slot)}
}

// abhijit is the 48-minute window centered on the midpoint of daylight.
func abhijit(sunrise, sunset time.Time) domain.TimeWindow {
	noon := sunrise.Add(sunset.Sub(sunrise) / 2)
	return domain.TimeWindow{Start: noon.Add(-24 * time.Minute), End: noon.Add(24 * time.Minute)}
}

// choghadiya splits daylight and night into eight segments each. The day
// sequence starts at the weekday's opening name; the night sequence continues
// five steps further along the seven-name cycle.
func choghadiya(sunrise, sunset time.Time, weekday time.Weekday) []domain.ChoghadiyaSlot {
	first := domain.ChoghadiyaDayFirst[weekday]
	slots := make([]domain.ChoghadiyaSlot, 0, 16)

	daySlot := sunset.Sub(sunrise) / 8
	for i := 0; i < 8; i++ {
		start := sunrise.Add(time.Duration(i) * daySlot)
		slots = append(slots, domain.ChoghadiyaSlot{
			Name:  domain.ChoghadiyaNames[(first+i)%7],
			Start: start,
			End:   start.Add(daySlot),
		})
	}

	nightEnd := sunrise.Add(24 * time.Hour)
	nightSlot := nightEnd.Sub(sunset) / 8
	for i := 0; i < 8; i++ {
		start := sunset.Add(time.Duration(i) * nightSlot)
		slots = append(slots, domain.ChoghadiyaSlot{
			Name:    domain.ChoghadiyaNames[(first+5+i)%7],
			Start:   start,
			End:     start.Add(nightSlot),
			IsNight: true,
		})
	}
	return slots
}

// moonPhase buckets the Moon-Sun elongation into quadrants.
func moonPhase(diff float64) string {
	switch {
	case diff < 90:
		return "Waxing Crescent"
	case diff < 180:
		return "Waxing Gibbous"
	case diff < 270:
		return "Waning Gibbous"
	default:
		return "Waning Crescent"
	}
}

// raviYogaPairs keys the two nakshatras forming Ravi Yoga with each weekday.
var raviYogaPairs = map[time.Weekday][2]int{
	time.Sunday:    {1, 2},   // Bharani, Krittika
	time.Monday:    {8, 9},   // Ashlesha, Magha
	time.Tuesday:   {16, 17}, // Anuradha, Jyeshtha
	time.Wednesday: {26, 0},  // Revati, Ashwini
	time.Thursday:  {7, 6},   // Pushya, Punarvasu
	time.Friday:    {3, 4},   // Rohini, Mrigashira
	time.Saturday:  {11, 12}, // Uttara Phalguni, Hasta
}

func isRaviYoga(weekday time.Weekday, nakIndex int) bool {
	pair, ok := raviYogaPairs[weekday]
	return ok && (pair[0] == nakIndex || pair[1] == nakIndex)
}

func isAmritSiddhi(weekday time.Weekday, nakIndex int) bool {
	if weekday == time.Monday && nakIndex == 3 { // Rohini
		return true
	}
	if weekday == time.Wednesday && nakIndex == 12 { // Hasta
		return true
	}
	return false
}

// fixedFestivals keys civil month-day dates to their observances.
var fixedFestivals = map[string]string{
	"01-14": "Makar Sankranti",
	"08-15": "Independence Day",
	"10-02": "Gandhi Jayanti",
}

// festivals matches the additive rule table: fixed civil dates first, then
// (tithi, nakshatra) combinations. Order independent, duplicates impossible.
func festivals(tithiIndex, nakIndex int, civil time.Time) []string {
	out := []string{}
	if name, ok := fixedFestivals[civil.Format("01-02")]; ok {
		out = append(out, name)
	}
	// Krishna Ashtami with the Moon in Rohini.
	if tithiIndex == 22 && nakIndex == 3 {
		out = append(out, "Krishna Janmashtami")
	}
	// Shukla Chaturdashi with the Moon in Rohini.
	if tithiIndex == 13 && nakIndex == 3 {
		out = append(out, "Narasimha Jayanti")
	}
	return out
}
