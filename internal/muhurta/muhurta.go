// Package muhurta scans a day for auspicious time windows against
// goal-specific panchanga and lagna profiles.
package muhurta

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris"
	"jyotish-engine/internal/moment"
)

// Scan hours: every second hour from 05:00 to 19:00 local.
const (
	scanStartHour = 5
	scanEndHour   = 21
	scanStepHours = 2
)

// Weights holds the per-criterion points of a profile.
type Weights struct {
	Tithi     float64
	Nakshatra float64
	Yoga      float64
	Lagna     float64
}

// Profile enumerates the acceptable panchanga elements and lagnas for one
// goal, with per-criterion weights and a minimum passing score.
type Profile struct {
	Goal       string
	Tithis     map[int]bool
	Nakshatras map[int]bool
	Yogas      map[int]bool
	Lagnas     map[int]bool
	Weights    Weights
	Threshold  float64
}

func set(vals ...int) map[int]bool {
	m := make(map[int]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// auspiciousYogas excludes the harsh nityayogas (Vishkambha, Atiganda, Shula,
// Ganda, Vyaghata, Vajra, Vyatipata, Parigha, Vaidhriti).
var auspiciousYogas = set(1, 2, 3, 4, 6, 7, 10, 11, 13, 15, 17, 19, 20, 21, 22, 23, 24, 25)

// Profiles are the built-in goal configurations.
var Profiles = map[string]Profile{
	"marriage": {
		Goal:       "marriage",
		Tithis:     set(1, 2, 4, 6, 9, 10, 12),
		Nakshatras: set(3, 4, 9, 11, 12, 14, 16, 18, 20, 25, 26),
		Yogas:      auspiciousYogas,
		Lagnas:     set(1, 2, 4, 5, 7, 10),
		Weights:    Weights{Tithi: 2, Nakshatra: 3, Yoga: 2, Lagna: 3},
		Threshold:  6,
	},
	"travel": {
		Goal:       "travel",
		Tithis:     set(1, 2, 4, 6, 9, 10, 11),
		Nakshatras: set(0, 4, 6, 7, 12, 16, 21, 22, 26),
		Yogas:      auspiciousYogas,
		Lagnas:     set(0, 3, 6, 9),
		Weights:    Weights{Tithi: 2, Nakshatra: 3, Yoga: 1, Lagna: 2},
		Threshold:  5,
	},
	"business": {
		Goal:       "business",
		Tithis:     set(0, 1, 2, 4, 6, 9, 10),
		Nakshatras: set(0, 3, 7, 12, 13, 14, 16, 20, 25, 26),
		Yogas:      auspiciousYogas,
		Lagnas:     set(1, 3, 4, 7, 10),
		Weights:    Weights{Tithi: 2, Nakshatra: 2, Yoga: 2, Lagna: 2},
		Threshold:  5,
	},
}

// ErrUnknownGoal reports a goal with no built-in profile.
var ErrUnknownGoal = errors.New("unknown muhurta goal")

// ProfileFor returns the goal's profile. An empty goal defaults to marriage;
// any other unrecognized goal is an error.
func ProfileFor(goal string) (Profile, error) {
	if goal == "" {
		return Profiles["marriage"], nil
	}
	if p, ok := Profiles[goal]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownGoal, goal)
}

// Scanner scores candidate windows across a day. Slots are independent chart
// builds, so they run concurrently.
type Scanner struct {
	provider ephemeris.Provider
	ayanamsa domain.Ayanamsa
	workers  int
}

// NewScanner creates a day scanner.
func NewScanner(p ephemeris.Provider, ay domain.Ayanamsa) *Scanner {
	return &Scanner{provider: p, ayanamsa: ay, workers: 4}
}

// Scan evaluates every slot of the civil date against the goal profile and
// returns the windows at or above its threshold, ranked by descending score
// with ties broken by earlier time.
func (s *Scanner) Scan(ctx context.Context, date string, offsetHours, lat, lon float64, goal string) ([]domain.MuhurtaWindow, error) {
	profile, err := ProfileFor(goal)
	if err != nil {
		return nil, err
	}

	var hours []int
	for h := scanStartHour; h < scanEndHour; h += scanStepHours {
		hours = append(hours, h)
	}

	windows := make([]*domain.MuhurtaWindow, len(hours))
	errs := make([]error, len(hours))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				windows[i], errs[i] = s.slot(ctx, date, hours[i], offsetHours, lat, lon, profile)
			}
		}()
	}
	for i := range hours {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var out []domain.MuhurtaWindow
	for _, w := range windows {
		if w != nil && w.Score >= profile.Threshold {
			out = append(out, *w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Time.Before(out[j].Time)
	})
	return out, nil
}

// slot builds the snapshot for one candidate hour and scores it.
func (s *Scanner) slot(ctx context.Context, date string, hour int, offsetHours, lat, lon float64, profile Profile) (*domain.MuhurtaWindow, error) {
	m, err := moment.New(date, fmt.Sprintf("%02d:00", hour), offsetHours, lat, lon)
	if err != nil {
		return nil, err
	}

	sunTrop, err := s.provider.Longitude(ctx, m.JulianDayUT, domain.Sun)
	if err != nil {
		return nil, fmt.Errorf("%w: sun longitude: %v", domain.ErrEphemerisProvider, err)
	}
	moonTrop, err := s.provider.Longitude(ctx, m.JulianDayUT, domain.Moon)
	if err != nil {
		return nil, fmt.Errorf("%w: moon longitude: %v", domain.ErrEphemerisProvider, err)
	}
	_, ascTrop, err := s.provider.Houses(ctx, m.JulianDayUT, lat, lon, domain.HouseWholeSign)
	if err != nil {
		return nil, fmt.Errorf("%w: ascendant: %v", domain.ErrEphemerisProvider, err)
	}

	sunLon := domain.Normalize(sunTrop - s.ayanamsa.Degrees)
	moonLon := domain.Normalize(moonTrop - s.ayanamsa.Degrees)
	ascSign := domain.SignOf(domain.Normalize(ascTrop - s.ayanamsa.Degrees))

	diff := domain.Normalize(moonLon - sunLon)
	tithi := int(diff / 12.0)
	nak := domain.NakshatraOf(moonLon)
	yoga := int(domain.Normalize(sunLon+moonLon) / domain.NakshatraSpan)

	score, reasons := evaluate(profile, tithi, nak, yoga, ascSign)

	return &domain.MuhurtaWindow{
		Time:      m.Civil,
		Lagna:     domain.SignNames[ascSign],
		Tithi:     domain.TithiNames[tithi],
		Nakshatra: domain.NakshatraNames[nak],
		Yoga:      domain.YogaNames[yoga],
		Score:     score,
		Reasons:   reasons,
	}, nil
}

// evaluate applies the profile's weighted criteria to one snapshot.
func evaluate(p Profile, tithi, nak, yoga, lagna int) (float64, []string) {
	score := 0.0
	var reasons []string

	if p.Tithis[tithi] {
		score += p.Weights.Tithi
		reasons = append(reasons, fmt.Sprintf("Good tithi (%s)", domain.TithiNames[tithi]))
	}
	if p.Nakshatras[nak] {
		score += p.Weights.Nakshatra
		reasons = append(reasons, fmt.Sprintf("Favorable nakshatra (%s)", domain.NakshatraNames[nak]))
	}
	if p.Yogas[yoga] {
		score += p.Weights.Yoga
		reasons = append(reasons, fmt.Sprintf("Auspicious yoga (%s)", domain.YogaNames[yoga]))
	}
	if p.Lagnas[lagna] {
		score += p.Weights.Lagna
		reasons = append(reasons, fmt.Sprintf("Supportive lagna (%s)", domain.SignNames[lagna]))
	}
	return score, reasons
}
