package chart

import (
	"context"
	"errors"
	"fmt"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris"
)

// Builder assembles complete sidereal charts from an ephemeris provider.
type Builder struct {
	provider ephemeris.Provider
}

// NewBuilder creates a chart builder.
func NewBuilder(p ephemeris.Provider) *Builder {
	return &Builder{provider: p}
}

// Build computes the ascendant, cusps and all body positions for a moment.
// The ayanamsa and house system are explicit per call; nothing is ambient.
func (b *Builder) Build(ctx context.Context, m domain.Moment, ay domain.Ayanamsa, houseSystem string) (*domain.Chart, error) {
	positions, err := ResolvePositions(ctx, b.provider, m.JulianDayUT, ay)
	if err != nil {
		return nil, err
	}

	tropCusps, tropAsc, err := b.provider.Houses(ctx, m.JulianDayUT, m.Latitude, m.Longitude, houseSystem)
	if err != nil {
		return nil, wrapHouses(err)
	}

	var cusps [12]float64
	for i, cusp := range tropCusps {
		cusps[i] = domain.Normalize(cusp - ay.Degrees)
	}
	ascDeg := domain.Normalize(tropAsc - ay.Degrees)

	// Providers return tropical cusps, so whole-sign boundaries must be
	// re-floored after the sidereal shift.
	if houseSystem == domain.HouseWholeSign {
		first := float64(domain.SignOf(ascDeg)) * 30.0
		for i := range cusps {
			cusps[i] = domain.Normalize(first + float64(i)*30.0)
		}
	}

	for body, pos := range positions {
		pos.House = houseOf(pos.SiderealLongitude, cusps)
		positions[body] = pos
	}

	return &domain.Chart{
		Moment:      m,
		Ayanamsa:    ay,
		HouseSystem: houseSystem,
		Ascendant: domain.Ascendant{
			Degree: ascDeg,
			Sign:   domain.SignOf(ascDeg),
		},
		Cusps:     cusps,
		Positions: positions,
	}, nil
}

// houseOf assigns a longitude to the house whose cyclic interval
// [cusp[i], cusp[i+1]) contains it. A longitude exactly on a cusp belongs to
// the house starting there.
func houseOf(lon float64, cusps [12]float64) int {
	for i := 0; i < 12; i++ {
		start := cusps[i]
		end := cusps[(i+1)%12]
		if start <= end {
			if lon >= start && lon < end {
				return i + 1
			}
		} else { // interval wraps 360 -> 0
			if lon >= start || lon < end {
				return i + 1
			}
		}
	}
	// Unreachable: the 12 intervals cover the full circle.
	return 1
}

func wrapHouses(err error) error {
	switch {
	case err == nil:
		return nil
	case isDomainErr(err):
		return err
	default:
		return fmt.Errorf("%w: houses: %v", domain.ErrEphemerisProvider, err)
	}
}

func isDomainErr(err error) bool {
	for _, known := range []error{
		domain.ErrUnsupportedHouseSystem,
		domain.ErrUnsupportedAyanamsa,
		domain.ErrEphemerisProvider,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
