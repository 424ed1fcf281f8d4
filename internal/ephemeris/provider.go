// Package ephemeris defines the provider boundary for raw astronomical data.
// Providers return TROPICAL quantities only; the sidereal correction is
// applied by the caller, never configured on the provider, so concurrent
// computations with different ayanamsa modes cannot interfere.
package ephemeris

import (
	"context"

	"jyotish-engine/internal/domain"
)

// RiseKind selects which solar event RiseTransit computes.
type RiseKind int

const (
	// Rise is the moment the body's upper limb crosses the horizon upward.
	Rise RiseKind = iota + 1
	// Set is the moment the body's upper limb crosses the horizon downward.
	Set
)

// Provider supplies tropical ecliptic data for a Julian Day (UT).
// Implementations must be deterministic for fixed inputs and safe for
// concurrent use.
type Provider interface {
	// Longitude returns the tropical ecliptic longitude of body in degrees
	// [0, 360). Ketu is never a valid argument: callers derive it from Rahu.
	Longitude(ctx context.Context, jd float64, body domain.Body) (float64, error)

	// Houses returns the 12 tropical house cusp longitudes (house 1 first)
	// and the tropical ascendant degree for the given house system code.
	// Returns domain.ErrUnsupportedHouseSystem for codes it cannot compute.
	Houses(ctx context.Context, jd, lat, lon float64, system string) (cusps [12]float64, asc float64, err error)

	// RiseTransit returns the Julian Day (UT) of the body's rise or set on
	// the civil date containing jd at the given location.
	RiseTransit(ctx context.Context, jd float64, body domain.Body, lat, lon float64, kind RiseKind) (float64, error)
}
