package domain

import "errors"

// Engine errors. All computations return these as typed failures; nothing is
// silently defaulted, since a wrong ayanamsa or malformed time produces a
// plausible-looking but wrong chart.
var (
	// ErrInvalidTimeFormat is returned when a civil date/time cannot be parsed.
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrUnresolvableLocation is returned when a place yields no coordinates.
	ErrUnresolvableLocation = errors.New("unresolvable location")

	// ErrUnsupportedHouseSystem is returned for an unknown house-system code.
	ErrUnsupportedHouseSystem = errors.New("unsupported house system")

	// ErrUnsupportedAyanamsa is returned for an unknown ayanamsa mode.
	ErrUnsupportedAyanamsa = errors.New("unsupported ayanamsa")

	// ErrEphemerisProvider wraps failures from the ephemeris provider.
	ErrEphemerisProvider = errors.New("ephemeris provider failure")

	// ErrArithmeticBoundary is returned when a derived index violates its
	// documented range. Unreachable given correct modular arithmetic.
	ErrArithmeticBoundary = errors.New("arithmetic boundary violation")
)
