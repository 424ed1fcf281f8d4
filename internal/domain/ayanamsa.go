package domain

import "fmt"

// AyanamsaMode selects the sidereal correction family.
type AyanamsaMode string

// Supported ayanamsa modes.
const (
	AyanamsaLahiri       AyanamsaMode = "lahiri"
	AyanamsaKrishnamurti AyanamsaMode = "krishnamurti"
	AyanamsaFixed        AyanamsaMode = "fixed"
)

// Default correction values in degrees. The KP constant differs between
// published sources (23.85, 23.8668, 23.999); the value used is always an
// explicit configuration choice, these are only the named defaults.
const (
	DefaultLahiriDegrees       = 24.1042
	DefaultKrishnamurtiDegrees = 23.8668
)

// Ayanamsa is a fully resolved sidereal correction. It is passed explicitly
// to every computation that needs one; there is no process-wide mode.
type Ayanamsa struct {
	Mode    AyanamsaMode
	Degrees float64
}

// LahiriAyanamsa returns the Lahiri correction at its default value.
func LahiriAyanamsa() Ayanamsa {
	return Ayanamsa{Mode: AyanamsaLahiri, Degrees: DefaultLahiriDegrees}
}

// KrishnamurtiAyanamsa returns the KP correction at its default value.
func KrishnamurtiAyanamsa() Ayanamsa {
	return Ayanamsa{Mode: AyanamsaKrishnamurti, Degrees: DefaultKrishnamurtiDegrees}
}

// FixedAyanamsa returns a user-supplied correction.
func FixedAyanamsa(degrees float64) Ayanamsa {
	return Ayanamsa{Mode: AyanamsaFixed, Degrees: degrees}
}

// ParseAyanamsa resolves a mode name to an Ayanamsa with its default degrees.
// Returns ErrUnsupportedAyanamsa for unknown names.
func ParseAyanamsa(mode string) (Ayanamsa, error) {
	switch AyanamsaMode(mode) {
	case AyanamsaLahiri, "":
		return LahiriAyanamsa(), nil
	case AyanamsaKrishnamurti:
		return KrishnamurtiAyanamsa(), nil
	default:
		return Ayanamsa{}, fmt.Errorf("%w: %q", ErrUnsupportedAyanamsa, mode)
	}
}
