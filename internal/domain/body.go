package domain

// Body identifies one of the nine grahas used in Vedic charts.
type Body int

// Bodies in Swiss Ephemeris query order. Ketu carries no ephemeris id of its
// own: its longitude is always derived from Rahu.
const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// Bodies lists all nine grahas in canonical order.
var Bodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

var bodyNames = [...]string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu",
}

// String returns the English name of the body.
func (b Body) String() string {
	if b < Sun || b > Ketu {
		return "Unknown"
	}
	return bodyNames[b]
}

// Position is a body's resolved placement at one moment.
type Position struct {
	Body              Body
	TropicalLongitude float64 // ecliptic degrees, 0-360
	SiderealLongitude float64 // tropical minus ayanamsa, mod 360
	Sign              int     // 0-11, floor(sidereal/30)
	House             int     // 1-12, assigned by cusp interval
	NakshatraIndex    int     // 0-26
	Pada              int     // 1-4
	DegreesWithinSign float64 // sidereal mod 30
}

// Ascendant is the rising degree and sign for a moment+location.
type Ascendant struct {
	Degree float64 // sidereal degrees, 0-360
	Sign   int     // 0-11
}
