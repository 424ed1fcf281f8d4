package domain

// SignNames lists the twelve rashis in zodiacal order.
var SignNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// NakshatraNames lists the 27 lunar mansions in zodiacal order.
var NakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// NakshatraSpan is the arc of one nakshatra: 13°20'.
const NakshatraSpan = 360.0 / 27.0

// PadaSpan is the arc of one pada: 3°20'.
const PadaSpan = NakshatraSpan / 4.0

// SignLords maps each sign index to its ruling body.
var SignLords = [12]Body{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

// ExaltationSign maps each body to the sign of its exaltation.
var ExaltationSign = map[Body]int{
	Sun: 0, Moon: 1, Mars: 9, Mercury: 5, Jupiter: 3,
	Venus: 11, Saturn: 6, Rahu: 1, Ketu: 7,
}

// DebilitationSign maps each body to the sign of its debilitation,
// always opposite the exaltation sign.
var DebilitationSign = map[Body]int{
	Sun: 6, Moon: 7, Mars: 3, Mercury: 11, Jupiter: 9,
	Venus: 5, Saturn: 0, Rahu: 7, Ketu: 1,
}

// VedicMonths lists the twelve solar months keyed by the Sun's sign.
var VedicMonths = [12]string{
	"Chaitra", "Vaishakha", "Jyeshtha", "Ashadha",
	"Shravana", "Bhadrapada", "Ashwin", "Kartika",
	"Margashirsha", "Pausha", "Magha", "Phalguna",
}

// Normalize wraps a longitude into [0, 360).
func Normalize(lon float64) float64 {
	lon = lon - 360.0*float64(int(lon/360.0))
	if lon < 0 {
		lon += 360.0
	}
	return lon
}

// SignOf returns the sign index (0-11) for a longitude.
func SignOf(lon float64) int {
	return int(Normalize(lon) / 30.0)
}

// NakshatraOf returns the nakshatra index (0-26) for a longitude.
func NakshatraOf(lon float64) int {
	return int(Normalize(lon) / NakshatraSpan)
}

// PadaOf returns the pada (1-4) for a longitude.
func PadaOf(lon float64) int {
	within := Normalize(lon) - float64(NakshatraOf(lon))*NakshatraSpan
	return int(within/PadaSpan) + 1
}

// NakshatraFraction returns how far into its nakshatra a longitude sits, in [0, 1).
func NakshatraFraction(lon float64) float64 {
	n := Normalize(lon)
	return (n - float64(NakshatraOf(n))*NakshatraSpan) / NakshatraSpan
}
