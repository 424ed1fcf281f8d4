// Package analytic implements ephemeris.Provider with closed-form mean-element
// series: Meeus low-precision theory for the Sun and Moon, Keplerian elements
// with an equation-of-center expansion for the planets, and the mean lunar
// node for Rahu. Accuracy is on the order of arcminutes, which is sufficient
// for sign, nakshatra and house work; deployments needing Swiss Ephemeris
// precision use ephemeris.HTTPClient against a sidecar instead.
package analytic

import (
	"context"
	"fmt"
	"math"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris"
)

// J2000 is the reference epoch as a Julian Day.
const J2000 = 2451545.0

// Provider computes tropical positions analytically. Stateless and safe for
// concurrent use.
type Provider struct{}

// New creates an analytic provider.
func New() *Provider {
	return &Provider{}
}

var _ ephemeris.Provider = (*Provider)(nil)

// orbital elements at J2000 with per-Julian-century rates (Standish).
type elements struct {
	a       float64 // semi-major axis, AU
	e       float64 // eccentricity
	l0      float64 // mean longitude at epoch, degrees
	lDot    float64 // mean longitude rate, degrees/century
	peri    float64 // longitude of perihelion, degrees
	periDot float64 // perihelion rate, degrees/century
}

var planetElements = map[domain.Body]elements{
	domain.Mercury: {0.38709927, 0.20563593, 252.25032350, 149472.67411175, 77.45779628, 0.16047689},
	domain.Venus:   {0.72333566, 0.00677672, 181.97909950, 58517.81538729, 131.60246718, 0.00268329},
	domain.Mars:    {1.52371034, 0.09339410, -4.55343205, 19140.30268499, -23.94362959, 0.44441088},
	domain.Jupiter: {5.20288700, 0.04838624, 34.39644051, 3034.74612775, 14.72847983, 0.21252668},
	domain.Saturn:  {9.53667594, 0.05386179, 49.95424423, 1222.49362201, 92.59887831, -0.41897216},
}

var earthElements = elements{1.00000261, 0.01671123, 100.46457166, 35999.37244981, 102.93768193, 0.32327364}

// Longitude returns the tropical ecliptic longitude of body in degrees.
func (p *Provider) Longitude(_ context.Context, jd float64, body domain.Body) (float64, error) {
	t := (jd - J2000) / 36525.0

	switch body {
	case domain.Sun:
		return sunLongitude(t), nil
	case domain.Moon:
		return moonLongitude(t), nil
	case domain.Rahu:
		// Mean ascending node of the lunar orbit, retrograde.
		return domain.Normalize(125.0445479 - 1934.1362891*t + 0.0020754*t*t), nil
	case domain.Ketu:
		return 0, fmt.Errorf("%w: ketu is derived, not queried", domain.ErrEphemerisProvider)
	case domain.Mercury, domain.Venus, domain.Mars, domain.Jupiter, domain.Saturn:
		return geocentricLongitude(planetElements[body], t), nil
	default:
		return 0, fmt.Errorf("%w: unknown body %d", domain.ErrEphemerisProvider, int(body))
	}
}

// Houses computes the ascendant from local sidereal time and derives cusps.
// Supported systems: equal ("E") and whole-sign ("W"). Placidus requires the
// Swiss Ephemeris sidecar.
func (p *Provider) Houses(_ context.Context, jd, lat, lon float64, system string) ([12]float64, float64, error) {
	var cusps [12]float64

	switch system {
	case domain.HouseEqual, domain.HouseWholeSign:
	default:
		return cusps, 0, fmt.Errorf("%w: %q (analytic provider supports E and W)", domain.ErrUnsupportedHouseSystem, system)
	}

	t := (jd - J2000) / 36525.0
	ramc := domain.Normalize(gmst(jd) + lon)
	eps := obliquity(t)

	y := math.Cos(rad(ramc))
	x := -(math.Sin(rad(ramc))*math.Cos(rad(eps)) + math.Tan(rad(lat))*math.Sin(rad(eps)))
	asc := domain.Normalize(deg(math.Atan2(y, x)))

	first := asc
	if system == domain.HouseWholeSign {
		first = float64(int(asc/30.0)) * 30.0
	}
	for i := 0; i < 12; i++ {
		cusps[i] = domain.Normalize(first + float64(i)*30.0)
	}
	return cusps, asc, nil
}

// RiseTransit computes solar rise/set with the standard hour-angle equation
// at horizon altitude -0.833 degrees (refraction plus semidiameter). Only the
// Sun is supported; panchanga windows need nothing else.
func (p *Provider) RiseTransit(_ context.Context, jd float64, body domain.Body, lat, lon float64, kind ephemeris.RiseKind) (float64, error) {
	if body != domain.Sun {
		return 0, fmt.Errorf("%w: rise/set supported for Sun only", domain.ErrEphemerisProvider)
	}
	if kind != ephemeris.Rise && kind != ephemeris.Set {
		return 0, fmt.Errorf("%w: unknown rise kind %d", domain.ErrEphemerisProvider, int(kind))
	}

	jd0 := math.Floor(jd-0.5) + 0.5 // UT midnight of the civil date

	// Refine the transit with two fixed passes of the hour-angle equation.
	t := jd0 + 0.5 - lon/360.0
	for i := 0; i < 2; i++ {
		alpha, _ := sunEquatorial(t)
		h := domain.Normalize(gmst(t) + lon - alpha)
		if h > 180 {
			h -= 360
		}
		t -= h / 360.98564736629
	}
	transit := t

	sign := -1.0
	if kind == ephemeris.Set {
		sign = 1.0
	}

	t = transit
	for i := 0; i < 2; i++ {
		_, delta := sunEquatorial(t)
		cosH0 := (math.Sin(rad(-0.833)) - math.Sin(rad(lat))*math.Sin(rad(delta))) /
			(math.Cos(rad(lat)) * math.Cos(rad(delta)))
		if cosH0 < -1 || cosH0 > 1 {
			return 0, fmt.Errorf("%w: sun does not rise or set at lat %.4f on this date", domain.ErrEphemerisProvider, lat)
		}
		h0 := deg(math.Acos(cosH0))
		t = transit + sign*h0/360.0
	}
	return t, nil
}

// sunLongitude returns the Sun's tropical longitude (Meeus ch. 25).
func sunLongitude(t float64) float64 {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := rad(357.52911 + 35999.05029*t - 0.0001537*t*t)
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
	return domain.Normalize(l0 + c)
}

// moonLongitude returns the Moon's tropical longitude from the principal
// terms of the lunar theory (Meeus ch. 47, truncated).
func moonLongitude(t float64) float64 {
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t
	d := rad(297.8501921 + 445267.1114034*t - 0.0018819*t*t)
	m := rad(357.5291092 + 35999.0502909*t - 0.0001536*t*t)
	mp := rad(134.9633964 + 477198.8675055*t + 0.0087414*t*t)
	f := rad(93.2720950 + 483202.0175233*t - 0.0036539*t*t)

	dl := 6.288774*math.Sin(mp) +
		1.274027*math.Sin(2*d-mp) +
		0.658314*math.Sin(2*d) +
		0.213618*math.Sin(2*mp) -
		0.185116*math.Sin(m) -
		0.114332*math.Sin(2*f) +
		0.058793*math.Sin(2*d-2*mp) +
		0.057066*math.Sin(2*d-m-mp) +
		0.053322*math.Sin(2*d+mp) +
		0.045758*math.Sin(2*d-m)

	return domain.Normalize(lp + dl)
}

// heliocentric returns a body's heliocentric ecliptic longitude (degrees) and
// radius (AU) from its mean elements via the equation of center.
func heliocentric(el elements, t float64) (float64, float64) {
	l := el.l0 + el.lDot*t
	peri := el.peri + el.periDot*t
	m := rad(domain.Normalize(l - peri))
	e := el.e

	c := (2*e-e*e*e/4)*math.Sin(m) +
		(5.0/4.0)*e*e*math.Sin(2*m) +
		(13.0/12.0)*e*e*e*math.Sin(3*m)
	nu := m + c

	r := el.a * (1 - e*e) / (1 + e*math.Cos(nu))
	lonHelio := domain.Normalize(peri + deg(nu))
	return lonHelio, r
}

// geocentricLongitude converts a planet's heliocentric position to geocentric
// ecliptic longitude, ignoring orbital inclination (all under 3.5 degrees).
func geocentricLongitude(el elements, t float64) float64 {
	lp, rp := heliocentric(el, t)
	le, re := heliocentric(earthElements, t)

	x := rp*math.Cos(rad(lp)) - re*math.Cos(rad(le))
	y := rp*math.Sin(rad(lp)) - re*math.Sin(rad(le))
	return domain.Normalize(deg(math.Atan2(y, x)))
}

// sunEquatorial returns the Sun's right ascension and declination in degrees.
func sunEquatorial(jd float64) (float64, float64) {
	t := (jd - J2000) / 36525.0
	lambda := rad(sunLongitude(t))
	eps := rad(obliquity(t))

	alpha := domain.Normalize(deg(math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))))
	delta := deg(math.Asin(math.Sin(eps) * math.Sin(lambda)))
	return alpha, delta
}

// gmst returns Greenwich mean sidereal time as an angle in degrees.
func gmst(jd float64) float64 {
	t := (jd - J2000) / 36525.0
	theta := 280.46061837 + 360.98564736629*(jd-J2000) +
		0.000387933*t*t - t*t*t/38710000.0
	return domain.Normalize(theta)
}

// obliquity returns the mean obliquity of the ecliptic in degrees.
func obliquity(t float64) float64 {
	return 23.43929111 - 0.01300417*t - 0.00000016*t*t
}

func rad(d float64) float64 { return d * math.Pi / 180.0 }

func deg(r float64) float64 { return r * 180.0 / math.Pi }
