package chart

import (
	"fmt"

	"jyotish-engine/internal/domain"
)

// parityDivisions lists the divisions whose counting direction reverses in
// odd signs (the navamsa family). All others count forward uniformly.
var parityDivisions = map[int]bool{
	9:  true,
	24: true,
	60: true,
}

// DivisionalSign remaps a sidereal longitude into its sign for division
// factor d. D=1 always returns the natal sign unchanged.
func DivisionalSign(lon float64, d int) int {
	lon = domain.Normalize(lon)
	signIndex := int(lon / 30.0)
	offset := lon - float64(signIndex)*30.0
	sub := int(offset / (30.0 / float64(d)))
	if sub >= d { // guard the upper boundary against float error
		sub = d - 1
	}

	if parityDivisions[d] && signIndex%2 == 1 {
		return (signIndex*d + (d - 1 - sub)) % 12
	}
	return (signIndex*d + sub) % 12
}

// Divisional builds the divisional chart for factor d from built positions.
func Divisional(c *domain.Chart, d int) (*domain.DivisionalChart, error) {
	if d < 1 {
		return nil, fmt.Errorf("%w: division factor %d", domain.ErrArithmeticBoundary, d)
	}

	signs := make(map[domain.Body]int, len(c.Positions))
	for body, pos := range c.Positions {
		signs[body] = DivisionalSign(pos.SiderealLongitude, d)
	}
	return &domain.DivisionalChart{Division: d, Signs: signs}, nil
}
