// Package chart turns tropical ephemeris output into sidereal positions and
// fully built charts.
package chart

import (
	"context"
	"fmt"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris"
)

// ResolvePositions queries the provider for every body and applies the given
// ayanamsa. Ketu is always derived as Rahu+180 and never queried. Pure given
// (jd, ayanamsa) and a deterministic provider.
func ResolvePositions(ctx context.Context, p ephemeris.Provider, jd float64, ay domain.Ayanamsa) (map[domain.Body]domain.Position, error) {
	positions := make(map[domain.Body]domain.Position, len(domain.Bodies))

	for _, body := range domain.Bodies {
		if body == domain.Ketu {
			continue
		}
		trop, err := p.Longitude(ctx, jd, body)
		if err != nil {
			return nil, fmt.Errorf("%w: longitude of %s: %v", domain.ErrEphemerisProvider, body, err)
		}
		pos, err := makePosition(body, trop, ay)
		if err != nil {
			return nil, err
		}
		positions[body] = pos
	}

	rahu := positions[domain.Rahu]
	ketu, err := makePosition(domain.Ketu, domain.Normalize(rahu.TropicalLongitude+180), ay)
	if err != nil {
		return nil, err
	}
	positions[domain.Ketu] = ketu

	return positions, nil
}

// makePosition derives the sidereal attributes for one body.
func makePosition(body domain.Body, tropical float64, ay domain.Ayanamsa) (domain.Position, error) {
	sidereal := domain.Normalize(tropical - ay.Degrees)

	nak := domain.NakshatraOf(sidereal)
	if nak < 0 || nak > 26 {
		return domain.Position{}, fmt.Errorf("%w: nakshatra index %d for longitude %.6f", domain.ErrArithmeticBoundary, nak, sidereal)
	}

	return domain.Position{
		Body:              body,
		TropicalLongitude: domain.Normalize(tropical),
		SiderealLongitude: sidereal,
		Sign:              domain.SignOf(sidereal),
		NakshatraIndex:    nak,
		Pada:              domain.PadaOf(sidereal),
		DegreesWithinSign: sidereal - float64(domain.SignOf(sidereal))*30.0,
	}, nil
}
