// Package stub provides a fixture-backed ephemeris.Provider for tests.
package stub

import (
	"context"
	"errors"
	"fmt"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris"
)

// ErrNoFixture is returned when a query has no registered fixture.
var ErrNoFixture = errors.New("no fixture for query")

// LongitudeKey identifies one longitude fixture.
type LongitudeKey struct {
	JD   float64
	Body domain.Body
}

// RiseKey identifies one rise/set fixture.
type RiseKey struct {
	JD   float64
	Kind ephemeris.RiseKind
}

// Provider implements ephemeris.Provider from registered fixtures.
type Provider struct {
	Longitudes map[LongitudeKey]float64
	Cusps      [12]float64
	Asc        float64
	Rises      map[RiseKey]float64

	// Err, when set, is returned by every call. Used to test error wrapping.
	Err error
}

// New creates an empty stub provider.
func New() *Provider {
	return &Provider{
		Longitudes: make(map[LongitudeKey]float64),
		Rises:      make(map[RiseKey]float64),
	}
}

var _ ephemeris.Provider = (*Provider)(nil)

// SetLongitude registers a tropical longitude fixture.
func (p *Provider) SetLongitude(jd float64, body domain.Body, lon float64) {
	p.Longitudes[LongitudeKey{JD: jd, Body: body}] = lon
}

// Longitude returns the registered fixture for (jd, body).
func (p *Provider) Longitude(_ context.Context, jd float64, body domain.Body) (float64, error) {
	if p.Err != nil {
		return 0, p.Err
	}
	lon, ok := p.Longitudes[LongitudeKey{JD: jd, Body: body}]
	if !ok {
		return 0, fmt.Errorf("%w: longitude jd=%v body=%s", ErrNoFixture, jd, body)
	}
	return lon, nil
}

// Houses returns the fixed cusp/ascendant fixture.
func (p *Provider) Houses(_ context.Context, _, _, _ float64, _ string) ([12]float64, float64, error) {
	if p.Err != nil {
		return [12]float64{}, 0, p.Err
	}
	return p.Cusps, p.Asc, nil
}

// RiseTransit returns the registered fixture for (jd, kind).
func (p *Provider) RiseTransit(_ context.Context, jd float64, _ domain.Body, _, _ float64, kind ephemeris.RiseKind) (float64, error) {
	if p.Err != nil {
		return 0, p.Err
	}
	t, ok := p.Rises[RiseKey{JD: jd, Kind: kind}]
	if !ok {
		return 0, fmt.Errorf("%w: rise jd=%v kind=%d", ErrNoFixture, jd, kind)
	}
	return t, nil
}
