package chart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris/stub"
	"jyotish-engine/internal/moment"
)

const testJD = 2448026.875

func newStubProvider() *stub.Provider {
	p := stub.New()
	p.SetLongitude(testJD, domain.Sun, 54.2)
	p.SetLongitude(testJD, domain.Moon, 310.7)
	p.SetLongitude(testJD, domain.Mars, 340.1)
	p.SetLongitude(testJD, domain.Mercury, 38.9)
	p.SetLongitude(testJD, domain.Jupiter, 120.4)
	p.SetLongitude(testJD, domain.Venus, 21.3)
	p.SetLongitude(testJD, domain.Saturn, 294.8)
	p.SetLongitude(testJD, domain.Rahu, 306.5)
	p.Asc = 180.0
	for i := range p.Cusps {
		p.Cusps[i] = domain.Normalize(180.0 + float64(i)*30.0)
	}
	return p
}

func TestResolvePositions_KetuOppositeRahu(t *testing.T) {
	p := newStubProvider()
	ay := domain.KrishnamurtiAyanamsa()

	positions, err := ResolvePositions(context.Background(), p, testJD, ay)
	require.NoError(t, err)

	rahu := positions[domain.Rahu].SiderealLongitude
	ketu := positions[domain.Ketu].SiderealLongitude
	assert.InDelta(t, domain.Normalize(rahu+180), ketu, 1e-9)
}

func TestResolvePositions_AppliesAyanamsa(t *testing.T) {
	p := newStubProvider()
	ay := domain.FixedAyanamsa(23.5)

	positions, err := ResolvePositions(context.Background(), p, testJD, ay)
	require.NoError(t, err)

	sun := positions[domain.Sun]
	assert.InDelta(t, 54.2, sun.TropicalLongitude, 1e-9)
	assert.InDelta(t, 54.2-23.5, sun.SiderealLongitude, 1e-9)
	assert.Equal(t, 1, sun.Sign) // 30.7 deg -> Taurus
}

func TestResolvePositions_Deterministic(t *testing.T) {
	p := newStubProvider()
	ay := domain.LahiriAyanamsa()
	ctx := context.Background()

	a, err := ResolvePositions(ctx, p, testJD, ay)
	require.NoError(t, err)
	b, err := ResolvePositions(ctx, p, testJD, ay)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestResolvePositions_WrapsProviderError(t *testing.T) {
	p := stub.New()
	p.Err = errors.New("ephemeris file missing")

	_, err := ResolvePositions(context.Background(), p, testJD, domain.LahiriAyanamsa())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEphemerisProvider))
}

func TestNakshatraIndex_WrapsAtZero(t *testing.T) {
	assert.Equal(t, 26, domain.NakshatraOf(359.999))
	assert.Equal(t, 0, domain.NakshatraOf(360.0))
	assert.Equal(t, 0, domain.NakshatraOf(0.0))
	assert.Equal(t, domain.NakshatraOf(45.0), domain.NakshatraOf(405.0))

	for _, lon := range []float64{0, 13.2, 13.34, 120.0, 359.9999} {
		n := domain.NakshatraOf(lon)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 27)
		p := domain.PadaOf(lon)
		assert.GreaterOrEqual(t, p, 1)
		assert.LessOrEqual(t, p, 4)
	}
}

func TestHouseOf_CuspBoundaryClosedOpen(t *testing.T) {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = domain.Normalize(180.0 + float64(i)*30.0)
	}

	// Exactly on the second cusp: belongs to house 2, not house 1.
	assert.Equal(t, 2, houseOf(210.0, cusps))
	assert.Equal(t, 1, houseOf(209.9999, cusps))
	assert.Equal(t, 1, houseOf(180.0, cusps))

	// Interval wrapping 360 -> 0: house 7 spans [0, 30).
	assert.Equal(t, 7, houseOf(0.0, cusps))
	assert.Equal(t, 7, houseOf(29.9, cusps))
	assert.Equal(t, 6, houseOf(359.9, cusps))
}

func TestBuild_AssignsHousesAndAscendant(t *testing.T) {
	p := newStubProvider()
	m, err := moment.New("1990-05-15", "14:30", 5.5, 13.0827, 80.2707)
	require.NoError(t, err)

	b := NewBuilder(p)
	c, err := b.Build(context.Background(), m, domain.FixedAyanamsa(0), domain.HouseEqual)
	require.NoError(t, err)

	assert.Equal(t, 6, c.Ascendant.Sign) // 180 deg -> Libra
	assert.Equal(t, 9, len(c.Positions))

	// Moon at 310.7 falls in [300, 330) -> house 5 of the equal chart.
	assert.Equal(t, 5, c.Positions[domain.Moon].House)

	for _, pos := range c.Positions {
		assert.GreaterOrEqual(t, pos.House, 1)
		assert.LessOrEqual(t, pos.House, 12)
	}
}

func TestDivisionalSign_IdentityForD1(t *testing.T) {
	for _, lon := range []float64{0, 10.5, 29.999, 30, 95.2, 187.6, 266.0, 359.9} {
		assert.Equal(t, domain.SignOf(lon), DivisionalSign(lon, 1), "lon %.3f", lon)
	}
}

func TestDivisionalSign_NavamsaParity(t *testing.T) {
	// Even sign counts forward: 5 deg Aries is the 2nd navamsa -> Taurus.
	assert.Equal(t, 1, DivisionalSign(5.0, 9))
	// Odd sign counts in reverse: 5 deg Taurus -> (9 + 9-1-1) mod 12 = Leo.
	assert.Equal(t, 4, DivisionalSign(35.0, 9))
	// Non-parity varga uses the forward rule in odd signs too.
	assert.Equal(t, (1*10+1)%12, DivisionalSign(35.0, 10))
}

func TestDivisional_FullChart(t *testing.T) {
	p := newStubProvider()
	m, err := moment.New("1990-05-15", "14:30", 5.5, 13.0827, 80.2707)
	require.NoError(t, err)

	c, err := NewBuilder(p).Build(context.Background(), m, domain.KrishnamurtiAyanamsa(), domain.HouseEqual)
	require.NoError(t, err)

	d1, err := Divisional(c, 1)
	require.NoError(t, err)
	for body, pos := range c.Positions {
		assert.Equal(t, pos.Sign, d1.Signs[body], "D1 must equal natal for %s", body)
	}

	d9, err := Divisional(c, 9)
	require.NoError(t, err)
	for body, pos := range c.Positions {
		want := DivisionalSign(pos.SiderealLongitude, 9)
		assert.Equal(t, want, d9.Signs[body])
	}

	_, err = Divisional(c, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArithmeticBoundary))
}
