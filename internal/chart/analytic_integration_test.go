package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-engine/internal/dasha"
	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris/analytic"
	"jyotish-engine/internal/moment"
)

// A full natal build over the analytic provider. Exact longitudes depend on
// the truncated series, so the assertions check structural invariants that
// hold for any correct position set.
func TestBuild_AnalyticChennai(t *testing.T) {
	m, err := moment.New("1990-05-15", "14:30", 5.5, 13.0827, 80.2707)
	require.NoError(t, err)

	b := NewBuilder(analytic.New())
	c, err := b.Build(t.Context(), m, domain.LahiriAyanamsa(), domain.HouseWholeSign)
	require.NoError(t, err)

	require.Len(t, c.Positions, 9)
	for _, body := range domain.Bodies {
		p, ok := c.Positions[body]
		require.True(t, ok, "missing %s", body)
		assert.GreaterOrEqual(t, p.SiderealLongitude, 0.0)
		assert.Less(t, p.SiderealLongitude, 360.0)
		assert.Equal(t, int(p.SiderealLongitude/30.0), p.Sign)
		assert.Equal(t, int(p.SiderealLongitude/(360.0/27.0)), p.NakshatraIndex)
		assert.GreaterOrEqual(t, p.Pada, 1)
		assert.LessOrEqual(t, p.Pada, 4)

		// Whole-sign houses count from the ascendant sign.
		want := (p.Sign-c.Ascendant.Sign+12)%12 + 1
		assert.Equal(t, want, p.House, "%s house", body)
	}

	// Ketu sits exactly opposite Rahu.
	rahu := c.Positions[domain.Rahu]
	ketu := c.Positions[domain.Ketu]
	assert.InDelta(t, 180.0, domain.Normalize(ketu.SiderealLongitude-rahu.SiderealLongitude), 1e-9)

	// Whole-sign cusps start at sign boundaries, 30 degrees apart.
	assert.Equal(t, 0.0, domain.Normalize(c.Cusps[0])-float64(c.Ascendant.Sign)*30.0)
	for i := 1; i < 12; i++ {
		assert.InDelta(t, 30.0, domain.Normalize(c.Cusps[i]-c.Cusps[i-1]), 1e-9)
	}

	// The birth mahadasha lord is the moon nakshatra's ruler.
	moon := c.MoonPosition()
	tree, err := dasha.Tree(m.Civil.UTC(), moon.SiderealLongitude, 2)
	require.NoError(t, err)
	require.NotEmpty(t, tree)
	assert.Equal(t, domain.DashaLords[moon.NakshatraIndex%9], tree[0].Lord)

	// The birth instant falls inside the first mahadasha.
	assert.False(t, m.Civil.UTC().Before(tree[0].Start))
	assert.True(t, m.Civil.UTC().Before(tree[0].End))

	// D9 reshuffles signs but never invents bodies.
	d9, err := Divisional(c, 9)
	require.NoError(t, err)
	require.Len(t, d9.Signs, 9)
	for body, sign := range d9.Signs {
		assert.GreaterOrEqual(t, sign, 0, "%s", body)
		assert.Less(t, sign, 12, "%s", body)
	}
}

func TestBuild_AnalyticRejectsPlacidus(t *testing.T) {
	m, err := moment.New("1990-05-15", "14:30", 5.5, 13.0827, 80.2707)
	require.NoError(t, err)

	b := NewBuilder(analytic.New())
	_, err = b.Build(t.Context(), m, domain.LahiriAyanamsa(), domain.HousePlacidus)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedHouseSystem)
}
