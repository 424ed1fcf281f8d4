package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-engine/internal/domain"
)

var testBirth = time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)
var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

// chartWith builds a minimal chart: Moon at moonLon, Mars in marsHouse.
func chartWith(moonLon float64, marsHouse int, birth time.Time) *domain.Chart {
	positions := make(map[domain.Body]domain.Position)
	for _, body := range domain.Bodies {
		positions[body] = domain.Position{Body: body, Sign: 2, House: 3}
	}
	positions[domain.Moon] = domain.Position{
		Body:              domain.Moon,
		SiderealLongitude: moonLon,
		Sign:              domain.SignOf(moonLon),
		NakshatraIndex:    domain.NakshatraOf(moonLon),
		Pada:              domain.PadaOf(moonLon),
	}
	positions[domain.Mars] = domain.Position{Body: domain.Mars, Sign: 0, House: marsHouse}
	return &domain.Chart{
		Moment:    domain.Moment{Civil: birth},
		Positions: positions,
	}
}

func category(t *testing.T, r *domain.CompatibilityResult, name string) domain.CategoryScore {
	t.Helper()
	for _, c := range r.Categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no category %q", name)
	return domain.CategoryScore{}
}

func TestScore_IdenticalMoons(t *testing.T) {
	a := chartWith(45.0, 3, testBirth) // Rohini
	b := chartWith(45.0, 3, testBirth)

	r, err := Score(a, b, testNow)
	require.NoError(t, err)

	assert.Equal(t, MaxScore, r.MaxScore)
	require.Len(t, r.Categories, 8)

	assert.Equal(t, 1.0, category(t, r, "Varna").Score)
	assert.Equal(t, 2.0, category(t, r, "Vashya").Score)
	assert.Equal(t, 3.0, category(t, r, "Tara").Score)
	assert.Equal(t, 4.0, category(t, r, "Yoni").Score)
	assert.Equal(t, 5.0, category(t, r, "Graha Maitri").Score)
	assert.Equal(t, 6.0, category(t, r, "Gana").Score)
	assert.Equal(t, 7.0, category(t, r, "Bhakoot").Score)
	// Same nadi is the one failure of an identical pairing.
	assert.Equal(t, 0.0, category(t, r, "Nadi").Score)
	assert.Equal(t, 28.0, r.AshtakootScore)

	assert.False(t, r.ManglikMismatch)
	assert.Equal(t, "Both in the same mahadasha: aligned themes", r.DashaAlignment)
}

func TestScore_CategoryMaximaSumTo36(t *testing.T) {
	a := chartWith(45.0, 3, testBirth)
	b := chartWith(100.0, 3, testBirth)
	r, err := Score(a, b, testNow)
	require.NoError(t, err)

	total := 0.0
	for _, c := range r.Categories {
		total += c.OutOf
		assert.LessOrEqual(t, c.Score, c.OutOf)
		assert.GreaterOrEqual(t, c.Score, 0.0)
	}
	assert.Equal(t, MaxScore, total)
	assert.LessOrEqual(t, r.AshtakootScore, MaxScore)
}

func TestYoniKoota_EnemyPairSymmetric(t *testing.T) {
	// Ashlesha carries the Cat yoni, Magha the Rat.
	cat := chartWith(8*domain.NakshatraSpan+1, 3, testBirth)
	rat := chartWith(9*domain.NakshatraSpan+1, 3, testBirth)

	r1, err := Score(cat, rat, testNow)
	require.NoError(t, err)
	r2, err := Score(rat, cat, testNow)
	require.NoError(t, err)

	assert.Equal(t, 0.0, category(t, r1, "Yoni").Score)
	assert.Equal(t, 0.0, category(t, r2, "Yoni").Score)
}

func TestTaraKoota_OneMaleficDirection(t *testing.T) {
	// Krittika counted from Ashwini is the third tara (Vipat); the reverse
	// count is benefic, so only half the points survive.
	a := chartWith(1.0, 3, testBirth)                      // Ashwini
	b := chartWith(2*domain.NakshatraSpan+1, 3, testBirth) // Krittika

	r, err := Score(a, b, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1.5, category(t, r, "Tara").Score)
}

func TestGanaKoota_DevaRakshasaBothOrders(t *testing.T) {
	devaChart := chartWith(1.0, 3, testBirth)                          // Ashwini, Deva
	rakshasaChart := chartWith(2*domain.NakshatraSpan+1, 3, testBirth) // Krittika, Rakshasa

	r1, err := Score(devaChart, rakshasaChart, testNow)
	require.NoError(t, err)
	r2, err := Score(rakshasaChart, devaChart, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1.0, category(t, r1, "Gana").Score)
	assert.Equal(t, 1.0, category(t, r2, "Gana").Score)
}

func TestBhakootKoota_AfflictedDistance(t *testing.T) {
	// Moons in adjacent signs form the 2/12 dosha.
	a := chartWith(15.0, 3, testBirth) // Aries
	b := chartWith(45.0, 3, testBirth) // Taurus

	r, err := Score(a, b, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0.0, category(t, r, "Bhakoot").Score)
}

func TestNadiKoota_DifferentNadisScore(t *testing.T) {
	a := chartWith(1.0, 3, testBirth)                    // Ashwini, Adi
	b := chartWith(domain.NakshatraSpan+1, 3, testBirth) // Bharani, Madhya

	r, err := Score(a, b, testNow)
	require.NoError(t, err)
	assert.Equal(t, 8.0, category(t, r, "Nadi").Score)
}

func TestManglikMismatch(t *testing.T) {
	manglik := chartWith(45.0, 7, testBirth)
	clear := chartWith(45.0, 5, testBirth)

	r, err := Score(manglik, clear, testNow)
	require.NoError(t, err)
	assert.True(t, r.ManglikMismatch)

	r, err = Score(manglik, chartWith(45.0, 12, testBirth), testNow)
	require.NoError(t, err)
	assert.False(t, r.ManglikMismatch)
}

func TestDashaAlignment_DifferentMoons(t *testing.T) {
	// Different nakshatra lords start different mahadasha cycles.
	a := chartWith(1.0, 3, testBirth)   // Ketu cycle
	b := chartWith(100.0, 3, testBirth) // Pushya: Saturn cycle

	r, err := Score(a, b, testNow)
	require.NoError(t, err)
	assert.Contains(t, r.DashaAlignment, "karmic balancing")
}

func TestSymmetricCategories(t *testing.T) {
	a := chartWith(45.0, 3, testBirth)
	b := chartWith(200.0, 3, testBirth)

	r1, err := Score(a, b, testNow)
	require.NoError(t, err)
	r2, err := Score(b, a, testNow)
	require.NoError(t, err)

	for _, name := range []string{"Varna", "Tara", "Yoni", "Graha Maitri", "Gana", "Bhakoot", "Nadi", "Vashya"} {
		assert.Equal(t, category(t, r1, name).Score, category(t, r2, name).Score, name)
	}
	assert.Equal(t, r1.AshtakootScore, r2.AshtakootScore)
}

func TestVarnaKoota_BothOrders(t *testing.T) {
	// Taurus Moon is Vaishya, Libra Moon is Shudra: adjacent ranks score 1
	// regardless of which chart comes first.
	vaishya := chartWith(45.0, 3, testBirth)  // Taurus
	shudra := chartWith(185.0, 3, testBirth)  // Libra
	brahmin := chartWith(100.0, 3, testBirth) // Cancer

	r1, err := Score(vaishya, shudra, testNow)
	require.NoError(t, err)
	r2, err := Score(shudra, vaishya, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1.0, category(t, r1, "Varna").Score)
	assert.Equal(t, 1.0, category(t, r2, "Varna").Score)
	assert.Equal(t, r1.AshtakootScore, r2.AshtakootScore)

	// Brahmin against Shudra spans three ranks and fails in both orders.
	r3, err := Score(brahmin, shudra, testNow)
	require.NoError(t, err)
	r4, err := Score(shudra, brahmin, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0.0, category(t, r3, "Varna").Score)
	assert.Equal(t, 0.0, category(t, r4, "Varna").Score)
}
