package yoga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-engine/internal/domain"
)

// placement fixes a body's sign and house for a synthetic chart.
type placement struct {
	sign  int
	house int
}

func testChart(placements map[domain.Body]placement) *domain.Chart {
	positions := make(map[domain.Body]domain.Position, len(domain.Bodies))
	for i, body := range domain.Bodies {
		// Park everything out of the way by default.
		positions[body] = domain.Position{Body: body, Sign: (i + 2) % 12, House: 3}
	}
	for body, p := range placements {
		positions[body] = domain.Position{Body: body, Sign: p.sign, House: p.house}
	}
	return &domain.Chart{Positions: positions}
}

func matchByName(t *testing.T, matches []domain.YogaMatch, name string) domain.YogaMatch {
	t.Helper()
	for _, m := range matches {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("no match named %q", name)
	return domain.YogaMatch{}
}

func TestEvaluate_CoversWholeCatalog(t *testing.T) {
	c := testChart(nil)
	matches := Evaluate(c)
	assert.Equal(t, len(Catalog()), len(matches))

	for _, m := range matches {
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.Summary)
		if !m.Active {
			assert.Zero(t, m.Score)
		}
	}
}

func TestGajakesari(t *testing.T) {
	c := testChart(map[domain.Body]placement{
		domain.Moon:    {sign: 3, house: 1},
		domain.Jupiter: {sign: 0, house: 10},
	})
	m := matchByName(t, Evaluate(c), "Gajakesari Yoga")
	assert.True(t, m.Active)
	assert.Equal(t, 8.0, m.Score)
	assert.NotEmpty(t, m.Remedy)

	c = testChart(map[domain.Body]placement{
		domain.Moon:    {sign: 3, house: 2},
		domain.Jupiter: {sign: 0, house: 10},
	})
	assert.False(t, matchByName(t, Evaluate(c), "Gajakesari Yoga").Active)
}

func TestBudhaditya(t *testing.T) {
	c := testChart(map[domain.Body]placement{
		domain.Sun:     {sign: 4, house: 5},
		domain.Mercury: {sign: 4, house: 5},
	})
	assert.True(t, matchByName(t, Evaluate(c), "Budhaditya Yoga").Active)

	c = testChart(map[domain.Body]placement{
		domain.Sun:     {sign: 4, house: 5},
		domain.Mercury: {sign: 5, house: 6},
	})
	assert.False(t, matchByName(t, Evaluate(c), "Budhaditya Yoga").Active)
}

func TestKemadruma_OnlyTruePlanetsCancel(t *testing.T) {
	// Moon in house 6; every true planet far away.
	c := testChart(map[domain.Body]placement{
		domain.Moon:    {sign: 2, house: 6},
		domain.Mars:    {sign: 9, house: 10},
		domain.Mercury: {sign: 9, house: 10},
		domain.Jupiter: {sign: 9, house: 10},
		domain.Venus:   {sign: 9, house: 10},
		domain.Saturn:  {sign: 9, house: 10},
		domain.Sun:     {sign: 3, house: 7}, // adjacent but does not cancel
		domain.Rahu:    {sign: 1, house: 5}, // adjacent but does not cancel
	})
	assert.True(t, matchByName(t, Evaluate(c), "Kemadruma Yoga").Active)

	// Venus in the second from the Moon cancels it.
	c = testChart(map[domain.Body]placement{
		domain.Moon:    {sign: 2, house: 6},
		domain.Mars:    {sign: 9, house: 10},
		domain.Mercury: {sign: 9, house: 10},
		domain.Jupiter: {sign: 9, house: 10},
		domain.Venus:   {sign: 3, house: 7},
		domain.Saturn:  {sign: 9, house: 10},
	})
	assert.False(t, matchByName(t, Evaluate(c), "Kemadruma Yoga").Active)
}

func TestKemadruma_WrapsAroundHouseTwelve(t *testing.T) {
	// Moon in house 12: neighbors are houses 1 and 11.
	c := testChart(map[domain.Body]placement{
		domain.Moon:    {sign: 2, house: 12},
		domain.Mars:    {sign: 9, house: 1},
		domain.Mercury: {sign: 9, house: 5},
		domain.Jupiter: {sign: 9, house: 5},
		domain.Venus:   {sign: 9, house: 5},
		domain.Saturn:  {sign: 9, house: 5},
	})
	assert.False(t, matchByName(t, Evaluate(c), "Kemadruma Yoga").Active)
}

func TestMangalDosha(t *testing.T) {
	for _, house := range []int{1, 4, 7, 8, 12} {
		c := testChart(map[domain.Body]placement{domain.Mars: {sign: 0, house: house}})
		assert.True(t, matchByName(t, Evaluate(c), "Mangal Dosha").Active, "house %d", house)
	}
	c := testChart(map[domain.Body]placement{domain.Mars: {sign: 0, house: 5}})
	assert.False(t, matchByName(t, Evaluate(c), "Mangal Dosha").Active)
}

func TestNeechaBhanga(t *testing.T) {
	// Jupiter debilitated in Capricorn, Mars exalted there: cancellation.
	c := testChart(map[domain.Body]placement{
		domain.Jupiter: {sign: 9, house: 2},
		domain.Mars:    {sign: 9, house: 2},
	})
	assert.True(t, matchByName(t, Evaluate(c), "Neecha Bhanga Raja Yoga").Active)

	// Debilitated Jupiter alone: no cancellation.
	c = testChart(map[domain.Body]placement{
		domain.Jupiter: {sign: 9, house: 2},
		domain.Mars:    {sign: 7, house: 4},
	})
	assert.False(t, matchByName(t, Evaluate(c), "Neecha Bhanga Raja Yoga").Active)
}

func TestMahapurusha(t *testing.T) {
	// Saturn in Libra (exaltation) in a kendra: Shasha Yoga.
	c := testChart(map[domain.Body]placement{domain.Saturn: {sign: 6, house: 7}})
	m := matchByName(t, Evaluate(c), "Shasha Yoga")
	assert.True(t, m.Active)
	assert.Equal(t, 9.0, m.Score)

	// Mars in own sign Scorpio in a kendra: Ruchaka Yoga.
	c = testChart(map[domain.Body]placement{domain.Mars: {sign: 7, house: 4}})
	assert.True(t, matchByName(t, Evaluate(c), "Ruchaka Yoga").Active)

	// Jupiter in a kendra but in a neutral sign: no Hamsa.
	c = testChart(map[domain.Body]placement{domain.Jupiter: {sign: 1, house: 1}})
	assert.False(t, matchByName(t, Evaluate(c), "Hamsa Yoga").Active)
}

func TestActive_FiltersInactive(t *testing.T) {
	c := testChart(map[domain.Body]placement{
		domain.Sun:     {sign: 4, house: 5},
		domain.Mercury: {sign: 4, house: 5},
	})
	for _, m := range Active(c) {
		assert.True(t, m.Active)
	}

	names := make([]string, 0)
	for _, m := range Active(c) {
		names = append(names, m.Name)
	}
	require.Contains(t, names, "Budhaditya Yoga")
}
