package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-engine/internal/chart"
	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris/stub"
	"jyotish-engine/internal/moment"
)

func fixtureRequest(t *testing.T) (KundliRequest, *stub.Provider) {
	t.Helper()

	m, err := moment.New("1990-05-15", "14:30", 5.5, 13.0827, 80.2707)
	require.NoError(t, err)

	ay := domain.FixedAyanamsa(23.5)

	p := stub.New()
	longitudes := map[domain.Body]float64{
		domain.Sun:     54.2,
		domain.Moon:    310.7,
		domain.Mars:    340.1,
		domain.Mercury: 40.9,
		domain.Jupiter: 120.3,
		domain.Venus:   33.8,
		domain.Saturn:  299.5,
		domain.Rahu:    309.2,
	}
	for b, lon := range longitudes {
		p.SetLongitude(m.JulianDayUT, b, lon)
	}
	p.Asc = 180.0
	for i := range p.Cusps {
		p.Cusps[i] = domain.Normalize(180.0 + float64(i)*30.0)
	}

	return KundliRequest{
		Name:        "Arjun",
		Place:       "Chennai",
		Moment:      m,
		Ayanamsa:    ay,
		HouseSystem: domain.HouseEqual,
	}, p
}

func TestGenerator_Generate(t *testing.T) {
	req, p := fixtureRequest(t)

	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	gen := NewGenerator(chart.NewBuilder(p)).WithClock(func() time.Time { return fixed })

	r, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, fixed, r.GeneratedAt)
	assert.Equal(t, "Arjun", r.Name)
	assert.Equal(t, "1990-05-15", r.BirthDate)
	assert.Equal(t, "14:30", r.BirthTime)
	require.NotNil(t, r.Chart)
	assert.Len(t, r.Chart.Positions, 9)

	// D9 is included by default.
	require.Len(t, r.Divisionals, 1)
	assert.Equal(t, 9, r.Divisionals[0].Division)

	// Mahadashas carry antardashas at the default depth.
	require.NotEmpty(t, r.Dashas)
	assert.NotEmpty(t, r.Dashas[0].Children)
	assert.Nil(t, r.Dashas[0].Children[0].Children)

	// The whole catalog is reported, active or not.
	assert.NotEmpty(t, r.Yogas)
}

func TestGenerator_GenerateCustomDivisions(t *testing.T) {
	req, p := fixtureRequest(t)
	req.Divisions = []int{1, 9, 10}
	req.DashaDepth = 1

	r, err := NewGenerator(chart.NewBuilder(p)).Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, r.Divisionals, 3)
	assert.Equal(t, 1, r.Divisionals[0].Division)
	assert.Equal(t, 10, r.Divisionals[2].Division)

	for _, d := range r.Dashas {
		assert.Nil(t, d.Children)
	}
}

func TestGenerator_GenerateProviderError(t *testing.T) {
	req, p := fixtureRequest(t)
	p.Err = assert.AnError

	_, err := NewGenerator(chart.NewBuilder(p)).Generate(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEphemerisProvider)
}

func TestRenderMarkdown(t *testing.T) {
	req, p := fixtureRequest(t)

	r, err := NewGenerator(chart.NewBuilder(p)).Generate(context.Background(), req)
	require.NoError(t, err)

	md := RenderMarkdown(r)

	assert.Contains(t, md, "# Kundli: Arjun")
	assert.Contains(t, md, "Born: 1990-05-15 14:30 | Chennai")
	// 180 tropical minus the 23.5 ayanamsa is 156.5, late Virgo.
	assert.Contains(t, md, "Ascendant: Virgo")
	assert.Contains(t, md, "### D9")
	assert.Contains(t, md, "## Vimshottari Dasha")

	// Every graha appears in the chart table.
	for _, b := range domain.Bodies {
		assert.Contains(t, md, "| "+b.String()+" |")
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	md := RenderMarkdown(&KundliReport{Name: "Nobody"})

	assert.Contains(t, md, "No chart data available.")
	assert.Contains(t, md, "No divisional charts available.")
	assert.Contains(t, md, "No dasha periods available.")
	assert.Contains(t, md, "No active yogas found.")
}

func TestRenderPanchangaCSV(t *testing.T) {
	days := []*domain.PanchangaDay{
		{
			Date:      time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			Weekday:   time.Monday,
			Tithi:     "Shukla Saptami",
			Nakshatra: "Rohini",
			Yoga:      "Priti",
			Karana:    "Gara",
			Sunrise:   time.Date(2025, 3, 3, 6, 15, 0, 0, time.UTC),
			Sunset:    time.Date(2025, 3, 3, 18, 15, 0, 0, time.UTC),
			Festivals: []string{"Festival A", "Festival B"},
		},
	}

	csv := RenderPanchangaCSV(days)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,weekday,tithi,nakshatra,yoga,karana,sunrise,sunset,festivals", lines[0])
	assert.Equal(t, "2025-03-03,Monday,Shukla Saptami,Rohini,Priti,Gara,06:15,18:15,Festival A;Festival B", lines[1])
}

func TestRenderMuhurtaCSV(t *testing.T) {
	windows := []domain.MuhurtaWindow{
		{
			Time:      time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC),
			Lagna:     "Taurus",
			Tithi:     "Shukla Saptami",
			Nakshatra: "Rohini",
			Yoga:      "Priti",
			Score:     10,
		},
	}

	csv := RenderMuhurtaCSV(windows)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "time,lagna,tithi,nakshatra,yoga,score", lines[0])
	assert.Contains(t, lines[1], "Taurus,Shukla Saptami,Rohini,Priti,10.00")
}
