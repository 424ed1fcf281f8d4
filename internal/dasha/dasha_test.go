package dasha

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-engine/internal/domain"
)

func TestPartition_FullCycleClosesOnTotal(t *testing.T) {
	spans, err := Partition(domain.VimshottariYears, domain.Ketu, 0)
	require.NoError(t, err)
	require.Len(t, spans, 9)

	assert.Equal(t, 0.0, spans[0].Start)
	assert.Equal(t, domain.VimshottariYears, spans[8].End)

	for i, s := range spans {
		assert.Equal(t, domain.DashaLords[i], s.Lord)
		assert.InDelta(t, domain.DashaYears[i], s.End-s.Start, 1e-9)
		if i > 0 {
			assert.Equal(t, spans[i-1].End, s.Start)
		}
	}
}

func TestPartition_PartialStartWrapsToStartLord(t *testing.T) {
	// 40% of the Moon mahadasha elapsed: 6 years remain up front and the
	// missing 4 years reappear as a trailing Moon span.
	spans, err := Partition(domain.VimshottariYears, domain.Moon, 0.4)
	require.NoError(t, err)
	require.Len(t, spans, 10)

	assert.Equal(t, domain.Moon, spans[0].Lord)
	assert.InDelta(t, 6.0, spans[0].End-spans[0].Start, 1e-9)

	last := spans[len(spans)-1]
	assert.Equal(t, domain.Moon, last.Lord)
	assert.InDelta(t, 4.0, last.End-last.Start, 1e-6)
	assert.Equal(t, domain.VimshottariYears, last.End)
}

func TestPartition_ZodiacClosesOn360(t *testing.T) {
	spans, err := Partition(360.0, domain.Ketu, 0)
	require.NoError(t, err)
	require.Len(t, spans, 9)

	assert.Equal(t, 360.0, spans[len(spans)-1].End)
	// Ketu's 7 of 120 years scale to 21 degrees.
	assert.InDelta(t, 21.0, spans[0].End, 1e-9)
	assert.Equal(t, domain.Venus, spans[1].Lord)
	assert.InDelta(t, 60.0, spans[1].End-spans[1].Start, 1e-9)
}

func TestPartition_RejectsBadInput(t *testing.T) {
	_, err := Partition(0, domain.Ketu, 0)
	assert.True(t, errors.Is(err, domain.ErrArithmeticBoundary))

	_, err = Partition(120, domain.Ketu, 1.0)
	assert.True(t, errors.Is(err, domain.ErrArithmeticBoundary))

	_, err = Partition(120, domain.Ketu, -0.1)
	assert.True(t, errors.Is(err, domain.ErrArithmeticBoundary))
}

func TestTree_StartLordMatchesNakshatraRuler(t *testing.T) {
	birth := time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)
	moonLon := 286.83 // Shravana, ruled by the Moon

	tree, err := Tree(birth, moonLon, 2)
	require.NoError(t, err)

	nak := domain.NakshatraOf(moonLon)
	assert.Equal(t, domain.DashaLords[nak%9], tree[0].Lord)
	assert.Equal(t, domain.Moon, tree[0].Lord)
}

func TestTree_SpansCover120Years(t *testing.T) {
	birth := time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)

	tree, err := Tree(birth, 286.83, 1)
	require.NoError(t, err)
	require.NotEmpty(t, tree)

	assert.Equal(t, birth, tree[0].Start)
	for i := 1; i < len(tree); i++ {
		assert.Equal(t, tree[i-1].End, tree[i].Start)
	}

	want := birth.Add(time.Duration(domain.VimshottariYears * domain.DashaYearDays * 24 * float64(time.Hour)))
	got := tree[len(tree)-1].End
	assert.Less(t, got.Sub(want).Abs(), 24*time.Hour)

	total := 0.0
	for _, n := range tree {
		total += n.Years
	}
	assert.InDelta(t, domain.VimshottariYears, total, 1e-6)
}

func TestTree_ChildrenPartitionParentExactly(t *testing.T) {
	birth := time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)

	tree, err := Tree(birth, 286.83, 3)
	require.NoError(t, err)

	for _, maha := range tree {
		require.Len(t, maha.Children, 9)
		assert.Equal(t, maha.Lord, maha.Children[0].Lord)
		assert.Equal(t, maha.Start, maha.Children[0].Start)
		assert.Equal(t, maha.End, maha.Children[8].End)

		for i := 1; i < len(maha.Children); i++ {
			assert.Equal(t, maha.Children[i-1].End, maha.Children[i].Start)
		}

		for _, antar := range maha.Children {
			require.Len(t, antar.Children, 9)
			assert.Equal(t, antar.Start, antar.Children[0].Start)
			assert.Equal(t, antar.End, antar.Children[8].End)
		}
	}
}

func TestTree_DepthControlsLevels(t *testing.T) {
	birth := time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)

	shallow, err := Tree(birth, 100.0, 1)
	require.NoError(t, err)
	for _, n := range shallow {
		assert.Nil(t, n.Children)
	}

	_, err = Tree(birth, 100.0, 0)
	assert.True(t, errors.Is(err, domain.ErrArithmeticBoundary))
}

func TestSubLords_ChainDepthAndBoundaries(t *testing.T) {
	chain, err := SubLords(0.0, 3)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	// Zero degrees opens every level with the cycle start.
	assert.Equal(t, domain.Ketu, chain[0])
	assert.Equal(t, domain.Ketu, chain[1])
	assert.Equal(t, domain.Ketu, chain[2])

	// First-level boundary at 21 degrees is closed-open.
	below, err := SubLords(20.9999, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Ketu, below[0])

	above, err := SubLords(21.0, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Venus, above[0])

	// The top of the circle belongs to the final Mercury span.
	top, err := SubLords(359.9999, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Mercury, top[0])
}

func TestSubLords_Deterministic(t *testing.T) {
	for _, lon := range []float64{0, 13.34, 100.5, 286.83, 359.99} {
		a, err := SubLords(lon, 3)
		require.NoError(t, err)
		b, err := SubLords(lon, 3)
		require.NoError(t, err)
		assert.Equal(t, a, b, "lon %.4f", lon)
	}
}

func TestCurrent_WalksRunningPeriods(t *testing.T) {
	birth := time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)
	tree, err := Tree(birth, 286.83, 2)
	require.NoError(t, err)

	now := birth.Add(3 * 365 * 24 * time.Hour)
	chain := Current(tree, now)
	require.Len(t, chain, 2)

	assert.Equal(t, tree[0].Lord, chain[0].Lord)
	assert.False(t, now.Before(chain[1].Start))
	assert.True(t, now.Before(chain[1].End))
	assert.Nil(t, chain[0].Children)

	assert.Empty(t, Current(tree, birth.Add(-time.Hour)))
}
