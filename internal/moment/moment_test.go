package moment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jyotish-engine/internal/domain"
)

func TestJulianDay_KnownEpochs(t *testing.T) {
	tests := []struct {
		name string
		utc  time.Time
		want float64
	}{
		{
			name: "J2000 epoch",
			utc:  time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			want: 2451545.0,
		},
		{
			name: "unix epoch",
			utc:  time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 2440587.5,
		},
		{
			name: "chennai scenario 1990-05-15 14:30 IST",
			utc:  time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC),
			want: 2448026.875,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JulianDay(tt.utc), 1e-6)
		})
	}
}

func TestNew_AppliesOffset(t *testing.T) {
	m, err := New("1990-05-15", "14:30", 5.5, 13.0827, 80.2707)
	require.NoError(t, err)

	// 14:30 at +05:30 is 09:00 UT.
	assert.InDelta(t, 2448026.875, m.JulianDayUT, 1e-6)
	assert.Equal(t, 5.5, m.OffsetHours)
	assert.Equal(t, 13.0827, m.Latitude)
	assert.Equal(t, 80.2707, m.Longitude)
}

func TestNew_InvalidInput(t *testing.T) {
	_, err := New("15-05-1990", "14:30", 5.5, 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTimeFormat))

	_, err = New("1990-05-15", "2:30 PM", 5.5, 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTimeFormat))
}

func TestFromJulianDay_RoundTrip(t *testing.T) {
	m, err := New("1990-05-15", "14:30", 5.5, 13.0827, 80.2707)
	require.NoError(t, err)

	back := FromJulianDay(m.JulianDayUT, 5.5)
	assert.Equal(t, 1990, back.Year())
	assert.Equal(t, time.May, back.Month())
	assert.Equal(t, 15, back.Day())
	assert.Equal(t, 14, back.Hour())
	assert.Equal(t, 30, back.Minute())
}
