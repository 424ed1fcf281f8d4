// Package geocode resolves place names to coordinates and timezones. The
// engine itself never geocodes; callers resolve up front and pass explicit
// lat/lon/offset into the computation layer.
package geocode

import (
	"context"
	"fmt"
	"strings"

	"jyotish-engine/internal/domain"
)

// Location is one resolved place.
type Location struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
	OffsetHours float64 `json:"offsetHours"`
}

// Resolver turns place names into coordinates.
type Resolver interface {
	// Resolve returns the location for a place name, or
	// domain.ErrUnresolvableLocation when nothing matches.
	Resolve(ctx context.Context, place string) (Location, error)

	// TimezoneAt returns the timezone identifier covering a coordinate.
	TimezoneAt(ctx context.Context, lat, lon float64) (string, error)
}

// Static resolves against a built-in city table. It backs the CLIs and tests
// where no geocoding service is reachable.
type Static struct {
	cities map[string]Location
}

var _ Resolver = (*Static)(nil)

// NewStatic creates a resolver over the built-in table.
func NewStatic() *Static {
	s := &Static{cities: make(map[string]Location, len(builtinCities))}
	for _, c := range builtinCities {
		s.cities[strings.ToLower(c.Name)] = c
	}
	return s
}

// Resolve looks a place up case-insensitively.
func (s *Static) Resolve(_ context.Context, place string) (Location, error) {
	loc, ok := s.cities[strings.ToLower(strings.TrimSpace(place))]
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", domain.ErrUnresolvableLocation, place)
	}
	return loc, nil
}

// TimezoneAt finds the timezone of the nearest built-in city within a loose
// radius. Static data cannot answer arbitrary coordinates.
func (s *Static) TimezoneAt(_ context.Context, lat, lon float64) (string, error) {
	best := ""
	bestDist := 25.0 // degrees, squared below
	for _, c := range s.cities {
		dLat := c.Latitude - lat
		dLon := c.Longitude - lon
		d := dLat*dLat + dLon*dLon
		if d < bestDist {
			bestDist = d
			best = c.Timezone
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: no timezone near %.4f,%.4f", domain.ErrUnresolvableLocation, lat, lon)
	}
	return best, nil
}

var builtinCities = []Location{
	{Name: "Chennai", Latitude: 13.0827, Longitude: 80.2707, Timezone: "Asia/Kolkata", OffsetHours: 5.5},
	{Name: "Mumbai", Latitude: 19.0760, Longitude: 72.8777, Timezone: "Asia/Kolkata", OffsetHours: 5.5},
	{Name: "Delhi", Latitude: 28.6139, Longitude: 77.2090, Timezone: "Asia/Kolkata", OffsetHours: 5.5},
	{Name: "Kolkata", Latitude: 22.5726, Longitude: 88.3639, Timezone: "Asia/Kolkata", OffsetHours: 5.5},
	{Name: "Bengaluru", Latitude: 12.9716, Longitude: 77.5946, Timezone: "Asia/Kolkata", OffsetHours: 5.5},
	{Name: "Hyderabad", Latitude: 17.3850, Longitude: 78.4867, Timezone: "Asia/Kolkata", OffsetHours: 5.5},
	{Name: "Varanasi", Latitude: 25.3176, Longitude: 82.9739, Timezone: "Asia/Kolkata", OffsetHours: 5.5},
	{Name: "Ujjain", Latitude: 23.1765, Longitude: 75.7885, Timezone: "Asia/Kolkata", OffsetHours: 5.5},
	{Name: "Kathmandu", Latitude: 27.7172, Longitude: 85.3240, Timezone: "Asia/Kathmandu", OffsetHours: 5.75},
	{Name: "Colombo", Latitude: 6.9271, Longitude: 79.8612, Timezone: "Asia/Colombo", OffsetHours: 5.5},
	{Name: "London", Latitude: 51.5074, Longitude: -0.1278, Timezone: "Europe/London", OffsetHours: 0},
	{Name: "New York", Latitude: 40.7128, Longitude: -74.0060, Timezone: "America/New_York", OffsetHours: -5},
	{Name: "Singapore", Latitude: 1.3521, Longitude: 103.8198, Timezone: "Asia/Singapore", OffsetHours: 8},
	{Name: "Dubai", Latitude: 25.2048, Longitude: 55.2708, Timezone: "Asia/Dubai", OffsetHours: 4},
}
