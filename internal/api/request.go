package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/moment"
	"jyotish-engine/internal/storage"
)

// houseSystems maps accepted query values to provider codes.
var houseSystems = map[string]string{
	"":           domain.HouseWholeSign,
	"whole_sign": domain.HouseWholeSign,
	"equal":      domain.HouseEqual,
	"placidus":   domain.HousePlacidus,
	"W":          domain.HouseWholeSign,
	"E":          domain.HouseEqual,
	"P":          domain.HousePlacidus,
}

// birthRequest is the explicit option set shared by chart-producing endpoints.
type birthRequest struct {
	Name        string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Place       string
	Latitude    float64
	Longitude   float64
	OffsetHours float64
	Ayanamsa    domain.Ayanamsa
	HouseSystem string
}

// Moment normalizes the request's civil instant.
func (r birthRequest) Moment() (domain.Moment, error) {
	return moment.New(r.Date, r.Time, r.OffsetHours, r.Latitude, r.Longitude)
}

// birthFromQuery parses the shared birth parameters. Location comes from
// explicit lat/lon/offset or from a place lookup, never both.
func (s *Server) birthFromQuery(ctx context.Context, q url.Values) (birthRequest, error) {
	req := birthRequest{
		Name:  q.Get("name"),
		Date:  q.Get("date"),
		Time:  q.Get("time"),
		Place: q.Get("place"),
	}
	if req.Date == "" || req.Time == "" {
		return req, fmt.Errorf("%w: date and time are required", domain.ErrInvalidTimeFormat)
	}

	ay, err := ayanamsaFromQuery(q)
	if err != nil {
		return req, err
	}
	req.Ayanamsa = ay

	hs, ok := houseSystems[q.Get("house")]
	if !ok {
		return req, fmt.Errorf("%w: %q", domain.ErrUnsupportedHouseSystem, q.Get("house"))
	}
	req.HouseSystem = hs

	lat, lon, offset, err := s.locationFromQuery(ctx, q)
	if err != nil {
		return req, err
	}
	req.Latitude, req.Longitude, req.OffsetHours = lat, lon, offset

	return req, nil
}

// locationFromQuery resolves coordinates from lat/lon/offset params or a
// place lookup.
func (s *Server) locationFromQuery(ctx context.Context, q url.Values) (lat, lon, offset float64, err error) {
	if q.Get("lat") != "" || q.Get("lon") != "" {
		lat, err = queryFloat(q, "lat")
		if err != nil {
			return 0, 0, 0, err
		}
		lon, err = queryFloat(q, "lon")
		if err != nil {
			return 0, 0, 0, err
		}
		offset, err = queryFloat(q, "offset")
		if err != nil {
			return 0, 0, 0, err
		}
		return lat, lon, offset, nil
	}

	place := q.Get("place")
	if place == "" {
		return 0, 0, 0, fmt.Errorf("%w: place or lat/lon/offset required", domain.ErrUnresolvableLocation)
	}
	if s.resolver == nil {
		return 0, 0, 0, fmt.Errorf("%w: no resolver configured", domain.ErrUnresolvableLocation)
	}
	loc, err := s.resolver.Resolve(ctx, place)
	if err != nil {
		return 0, 0, 0, err
	}
	return loc.Latitude, loc.Longitude, loc.OffsetHours, nil
}

// ayanamsaFromQuery parses the ayanamsa mode. Mode "fixed" requires an
// explicit degree value; named modes use their documented defaults.
func ayanamsaFromQuery(q url.Values) (domain.Ayanamsa, error) {
	mode := q.Get("ayanamsa")
	if mode == string(domain.AyanamsaFixed) {
		deg, err := queryFloat(q, "ayanamsaDegrees")
		if err != nil {
			return domain.Ayanamsa{}, fmt.Errorf("%w: fixed mode needs ayanamsaDegrees", domain.ErrUnsupportedAyanamsa)
		}
		return domain.FixedAyanamsa(deg), nil
	}
	return domain.ParseAyanamsa(mode)
}

func queryFloat(q url.Values, key string) (float64, error) {
	raw := q.Get(key)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", storage.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func queryInt(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", storage.ErrInvalidInput, key, raw)
	}
	return v, nil
}
