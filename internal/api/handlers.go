package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jyotish-engine/internal/chart"
	"jyotish-engine/internal/dasha"
	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/idhash"
	"jyotish-engine/internal/match"
	"jyotish-engine/internal/moment"
	"jyotish-engine/internal/muhurta"
	"jyotish-engine/internal/observability"
	"jyotish-engine/internal/panchanga"
	"jyotish-engine/internal/storage"
	"jyotish-engine/internal/yoga"
)

// bodyByName resolves a graha name from a query parameter.
var bodyByName = map[string]domain.Body{
	"Sun": domain.Sun, "Moon": domain.Moon, "Mars": domain.Mars,
	"Mercury": domain.Mercury, "Jupiter": domain.Jupiter, "Venus": domain.Venus,
	"Saturn": domain.Saturn, "Rahu": domain.Rahu, "Ketu": domain.Ketu,
}

type positionResponse struct {
	Body              string  `json:"body"`
	SiderealLongitude float64 `json:"siderealLongitude"`
	Sign              string  `json:"sign"`
	DegreesInSign     float64 `json:"degreesInSign"`
	House             int     `json:"house"`
	Nakshatra         string  `json:"nakshatra"`
	Pada              int     `json:"pada"`
}

type ascendantResponse struct {
	Degree float64 `json:"degree"`
	Sign   string  `json:"sign"`
}

type kundliResponse struct {
	Name            string             `json:"name,omitempty"`
	Date            string             `json:"date"`
	Time            string             `json:"time"`
	Latitude        float64            `json:"latitude"`
	Longitude       float64            `json:"longitude"`
	OffsetHours     float64            `json:"offsetHours"`
	AyanamsaMode    string             `json:"ayanamsaMode"`
	AyanamsaDegrees float64            `json:"ayanamsaDegrees"`
	HouseSystem     string             `json:"houseSystem"`
	Ascendant       ascendantResponse  `json:"ascendant"`
	Positions       []positionResponse `json:"positions"`
	Yogas           []domain.YogaMatch `json:"yogas,omitempty"`
}

func kundliFromChart(req birthRequest, c *domain.Chart, yogas []domain.YogaMatch) kundliResponse {
	resp := kundliResponse{
		Name:            req.Name,
		Date:            req.Date,
		Time:            req.Time,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		OffsetHours:     req.OffsetHours,
		AyanamsaMode:    string(c.Ayanamsa.Mode),
		AyanamsaDegrees: c.Ayanamsa.Degrees,
		HouseSystem:     c.HouseSystem,
		Ascendant: ascendantResponse{
			Degree: c.Ascendant.Degree,
			Sign:   domain.SignNames[c.Ascendant.Sign],
		},
		Yogas: yogas,
	}
	for _, b := range domain.Bodies {
		p, ok := c.Positions[b]
		if !ok {
			continue
		}
		resp.Positions = append(resp.Positions, positionResponse{
			Body:              b.String(),
			SiderealLongitude: p.SiderealLongitude,
			Sign:              domain.SignNames[p.Sign],
			DegreesInSign:     p.DegreesWithinSign,
			House:             p.House,
			Nakshatra:         domain.NakshatraNames[p.NakshatraIndex],
			Pada:              p.Pada,
		})
	}
	return resp
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleKundli(w http.ResponseWriter, r *http.Request) {
	req, err := s.birthFromQuery(r.Context(), r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}

	m, err := req.Moment()
	if err != nil {
		s.writeError(w, err)
		return
	}

	c, err := s.builder.Build(r.Context(), m, req.Ayanamsa, req.HouseSystem)
	if err != nil {
		observability.RecordComputationError("kundli")
		s.writeError(w, err)
		return
	}
	observability.RecordChartBuilt()

	writeJSON(w, http.StatusOK, kundliFromChart(req, c, yoga.Evaluate(c)))
}

func (s *Server) handlePanchanga(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		s.writeError(w, fmt.Errorf("%w: date is required", domain.ErrInvalidTimeFormat))
		return
	}
	ay, err := ayanamsaFromQuery(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	lat, lon, offset, err := s.locationFromQuery(r.Context(), q)
	if err != nil {
		s.writeError(w, err)
		return
	}

	day, err := panchanga.NewEngine(s.provider, ay).Day(r.Context(), date, offset, lat, lon)
	if err != nil {
		observability.RecordComputationError("panchanga")
		s.writeError(w, err)
		return
	}
	observability.RecordPanchangaDay()

	s.cachePanchangaDay(r.Context(), day, lat, lon)

	writeJSON(w, http.StatusOK, day)
}

// cachePanchangaDay persists a computed day. Duplicates are expected on
// repeat queries and not an error.
func (s *Server) cachePanchangaDay(ctx context.Context, day *domain.PanchangaDay, lat, lon float64) {
	if s.panchangaStore == nil {
		return
	}

	rec := &domain.PanchangaRecord{
		Date:           day.Date.Format("2006-01-02"),
		Latitude:       lat,
		Longitude:      lon,
		Weekday:        day.Weekday.String(),
		TithiIndex:     day.TithiIndex,
		Tithi:          day.Tithi,
		NakshatraIndex: day.NakshatraIndex,
		Nakshatra:      day.Nakshatra,
		YogaIndex:      day.YogaIndex,
		Yoga:           day.Yoga,
		KaranaIndex:    day.KaranaIndex,
		Karana:         day.Karana,
		SunriseUnix:    day.Sunrise.Unix(),
		SunsetUnix:     day.Sunset.Unix(),
		ComputedAt:     s.now().Unix(),
	}
	err := s.panchangaStore.InsertBulk(ctx, []*domain.PanchangaRecord{rec})
	if err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
		s.logger.Printf("cache panchanga day %s: %v", rec.Date, err)
	}
}

func (s *Server) handleDasha(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := s.birthFromQuery(r.Context(), q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	depth, err := queryInt(q, "depth", 2)
	if err != nil {
		s.writeError(w, err)
		return
	}

	m, err := req.Moment()
	if err != nil {
		s.writeError(w, err)
		return
	}

	positions, err := chart.ResolvePositions(r.Context(), s.provider, m.JulianDayUT, req.Ayanamsa)
	if err != nil {
		s.writeError(w, err)
		return
	}

	tree, err := dasha.Tree(m.Civil.UTC(), positions[domain.Moon].SiderealLongitude, depth)
	if err != nil {
		s.writeError(w, err)
		return
	}
	observability.RecordDashaTreeBuilt()

	writeJSON(w, http.StatusOK, map[string]any{
		"tree":    tree,
		"current": dasha.Current(tree, s.now()),
	})
}

func (s *Server) handleKP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	depth, err := queryInt(q, "depth", 3)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var lon float64
	if q.Get("longitude") != "" {
		lon, err = queryFloat(q, "longitude")
		if err != nil {
			s.writeError(w, err)
			return
		}
	} else {
		req, err := s.birthFromQuery(r.Context(), q)
		if err != nil {
			s.writeError(w, err)
			return
		}
		m, err := req.Moment()
		if err != nil {
			s.writeError(w, err)
			return
		}
		body := domain.Moon
		if name := q.Get("body"); name != "" {
			b, ok := bodyByName[name]
			if !ok {
				s.writeError(w, fmt.Errorf("%w: unknown body %q", storage.ErrInvalidInput, name))
				return
			}
			body = b
		}
		positions, err := chart.ResolvePositions(r.Context(), s.provider, m.JulianDayUT, req.Ayanamsa)
		if err != nil {
			s.writeError(w, err)
			return
		}
		lon = positions[body].SiderealLongitude
	}

	chain, err := dasha.SubLords(lon, depth)
	if err != nil {
		s.writeError(w, err)
		return
	}
	observability.DefaultMetrics.SubLordLookups.Inc()

	lords := make([]string, len(chain))
	for i, b := range chain {
		lords[i] = b.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"longitude": domain.Normalize(lon),
		"lords":     lords,
	})
}

func (s *Server) handleVarga(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := s.birthFromQuery(r.Context(), q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	d, err := queryInt(q, "d", 9)
	if err != nil {
		s.writeError(w, err)
		return
	}

	m, err := req.Moment()
	if err != nil {
		s.writeError(w, err)
		return
	}
	c, err := s.builder.Build(r.Context(), m, req.Ayanamsa, req.HouseSystem)
	if err != nil {
		s.writeError(w, err)
		return
	}
	dc, err := chart.Divisional(c, d)
	if err != nil {
		s.writeError(w, err)
		return
	}
	observability.RecordVargaComputed(fmt.Sprintf("D%d", d))

	signs := make(map[string]string, len(dc.Signs))
	for b, sign := range dc.Signs {
		signs[b.String()] = domain.SignNames[sign]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"division": dc.Division,
		"signs":    signs,
	})
}

func (s *Server) handleMuhurta(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		s.writeError(w, fmt.Errorf("%w: date is required", domain.ErrInvalidTimeFormat))
		return
	}
	ay, err := ayanamsaFromQuery(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	lat, lon, offset, err := s.locationFromQuery(r.Context(), q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	goal := q.Get("goal")
	profile, err := muhurta.ProfileFor(goal)
	if err != nil {
		s.writeError(w, err)
		return
	}

	windows, err := muhurta.NewScanner(s.provider, ay).Scan(r.Context(), date, offset, lat, lon, goal)
	if err != nil {
		observability.RecordComputationError("muhurta")
		s.writeError(w, err)
		return
	}
	observability.DefaultMetrics.MuhurtaScans.Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"goal":    profile.Goal,
		"windows": windows,
	})
}

type matchPerson struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	OffsetHours float64 `json:"offsetHours"`
}

type matchRequest struct {
	First    matchPerson `json:"first"`
	Second   matchPerson `json:"second"`
	Ayanamsa string      `json:"ayanamsa"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", storage.ErrInvalidInput, err))
		return
	}
	ay, err := domain.ParseAyanamsa(req.Ayanamsa)
	if err != nil {
		s.writeError(w, err)
		return
	}

	first, err := s.buildPersonChart(r, req.First, ay)
	if err != nil {
		s.writeError(w, err)
		return
	}
	second, err := s.buildPersonChart(r, req.Second, ay)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := match.Score(first, second, s.now())
	if err != nil {
		observability.RecordComputationError("match")
		s.writeError(w, err)
		return
	}
	observability.DefaultMetrics.MatchesScored.Inc()

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) buildPersonChart(r *http.Request, p matchPerson, ay domain.Ayanamsa) (*domain.Chart, error) {
	m, err := moment.New(p.Date, p.Time, p.OffsetHours, p.Latitude, p.Longitude)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(r.Context(), m, ay, domain.HouseWholeSign)
}

type chartSaveRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Place       string  `json:"place,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	OffsetHours float64 `json:"offsetHours,omitempty"`
	Ayanamsa    string  `json:"ayanamsa,omitempty"`
	House       string  `json:"house,omitempty"`
}

type chartRecordResponse struct {
	ChartID      string          `json:"chartId"`
	Name         string          `json:"name"`
	BirthDate    string          `json:"birthDate"`
	BirthTime    string          `json:"birthTime"`
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	OffsetHours  float64         `json:"offsetHours"`
	AyanamsaMode string          `json:"ayanamsaMode"`
	HouseSystem  string          `json:"houseSystem"`
	Chart        json.RawMessage `json:"chart,omitempty"`
	CreatedAt    int64           `json:"createdAt"`
}

func recordResponse(rec *domain.ChartRecord, includePayload bool) chartRecordResponse {
	resp := chartRecordResponse{
		ChartID:      rec.ChartID,
		Name:         rec.Name,
		BirthDate:    rec.BirthDate,
		BirthTime:    rec.BirthTime,
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		OffsetHours:  rec.OffsetHours,
		AyanamsaMode: rec.AyanamsaMode,
		HouseSystem:  rec.HouseSystem,
		CreatedAt:    rec.CreatedAt,
	}
	if includePayload {
		resp.Chart = json.RawMessage(rec.Payload)
	}
	return resp
}

func (s *Server) handleChartSave(w http.ResponseWriter, r *http.Request) {
	if s.chartStore == nil {
		s.writeError(w, fmt.Errorf("%w: no chart store configured", storage.ErrInvalidInput))
		return
	}

	var body chartSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", storage.ErrInvalidInput, err))
		return
	}
	if body.Name == "" {
		s.writeError(w, fmt.Errorf("%w: name is required", storage.ErrInvalidInput))
		return
	}

	req := birthRequest{
		Name:        body.Name,
		Date:        body.Date,
		Time:        body.Time,
		Place:       body.Place,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		OffsetHours: body.OffsetHours,
	}
	ay, err := domain.ParseAyanamsa(body.Ayanamsa)
	if err != nil {
		s.writeError(w, err)
		return
	}
	req.Ayanamsa = ay
	hs, ok := houseSystems[body.House]
	if !ok {
		s.writeError(w, fmt.Errorf("%w: %q", domain.ErrUnsupportedHouseSystem, body.House))
		return
	}
	req.HouseSystem = hs

	if body.Place != "" && body.Latitude == 0 && body.Longitude == 0 {
		if s.resolver == nil {
			s.writeError(w, fmt.Errorf("%w: no resolver configured", domain.ErrUnresolvableLocation))
			return
		}
		loc, err := s.resolver.Resolve(r.Context(), body.Place)
		if err != nil {
			s.writeError(w, err)
			return
		}
		req.Latitude, req.Longitude, req.OffsetHours = loc.Latitude, loc.Longitude, loc.OffsetHours
	}

	m, err := req.Moment()
	if err != nil {
		s.writeError(w, err)
		return
	}
	c, err := s.builder.Build(r.Context(), m, req.Ayanamsa, req.HouseSystem)
	if err != nil {
		s.writeError(w, err)
		return
	}
	observability.RecordChartBuilt()

	payload, err := json.Marshal(kundliFromChart(req, c, yoga.Evaluate(c)))
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec := &domain.ChartRecord{
		ChartID:      idhash.ComputeChartID(req.Name, req.Date, req.Time, req.Latitude, req.Longitude, req.OffsetHours, string(req.Ayanamsa.Mode)),
		Name:         req.Name,
		BirthDate:    req.Date,
		BirthTime:    req.Time,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		OffsetHours:  req.OffsetHours,
		AyanamsaMode: string(req.Ayanamsa.Mode),
		HouseSystem:  req.HouseSystem,
		Payload:      payload,
		CreatedAt:    s.now().Unix(),
	}
	if err := s.chartStore.Insert(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordResponse(rec, true))
}

func (s *Server) handleChartByID(w http.ResponseWriter, r *http.Request) {
	if s.chartStore == nil {
		s.writeError(w, storage.ErrNotFound)
		return
	}

	rec, err := s.chartStore.GetByID(r.Context(), chi.URLParam(r, "chartID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse(rec, true))
}

func (s *Server) handleChartsByName(w http.ResponseWriter, r *http.Request) {
	if s.chartStore == nil {
		s.writeError(w, storage.ErrNotFound)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeError(w, fmt.Errorf("%w: name is required", storage.ErrInvalidInput))
		return
	}

	recs, err := s.chartStore.GetByName(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]chartRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recordResponse(rec, false))
	}
	writeJSON(w, http.StatusOK, out)
}
