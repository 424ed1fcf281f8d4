package reporting

import (
	"context"
	"time"

	"jyotish-engine/internal/chart"
	"jyotish-engine/internal/dasha"
	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/yoga"
)

// KundliRequest describes one natal report to produce.
type KundliRequest struct {
	Name        string
	Place       string
	Moment      domain.Moment
	Ayanamsa    domain.Ayanamsa
	HouseSystem string
	Divisions   []int // divisional charts to include; defaults to D9
	DashaDepth  int   // defaults to 2 (mahadasha + antardasha)
}

// Generator produces kundli reports from computed data.
type Generator struct {
	builder *chart.Builder
	now     func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(builder *chart.Builder) *Generator {
	return &Generator{
		builder: builder,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete kundli report.
func (g *Generator) Generate(ctx context.Context, req KundliRequest) (*KundliReport, error) {
	c, err := g.builder.Build(ctx, req.Moment, req.Ayanamsa, req.HouseSystem)
	if err != nil {
		return nil, err
	}

	divisions := req.Divisions
	if len(divisions) == 0 {
		divisions = []int{9}
	}
	var divisionals []*domain.DivisionalChart
	for _, d := range divisions {
		dc, err := chart.Divisional(c, d)
		if err != nil {
			return nil, err
		}
		divisionals = append(divisionals, dc)
	}

	depth := req.DashaDepth
	if depth == 0 {
		depth = 2
	}
	dashas, err := dasha.Tree(req.Moment.Civil.UTC(), c.MoonPosition().SiderealLongitude, depth)
	if err != nil {
		return nil, err
	}

	return &KundliReport{
		GeneratedAt: g.now(),
		Name:        req.Name,
		BirthDate:   req.Moment.Civil.Format("2006-01-02"),
		BirthTime:   req.Moment.Civil.Format("15:04"),
		Place:       req.Place,
		Chart:       c,
		Divisionals: divisionals,
		Dashas:      dashas,
		Yogas:       yoga.Evaluate(c),
	}, nil
}
