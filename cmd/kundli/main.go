// Package main generates a natal chart report as Markdown from birth details
// given on the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"jyotish-engine/internal/chart"
	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris"
	"jyotish-engine/internal/ephemeris/analytic"
	"jyotish-engine/internal/geocode"
	"jyotish-engine/internal/moment"
	"jyotish-engine/internal/reporting"
)

func main() {
	// Parse flags
	name := flag.String("name", "", "Person's name")
	date := flag.String("date", "", "Birth date (YYYY-MM-DD)")
	timeOfDay := flag.String("time", "", "Birth time (HH:MM, local)")
	place := flag.String("place", "", "Birth place name (resolved against the built-in city table)")
	lat := flag.Float64("lat", 0, "Birth latitude (ignored when --place is set)")
	lon := flag.Float64("lon", 0, "Birth longitude (ignored when --place is set)")
	offset := flag.Float64("offset", 0, "UTC offset in hours (ignored when --place is set)")
	ayanamsaMode := flag.String("ayanamsa", "lahiri", "Ayanamsa mode (lahiri, krishnamurti)")
	divisions := flag.String("divisions", "9", "Comma-separated divisional charts (e.g. 1,9,10)")
	dashaDepth := flag.Int("dasha-depth", 2, "Vimshottari tree depth (1-3)")
	outputDir := flag.String("output-dir", "docs", "Output directory for the generated report")
	ephemerisURL := flag.String("ephemeris-url", os.Getenv("EPHEMERIS_URL"), "Remote ephemeris service endpoint (empty for built-in analytic)")
	flag.Parse()

	ctx := context.Background()

	if *date == "" || *timeOfDay == "" {
		fmt.Fprintln(os.Stderr, "Error: --date and --time are required")
		os.Exit(1)
	}

	latitude, longitude, offsetHours := *lat, *lon, *offset
	if *place != "" {
		loc, err := geocode.NewStatic().Resolve(ctx, *place)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving place: %v\n", err)
			os.Exit(1)
		}
		latitude, longitude, offsetHours = loc.Latitude, loc.Longitude, loc.OffsetHours
	}

	m, err := moment.New(*date, *timeOfDay, offsetHours, latitude, longitude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing birth moment: %v\n", err)
		os.Exit(1)
	}

	ay, err := domain.ParseAyanamsa(*ayanamsaMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	divisionList, err := parseDivisions(*divisions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing divisions: %v\n", err)
		os.Exit(1)
	}

	var provider ephemeris.Provider = analytic.New()
	if *ephemerisURL != "" {
		provider = ephemeris.NewHTTPClient(*ephemerisURL)
	}

	generator := reporting.NewGenerator(chart.NewBuilder(provider))
	report, err := generator.Generate(ctx, reporting.KundliRequest{
		Name:        *name,
		Place:       *place,
		Moment:      m,
		Ayanamsa:    ay,
		HouseSystem: domain.HouseWholeSign,
		Divisions:   divisionList,
		DashaDepth:  *dashaDepth,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(*outputDir, reportFileName(*name, *date))
	if err := os.WriteFile(outPath, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Kundli report written to %s\n", outPath)
}

// parseDivisions parses a comma-separated divisor list.
func parseDivisions(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid division %q", part)
		}
		out = append(out, d)
	}
	return out, nil
}

// reportFileName builds a stable file name from the name and birth date.
func reportFileName(name, date string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" {
		base = "kundli"
	}
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("%s_%s.md", base, date)
}
