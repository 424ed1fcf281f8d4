// Package main prints the panchanga for a date (JSON) or a range of dates
// (CSV) at a location.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"jyotish-engine/internal/domain"
	"jyotish-engine/internal/ephemeris"
	"jyotish-engine/internal/ephemeris/analytic"
	"jyotish-engine/internal/geocode"
	"jyotish-engine/internal/panchanga"
	"jyotish-engine/internal/reporting"
)

func main() {
	// Parse flags
	date := flag.String("date", time.Now().UTC().Format("2006-01-02"), "Civil date (YYYY-MM-DD)")
	days := flag.Int("days", 1, "Number of consecutive days to compute")
	place := flag.String("place", "", "Place name (resolved against the built-in city table)")
	lat := flag.Float64("lat", 0, "Latitude (ignored when --place is set)")
	lon := flag.Float64("lon", 0, "Longitude (ignored when --place is set)")
	offset := flag.Float64("offset", 0, "UTC offset in hours (ignored when --place is set)")
	ayanamsaMode := flag.String("ayanamsa", "lahiri", "Ayanamsa mode (lahiri, krishnamurti)")
	ephemerisURL := flag.String("ephemeris-url", os.Getenv("EPHEMERIS_URL"), "Remote ephemeris service endpoint (empty for built-in analytic)")
	flag.Parse()

	ctx := context.Background()

	latitude, longitude, offsetHours := *lat, *lon, *offset
	if *place != "" {
		loc, err := geocode.NewStatic().Resolve(ctx, *place)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving place: %v\n", err)
			os.Exit(1)
		}
		latitude, longitude, offsetHours = loc.Latitude, loc.Longitude, loc.OffsetHours
	}

	start, err := time.Parse("2006-01-02", *date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid date %q\n", *date)
		os.Exit(1)
	}
	if *days < 1 {
		fmt.Fprintln(os.Stderr, "Error: --days must be at least 1")
		os.Exit(1)
	}

	ay, err := domain.ParseAyanamsa(*ayanamsaMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var provider ephemeris.Provider = analytic.New()
	if *ephemerisURL != "" {
		provider = ephemeris.NewHTTPClient(*ephemerisURL)
	}
	engine := panchanga.NewEngine(provider, ay)

	computed := make([]*domain.PanchangaDay, 0, *days)
	for i := 0; i < *days; i++ {
		d := start.AddDate(0, 0, i).Format("2006-01-02")
		day, err := engine.Day(ctx, d, offsetHours, latitude, longitude)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing panchanga for %s: %v\n", d, err)
			os.Exit(1)
		}
		computed = append(computed, day)
	}

	if *days == 1 {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(computed[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Print(reporting.RenderPanchangaCSV(computed))
}
