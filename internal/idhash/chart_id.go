package idhash

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

// ComputeChartID computes a deterministic chart_id for a set of birth inputs.
// Formula: base58(SHA256(name|date|time|lat|lon|offset|ayanamsa)).
// Identical inputs always map to the same ID, so re-saving a chart is a
// duplicate-key error rather than a second row.
func ComputeChartID(
	name string,
	date string,
	timeOfDay string,
	lat float64,
	lon float64,
	offsetHours float64,
	ayanamsaMode string,
) string {
	data := fmt.Sprintf("%s|%s|%s|%.6f|%.6f|%.2f|%s",
		name,
		date,
		timeOfDay,
		lat,
		lon,
		offsetHours,
		ayanamsaMode,
	)

	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:])
}
