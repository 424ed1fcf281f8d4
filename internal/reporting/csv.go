package reporting

import (
	"fmt"
	"strings"
	"time"

	"jyotish-engine/internal/domain"
)

// RenderPanchangaCSV renders calendar days as CSV string.
func RenderPanchangaCSV(days []*domain.PanchangaDay) string {
	var sb strings.Builder

	// Header
	sb.WriteString("date,weekday,tithi,nakshatra,yoga,karana,sunrise,sunset,festivals\n")

	// Rows
	for _, d := range days {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			d.Date.Format("2006-01-02"),
			d.Weekday,
			d.Tithi,
			d.Nakshatra,
			d.Yoga,
			d.Karana,
			d.Sunrise.Format("15:04"),
			d.Sunset.Format("15:04"),
			strings.Join(d.Festivals, ";"),
		))
	}

	return sb.String()
}

// RenderMuhurtaCSV renders scored windows as CSV string.
func RenderMuhurtaCSV(windows []domain.MuhurtaWindow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("time,lagna,tithi,nakshatra,yoga,score\n")

	// Rows
	for _, w := range windows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%.2f\n",
			w.Time.Format(time.RFC3339),
			w.Lagna,
			w.Tithi,
			w.Nakshatra,
			w.Yoga,
			w.Score,
		))
	}

	return sb.String()
}
