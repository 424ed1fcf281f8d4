package reporting

import (
	"fmt"
	"strings"
	"time"

	"jyotish-engine/internal/domain"
)

// RenderMarkdown renders a kundli report as Markdown string.
func RenderMarkdown(r *KundliReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Kundli: %s\n\n", r.Name))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Born: %s %s | %s\n\n", r.BirthDate, r.BirthTime, r.Place))

	// Chart Summary
	sb.WriteString("## Chart\n\n")
	if r.Chart != nil {
		asc := r.Chart.Ascendant
		sb.WriteString(fmt.Sprintf("Ascendant: %s (%.2f°) | Ayanamsa: %.4f° | House system: %s\n\n",
			domain.SignNames[asc.Sign], asc.Degree, r.Chart.Ayanamsa.Degrees, r.Chart.HouseSystem))

		sb.WriteString("| Body | Sign | Degree | House | Nakshatra | Pada |\n")
		sb.WriteString("|------|------|--------|-------|-----------|------|\n")
		for _, b := range domain.Bodies {
			p, ok := r.Chart.Positions[b]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %d | %s | %d |\n",
				b, domain.SignNames[p.Sign], p.DegreesWithinSign, p.House,
				domain.NakshatraNames[p.NakshatraIndex], p.Pada))
		}
	} else {
		sb.WriteString("No chart data available.\n")
	}
	sb.WriteString("\n")

	// Divisional Charts
	sb.WriteString("## Divisional Charts\n\n")
	if len(r.Divisionals) > 0 {
		for _, dc := range r.Divisionals {
			sb.WriteString(fmt.Sprintf("### D%d\n\n", dc.Division))
			sb.WriteString("| Body | Sign |\n")
			sb.WriteString("|------|------|\n")
			for _, b := range domain.Bodies {
				sign, ok := dc.Signs[b]
				if !ok {
					continue
				}
				sb.WriteString(fmt.Sprintf("| %s | %s |\n", b, domain.SignNames[sign]))
			}
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("No divisional charts available.\n\n")
	}

	// Vimshottari Dasha
	sb.WriteString("## Vimshottari Dasha\n\n")
	if len(r.Dashas) > 0 {
		sb.WriteString("| Mahadasha | Start | End | Years |\n")
		sb.WriteString("|-----------|-------|-----|-------|\n")
		for _, d := range r.Dashas {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f |\n",
				d.Lord, d.Start.Format("2006-01-02"), d.End.Format("2006-01-02"), d.Years))
		}
		sb.WriteString("\n")

		for _, d := range r.Dashas {
			if len(d.Children) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("### %s Antardashas\n\n", d.Lord))
			sb.WriteString("| Antardasha | Start | End |\n")
			sb.WriteString("|------------|-------|-----|\n")
			for _, a := range d.Children {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
					a.Lord, a.Start.Format("2006-01-02"), a.End.Format("2006-01-02")))
			}
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("No dasha periods available.\n\n")
	}

	// Yogas
	sb.WriteString("## Yogas\n\n")
	active := 0
	for _, y := range r.Yogas {
		if y.Active {
			active++
		}
	}
	if active > 0 {
		sb.WriteString("| Yoga | Score | Summary |\n")
		sb.WriteString("|------|-------|--------|\n")
		for _, y := range r.Yogas {
			if !y.Active {
				continue
			}
			sb.WriteString(fmt.Sprintf("| %s | %.1f | %s |\n", y.Name, y.Score, y.Summary))
		}
	} else {
		sb.WriteString("No active yogas found.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
