// Package dasha implements proportional time and zodiac subdivision: the
// Vimshottari dasha tree and KP sub-lord chains share one partition primitive.
package dasha

import (
	"fmt"
	"time"

	"jyotish-engine/internal/domain"
)

// Span is one proportional share of a partitioned quantity. Units follow the
// caller: years for dasha trees, degrees for sub-lord chains.
type Span struct {
	Lord  domain.Body
	Start float64
	End   float64
}

// Partition divides total among the nine lords in cycle order beginning at
// startLord. The first span is reduced by startFrac of its full share; spans
// continue in cycle order until total is exhausted, the last one truncated so
// the boundaries close exactly on total.
func Partition(total float64, startLord domain.Body, startFrac float64) ([]Span, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: partition total %.6f", domain.ErrArithmeticBoundary, total)
	}
	if startFrac < 0 || startFrac >= 1 {
		return nil, fmt.Errorf("%w: start fraction %.6f", domain.ErrArithmeticBoundary, startFrac)
	}
	start := lordIndex(startLord)
	if start < 0 {
		return nil, fmt.Errorf("%w: %s is not a dasha lord", domain.ErrArithmeticBoundary, startLord)
	}

	eps := total * 1e-9
	spans := make([]Span, 0, 10)
	cursor := 0.0
	for i := 0; total-cursor > eps; i++ {
		idx := (start + i) % len(domain.DashaLords)
		width := total * domain.DashaYears[idx] / domain.VimshottariYears
		if i == 0 {
			width *= 1 - startFrac
		}
		end := cursor + width
		if end >= total-eps {
			end = total
		}
		spans = append(spans, Span{Lord: domain.DashaLords[idx], Start: cursor, End: end})
		cursor = end
	}
	return spans, nil
}

// Tree builds the Vimshottari dasha tree for a birth instant and the Moon's
// sidereal longitude. The starting lord is the Moon nakshatra's ruler and the
// first mahadasha is shortened by the fraction of the nakshatra already
// traversed. depth 1 yields mahadashas only, 2 adds antardashas, and so on.
func Tree(birth time.Time, moonLon float64, depth int) ([]domain.DashaNode, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: dasha depth %d", domain.ErrArithmeticBoundary, depth)
	}

	nak := domain.NakshatraOf(moonLon)
	lord := domain.DashaLords[nak%len(domain.DashaLords)]
	frac := domain.NakshatraFraction(moonLon)

	spans, err := Partition(domain.VimshottariYears, lord, frac)
	if err != nil {
		return nil, err
	}

	nodes := make([]domain.DashaNode, len(spans))
	for i, s := range spans {
		node := domain.DashaNode{
			Lord:  s.Lord,
			Start: birth.Add(yearsToDuration(s.Start)),
			End:   birth.Add(yearsToDuration(s.End)),
			Years: s.End - s.Start,
		}
		if err := expand(&node, depth); err != nil {
			return nil, err
		}
		nodes[i] = node
	}
	return nodes, nil
}

// expand fills node.Children down to the requested depth. Children start from
// the parent's own lord with no elapsed fraction; the final child is pinned to
// the parent's end so sibling boundaries never drift.
func expand(node *domain.DashaNode, depth int) error {
	if depth <= 1 {
		return nil
	}

	spans, err := Partition(node.Years, node.Lord, 0)
	if err != nil {
		return err
	}

	children := make([]domain.DashaNode, len(spans))
	for i, s := range spans {
		child := domain.DashaNode{
			Lord:  s.Lord,
			Start: node.Start.Add(yearsToDuration(s.Start)),
			End:   node.Start.Add(yearsToDuration(s.End)),
			Years: s.End - s.Start,
		}
		if i == len(spans)-1 {
			child.End = node.End
		}
		if err := expand(&child, depth-1); err != nil {
			return err
		}
		children[i] = child
	}
	node.Children = children
	return nil
}

// SubLords computes the KP lord chain for a sidereal longitude by applying the
// same partition to the 360 degree circle instead of a time span: locate the
// span holding the longitude, then re-partition that span from its own lord,
// to the requested depth (star lord, sub lord, sub-sub lord, ...).
func SubLords(lon float64, depth int) (domain.SubLordChain, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: sub-lord depth %d", domain.ErrArithmeticBoundary, depth)
	}

	lon = domain.Normalize(lon)
	chain := make(domain.SubLordChain, 0, depth)

	spanStart := 0.0
	spanWidth := 360.0
	lord := domain.DashaLords[0]
	for level := 0; level < depth; level++ {
		spans, err := Partition(spanWidth, lord, 0)
		if err != nil {
			return nil, err
		}

		offset := lon - spanStart
		found := false
		for i, s := range spans {
			last := i == len(spans)-1
			if offset >= s.Start && (offset < s.End || last) {
				chain = append(chain, s.Lord)
				spanStart += s.Start
				spanWidth = s.End - s.Start
				lord = s.Lord
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: longitude %.6f outside partition", domain.ErrArithmeticBoundary, lon)
		}
	}
	return chain, nil
}

// Current walks the tree and returns the running period at each level,
// outermost first, with children stripped. Empty when now falls outside the
// tree entirely.
func Current(tree []domain.DashaNode, now time.Time) []domain.DashaNode {
	var chain []domain.DashaNode
	nodes := tree
	for len(nodes) > 0 {
		var match *domain.DashaNode
		for i := range nodes {
			if !now.Before(nodes[i].Start) && now.Before(nodes[i].End) {
				match = &nodes[i]
				break
			}
		}
		if match == nil {
			break
		}
		flat := *match
		flat.Children = nil
		chain = append(chain, flat)
		nodes = match.Children
	}
	return chain
}

func lordIndex(b domain.Body) int {
	for i, lord := range domain.DashaLords {
		if lord == b {
			return i
		}
	}
	return -1
}

func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * domain.DashaYearDays * 24 * float64(time.Hour))
}
