// Package yoga detects classical chart combinations. Every rule is a
// stateless predicate over a built chart; the engine always evaluates the
// whole catalog since independent yogas can co-occur.
package yoga

import (
	"fmt"

	"jyotish-engine/internal/domain"
)

// kendraHouses are the angular houses counted from the ascendant.
var kendraHouses = map[int]bool{1: true, 4: true, 7: true, 10: true}

// mangalDoshaHouses afflict Mars placements for marriage matching.
var mangalDoshaHouses = map[int]bool{1: true, 4: true, 7: true, 8: true, 12: true}

// Rule is one named chart predicate.
type Rule struct {
	Name    string
	Score   float64
	Summary string
	Remedy  string
	Active  func(c *domain.Chart) bool
}

// mahapurushaNames maps the five mahapurusha bodies to their yoga names.
var mahapurushaNames = map[domain.Body]string{
	domain.Mars:    "Ruchaka Yoga",
	domain.Mercury: "Bhadra Yoga",
	domain.Jupiter: "Hamsa Yoga",
	domain.Venus:   "Malavya Yoga",
	domain.Saturn:  "Shasha Yoga",
}

// Catalog returns the full ordered rule set.
func Catalog() []Rule {
	rules := []Rule{
		{
			Name:    "Gajakesari Yoga",
			Score:   8,
			Summary: "Moon and Jupiter both occupy kendra houses from the lagna, bringing wisdom, fame and leadership.",
			Remedy:  "Worship Lord Ganesha on Wednesdays for wisdom.",
			Active: func(c *domain.Chart) bool {
				return kendraHouses[c.Positions[domain.Moon].House] &&
					kendraHouses[c.Positions[domain.Jupiter].House]
			},
		},
		{
			Name:    "Budhaditya Yoga",
			Score:   6,
			Summary: "Sun and Mercury share a house, enhancing intelligence and communication.",
			Remedy:  "Offer water to the Sun at dawn and recite the Aditya Hridayam.",
			Active: func(c *domain.Chart) bool {
				return c.Positions[domain.Sun].House == c.Positions[domain.Mercury].House
			},
		},
		{
			Name:    "Chandra-Mangala Yoga",
			Score:   5,
			Summary: "Moon and Mars conjoin in one sign, giving drive in earning and enterprise.",
			Remedy:  "Donate red lentils on Tuesdays.",
			Active: func(c *domain.Chart) bool {
				return c.Positions[domain.Moon].Sign == c.Positions[domain.Mars].Sign
			},
		},
		{
			Name:    "Kemadruma Yoga",
			Score:   3,
			Summary: "No planet occupies the second or twelfth house from the Moon, indicating isolation unless cancelled.",
			Remedy:  "Chant the Moon beej mantra daily to reduce emotional fluctuations.",
			Active:  kemadruma,
		},
		{
			Name:    "Mangal Dosha",
			Score:   4,
			Summary: "Mars occupies house 1, 4, 7, 8 or 12, an affliction weighed during marriage matching.",
			Remedy:  "Perform Kumbh Vivah or Hanuman puja on Tuesdays.",
			Active: func(c *domain.Chart) bool {
				return mangalDoshaHouses[c.Positions[domain.Mars].House]
			},
		},
		{
			Name:    "Neecha Bhanga Raja Yoga",
			Score:   7,
			Summary: "A debilitated planet is rescued by an exalted occupant of the same sign, reversing the weakness into strength.",
			Remedy:  "Strengthen the debilitated planet's deity with its weekday fast.",
			Active:  neechaBhanga,
		},
	}

	for _, body := range []domain.Body{domain.Mars, domain.Mercury, domain.Jupiter, domain.Venus, domain.Saturn} {
		b := body
		rules = append(rules, Rule{
			Name:    mahapurushaNames[b],
			Score:   9,
			Summary: fmt.Sprintf("%s stands in a kendra in its own or exaltation sign, one of the five mahapurusha combinations.", b),
			Remedy:  fmt.Sprintf("Honor %s on its weekday to support the yoga.", b),
			Active: func(c *domain.Chart) bool {
				pos := c.Positions[b]
				return kendraHouses[pos.House] && (ownSign(b, pos.Sign) || domain.ExaltationSign[b] == pos.Sign)
			},
		})
	}
	return rules
}

// Evaluate runs the whole catalog against a chart and returns one result per
// rule in catalog order. Inactive rules score zero.
func Evaluate(c *domain.Chart) []domain.YogaMatch {
	rules := Catalog()
	out := make([]domain.YogaMatch, len(rules))
	for i, r := range rules {
		m := domain.YogaMatch{Name: r.Name, Summary: r.Summary, Remedy: r.Remedy}
		if r.Active(c) {
			m.Active = true
			m.Score = r.Score
		}
		out[i] = m
	}
	return out
}

// Active filters Evaluate down to the matches present in the chart.
func Active(c *domain.Chart) []domain.YogaMatch {
	var out []domain.YogaMatch
	for _, m := range Evaluate(c) {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

// kemadruma checks the second and twelfth houses from the Moon for the five
// true planets; Sun and the nodes do not cancel it.
func kemadruma(c *domain.Chart) bool {
	moonHouse := c.Positions[domain.Moon].House
	second := moonHouse%12 + 1
	twelfth := (moonHouse+10)%12 + 1

	for _, body := range []domain.Body{domain.Mars, domain.Mercury, domain.Jupiter, domain.Venus, domain.Saturn} {
		h := c.Positions[body].House
		if h == second || h == twelfth {
			return false
		}
	}
	return true
}

// neechaBhanga finds a debilitated planet sharing its sign with another
// planet exalted in that very sign.
func neechaBhanga(c *domain.Chart) bool {
	for body, pos := range c.Positions {
		if domain.DebilitationSign[body] != pos.Sign {
			continue
		}
		for other, otherPos := range c.Positions {
			if other == body {
				continue
			}
			if otherPos.Sign == pos.Sign && domain.ExaltationSign[other] == pos.Sign {
				return true
			}
		}
	}
	return false
}

// ownSign reports whether the body rules the sign.
func ownSign(b domain.Body, sign int) bool {
	return domain.SignLords[sign] == b
}
