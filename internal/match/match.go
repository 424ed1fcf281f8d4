// Package match scores two-chart compatibility: the eight ashtakoot kootas,
// a dasha alignment note and the manglik cross-check.
package match

import (
	"fmt"
	"time"

	"jyotish-engine/internal/dasha"
	"jyotish-engine/internal/domain"
)

// MaxScore is the ashtakoot total across all eight kootas.
const MaxScore = 36.0

// varnaRank orders the four varnas by moon sign, highest first.
// Water signs are Brahmin, fire Kshatriya, earth Vaishya, air Shudra.
var varnaRank = [12]int{2, 1, 0, 3, 2, 1, 0, 3, 2, 1, 0, 3}

var varnaNames = [4]string{"Shudra", "Vaishya", "Kshatriya", "Brahmin"}

// vashya groups each moon sign by temperament.
type vashyaGroup int

const (
	chatushpada vashyaGroup = iota // quadruped
	manava                         // human
	jalachara                      // aquatic
	vanachara                      // wild
	keeta                          // insect
)

var vashyaOf = [12]vashyaGroup{
	chatushpada, chatushpada, manava, jalachara, vanachara, manava,
	manava, keeta, chatushpada, chatushpada, manava, jalachara,
}

// yoniAnimals maps each nakshatra to its yoni animal.
var yoniAnimals = [27]string{
	"Horse", "Elephant", "Sheep", "Serpent", "Serpent", "Dog",
	"Cat", "Sheep", "Cat", "Rat", "Rat", "Cow",
	"Buffalo", "Tiger", "Buffalo", "Tiger", "Deer", "Deer",
	"Dog", "Monkey", "Mongoose", "Monkey", "Lion", "Horse",
	"Lion", "Cow", "Elephant",
}

// yoniEnemies lists the hostile animal pairs; order-independent.
var yoniEnemies = map[[2]string]bool{
	{"Horse", "Buffalo"}:    true,
	{"Elephant", "Lion"}:    true,
	{"Sheep", "Monkey"}:     true,
	{"Serpent", "Mongoose"}: true,
	{"Dog", "Deer"}:         true,
	{"Cat", "Rat"}:          true,
	{"Cow", "Tiger"}:        true,
}

// gana classifies each nakshatra as Deva, Manushya or Rakshasa.
type gana int

const (
	deva gana = iota
	manushya
	rakshasa
)

var ganaNames = [3]string{"Deva", "Manushya", "Rakshasa"}

var ganaOf = [27]gana{
	deva, manushya, rakshasa, manushya, deva, manushya,
	deva, deva, rakshasa, rakshasa, manushya, manushya,
	deva, rakshasa, deva, rakshasa, deva, rakshasa,
	rakshasa, manushya, manushya, deva, rakshasa, rakshasa,
	manushya, manushya, deva,
}

// ganaScore is the symmetric pair table.
var ganaScore = map[[2]gana]float64{
	{deva, deva}:         6,
	{deva, manushya}:     5,
	{deva, rakshasa}:     1,
	{manushya, manushya}: 6,
	{manushya, rakshasa}: 3,
	{rakshasa, rakshasa}: 6,
}

// friendship is the classical planetary relation matrix: +1 friend,
// 0 neutral, -1 enemy, read as friendship[a][b] = how a regards b.
var friendship = map[domain.Body]map[domain.Body]int{
	domain.Sun:     {domain.Moon: 1, domain.Mars: 1, domain.Jupiter: 1, domain.Mercury: 0, domain.Venus: -1, domain.Saturn: -1},
	domain.Moon:    {domain.Sun: 1, domain.Mercury: 1, domain.Mars: 0, domain.Jupiter: 0, domain.Venus: 0, domain.Saturn: 0},
	domain.Mars:    {domain.Sun: 1, domain.Moon: 1, domain.Jupiter: 1, domain.Mercury: -1, domain.Venus: 0, domain.Saturn: 0},
	domain.Mercury: {domain.Sun: 1, domain.Venus: 1, domain.Moon: -1, domain.Mars: 0, domain.Jupiter: 0, domain.Saturn: 0},
	domain.Jupiter: {domain.Sun: 1, domain.Moon: 1, domain.Mars: 1, domain.Mercury: -1, domain.Venus: -1, domain.Saturn: 0},
	domain.Venus:   {domain.Mercury: 1, domain.Saturn: 1, domain.Sun: -1, domain.Moon: -1, domain.Mars: 0, domain.Jupiter: 0},
	domain.Saturn:  {domain.Mercury: 1, domain.Venus: 1, domain.Sun: -1, domain.Moon: -1, domain.Mars: -1, domain.Jupiter: 0},
}

// taraMalefic marks the inauspicious tara counts (0-based cycle of nine):
// Vipat, Pratyari and Vadha.
var taraMalefic = map[int]bool{2: true, 4: true, 6: true}

// nadiPattern repeats Adi/Madhya/Antya across each nine-nakshatra block.
var nadiPattern = [9]int{0, 1, 2, 2, 1, 0, 0, 1, 2}

var nadiNames = [3]string{"Adi", "Madhya", "Antya"}

// bhakootBad lists the afflicted sign distances (2/12, 5/9 and 6/8 pairs).
var bhakootBad = map[int]bool{1: true, 11: true, 4: true, 8: true, 5: true, 7: true}

// Score computes the full ashtakoot comparison between two charts. The first
// chart is conventionally the groom's. The dasha note compares the running
// periods of both charts at now.
func Score(first, second *domain.Chart, now time.Time) (*domain.CompatibilityResult, error) {
	nakA := first.MoonPosition().NakshatraIndex
	nakB := second.MoonPosition().NakshatraIndex
	signA := first.MoonPosition().Sign
	signB := second.MoonPosition().Sign

	categories := []domain.CategoryScore{
		varnaKoota(signA, signB),
		vashyaKoota(signA, signB),
		taraKoota(nakA, nakB),
		yoniKoota(nakA, nakB),
		grahaMaitriKoota(signA, signB),
		ganaKoota(nakA, nakB),
		bhakootKoota(signA, signB),
		nadiKoota(nakA, nakB),
	}

	total := 0.0
	for _, c := range categories {
		total += c.Score
	}

	note, err := dashaAlignment(first, second, now)
	if err != nil {
		return nil, err
	}

	return &domain.CompatibilityResult{
		AshtakootScore:  total,
		MaxScore:        MaxScore,
		Categories:      categories,
		DashaAlignment:  note,
		ManglikMismatch: Manglik(first) != Manglik(second),
	}, nil
}

// Manglik reports whether Mars occupies house 1, 4, 7, 8 or 12.
func Manglik(c *domain.Chart) bool {
	switch c.Positions[domain.Mars].House {
	case 1, 4, 7, 8, 12:
		return true
	}
	return false
}

// varnaKoota scores 1 when the two varna ranks are equal or adjacent.
// Order independent, like every other koota.
func varnaKoota(signA, signB int) domain.CategoryScore {
	rankA, rankB := varnaRank[signA], varnaRank[signB]
	gap := rankA - rankB
	if gap < 0 {
		gap = -gap
	}
	score := 0.0
	if gap <= 1 {
		score = 1
	}
	return domain.CategoryScore{
		Name:   "Varna",
		Score:  score,
		OutOf:  1,
		Detail: fmt.Sprintf("%s with %s", varnaNames[rankA], varnaNames[rankB]),
	}
}

func vashyaKoota(signA, signB int) domain.CategoryScore {
	a, b := vashyaOf[signA], vashyaOf[signB]
	var score float64
	switch {
	case a == b:
		score = 2
	case a == vanachara || b == vanachara:
		score = 0
	case (a == keeta && b == manava) || (a == manava && b == keeta):
		score = 0
	default:
		score = 1
	}
	return domain.CategoryScore{Name: "Vashya", Score: score, OutOf: 2}
}

func taraKoota(nakA, nakB int) domain.CategoryScore {
	score := 0.0
	if !taraMalefic[taraCount(nakA, nakB)] {
		score += 1.5
	}
	if !taraMalefic[taraCount(nakB, nakA)] {
		score += 1.5
	}
	return domain.CategoryScore{Name: "Tara", Score: score, OutOf: 3}
}

// taraCount is the 0-based tara of to counted from from.
func taraCount(from, to int) int {
	return ((to - from + 27) % 27) % 9
}

func yoniKoota(nakA, nakB int) domain.CategoryScore {
	a, b := yoniAnimals[nakA], yoniAnimals[nakB]
	var score float64
	switch {
	case a == b:
		score = 4
	case yoniEnemies[[2]string{a, b}] || yoniEnemies[[2]string{b, a}]:
		score = 0
	default:
		score = 2
	}
	return domain.CategoryScore{
		Name:   "Yoni",
		Score:  score,
		OutOf:  4,
		Detail: fmt.Sprintf("%s with %s", a, b),
	}
}

func grahaMaitriKoota(signA, signB int) domain.CategoryScore {
	lordA, lordB := domain.SignLords[signA], domain.SignLords[signB]
	var score float64
	if lordA == lordB {
		score = 5
	} else {
		ab := friendship[lordA][lordB]
		ba := friendship[lordB][lordA]
		switch {
		case ab == 1 && ba == 1:
			score = 5
		case (ab == 1 && ba == 0) || (ab == 0 && ba == 1):
			score = 4
		case ab == 0 && ba == 0:
			score = 3
		case (ab == 1 && ba == -1) || (ab == -1 && ba == 1):
			score = 1
		case (ab == 0 && ba == -1) || (ab == -1 && ba == 0):
			score = 0.5
		default:
			score = 0
		}
	}
	return domain.CategoryScore{
		Name:   "Graha Maitri",
		Score:  score,
		OutOf:  5,
		Detail: fmt.Sprintf("%s with %s", lordA, lordB),
	}
}

func ganaKoota(nakA, nakB int) domain.CategoryScore {
	a, b := ganaOf[nakA], ganaOf[nakB]
	score, ok := ganaScore[[2]gana{a, b}]
	if !ok {
		score = ganaScore[[2]gana{b, a}]
	}
	return domain.CategoryScore{
		Name:   "Gana",
		Score:  score,
		OutOf:  6,
		Detail: fmt.Sprintf("%s with %s", ganaNames[a], ganaNames[b]),
	}
}

func bhakootKoota(signA, signB int) domain.CategoryScore {
	d := ((signB - signA) + 12) % 12
	score := 7.0
	if bhakootBad[d] {
		score = 0
	}
	return domain.CategoryScore{Name: "Bhakoot", Score: score, OutOf: 7}
}

func nadiKoota(nakA, nakB int) domain.CategoryScore {
	a, b := nadiPattern[nakA%9], nadiPattern[nakB%9]
	score := 8.0
	if a == b {
		score = 0
	}
	return domain.CategoryScore{
		Name:   "Nadi",
		Score:  score,
		OutOf:  8,
		Detail: fmt.Sprintf("%s with %s", nadiNames[a], nadiNames[b]),
	}
}

// dashaAlignment compares the running Vimshottari periods of both charts.
func dashaAlignment(first, second *domain.Chart, now time.Time) (string, error) {
	treeA, err := dasha.Tree(first.Moment.Civil.UTC(), first.MoonPosition().SiderealLongitude, 2)
	if err != nil {
		return "", err
	}
	treeB, err := dasha.Tree(second.Moment.Civil.UTC(), second.MoonPosition().SiderealLongitude, 2)
	if err != nil {
		return "", err
	}

	curA := dasha.Current(treeA, now)
	curB := dasha.Current(treeB, now)
	if len(curA) > 0 && len(curB) > 0 && curA[0].Lord == curB[0].Lord {
		return "Both in the same mahadasha: aligned themes", nil
	}
	if len(curA) > 1 && len(curB) > 1 && curA[1].Lord == curB[1].Lord {
		return "Matching antardasha: emotional synchronicity", nil
	}
	return "Different dashas: karmic balancing", nil
}
