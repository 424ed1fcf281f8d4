package domain

import "time"

// DashaLords is the fixed Vimshottari lord cycle. The cycle starts from Ketu;
// a nakshatra's ruling lord is DashaLords[nakshatraIndex % 9].
var DashaLords = [9]Body{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// DashaYears holds each lord's allotted years, indexed like DashaLords.
// The weights sum to VimshottariYears.
var DashaYears = [9]float64{7, 20, 6, 10, 7, 18, 16, 19, 17}

// VimshottariYears is the full cycle length.
const VimshottariYears = 120.0

// DashaYearDays converts dasha years to days.
const DashaYearDays = 365.25

// DashaNode is one period in the Vimshottari tree. Children, when populated,
// partition [Start, End] exactly.
type DashaNode struct {
	Lord     Body        `json:"lord"`
	Start    time.Time   `json:"start"`
	End      time.Time   `json:"end"`
	Years    float64     `json:"years"`
	Children []DashaNode `json:"children,omitempty"`
}

// SubLordChain is a KP star/sub/sub-sub lord sequence for one longitude,
// outermost lord first.
type SubLordChain []Body
