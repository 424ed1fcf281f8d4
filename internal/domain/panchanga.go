package domain

import "time"

// TithiNames lists the 30 tithis: 15 of the bright half (Shukla) followed by
// 15 of the dark half (Krishna).
var TithiNames = [30]string{
	"Shukla Pratipada", "Shukla Dwitiya", "Shukla Tritiya", "Shukla Chaturthi",
	"Shukla Panchami", "Shukla Shashthi", "Shukla Saptami", "Shukla Ashtami",
	"Shukla Navami", "Shukla Dashami", "Shukla Ekadashi", "Shukla Dwadashi",
	"Shukla Trayodashi", "Shukla Chaturdashi", "Purnima",
	"Krishna Pratipada", "Krishna Dwitiya", "Krishna Tritiya", "Krishna Chaturthi",
	"Krishna Panchami", "Krishna Shashthi", "Krishna Saptami", "Krishna Ashtami",
	"Krishna Navami", "Krishna Dashami", "Krishna Ekadashi", "Krishna Dwadashi",
	"Krishna Trayodashi", "Krishna Chaturdashi", "Amavasya",
}

// YogaNames lists the 27 nityayogas derived from the Sun+Moon longitude sum.
var YogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva",
	"Vyaghata", "Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana",
	"Parigha", "Shiva", "Siddha", "Sadhya", "Shubha", "Shukla",
	"Brahma", "Indra", "Vaidhriti",
}

// MovableKaranas cycle through the 56 middle half-tithi slots.
var MovableKaranas = [7]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti",
}

// FixedKaranas occupy the four fixed slots: Kimstughna at slot 0,
// Shakuni/Chatushpada/Naga at slots 57-59.
var FixedKaranas = [4]string{"Kimstughna", "Shakuni", "Chatushpada", "Naga"}

// RahuKaalSegment maps a weekday to its 1-based eighth of the daylight span.
var RahuKaalSegment = map[time.Weekday]int{
	time.Sunday:    8,
	time.Monday:    2,
	time.Tuesday:   7,
	time.Wednesday: 5,
	time.Thursday:  6,
	time.Friday:    4,
	time.Saturday:  3,
}

// ChoghadiyaNames is the seven-name cycle; the eighth segment of a half-day
// repeats the first.
var ChoghadiyaNames = [7]string{
	"Udvega", "Chara", "Labha", "Amrita", "Kala", "Shubha", "Roga",
}

// ChoghadiyaDayFirst gives the index into ChoghadiyaNames of the first
// daylight segment for each weekday. Night sequences continue five steps on.
var ChoghadiyaDayFirst = map[time.Weekday]int{
	time.Sunday:    0,
	time.Monday:    3,
	time.Tuesday:   6,
	time.Wednesday: 2,
	time.Thursday:  5,
	time.Friday:    1,
	time.Saturday:  4,
}

// TimeWindow is a half-open local-time interval.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ChoghadiyaSlot is one named segment of the day or night.
type ChoghadiyaSlot struct {
	Name    string    `json:"name"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	IsNight bool      `json:"isNight"`
}

// PanchangaDay holds the five calendar elements and derived windows for one
// civil date at one location.
type PanchangaDay struct {
	Date           time.Time        `json:"date"`
	Weekday        time.Weekday     `json:"weekday"`
	TithiIndex     int              `json:"tithiIndex"` // 0-29
	Tithi          string           `json:"tithi"`
	NakshatraIndex int              `json:"nakshatraIndex"` // 0-26
	Nakshatra      string           `json:"nakshatra"`
	YogaIndex      int              `json:"yogaIndex"` // 0-26
	Yoga           string           `json:"yoga"`
	KaranaIndex    int              `json:"karanaIndex"` // 0-59
	Karana         string           `json:"karana"`
	Sunrise        time.Time        `json:"sunrise"`
	Sunset         time.Time        `json:"sunset"`
	RahuKaal       TimeWindow       `json:"rahuKaal"`
	Abhijit        TimeWindow       `json:"abhijitMuhurat"`
	Choghadiya     []ChoghadiyaSlot `json:"choghadiya"` // 8 day + 8 night
	Festivals      []string         `json:"festivals"`
	MoonPhase      string           `json:"moonPhase"`
	VedicMonth     string           `json:"vedicMonth"`
	RaviYoga       bool             `json:"raviYoga"`
	AmritSiddhi    bool             `json:"amritSiddhiYoga"`
}
