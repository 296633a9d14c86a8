package almanac

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"
)

// MeanMotion computes almanac fields from mean lunar and solar motion.
// It trades astronomical accuracy for a dependency-free, deterministic
// computation; swap in a real ephemeris behind Computer for production use.
type MeanMotion struct{}

func NewMeanMotion() *MeanMotion {
	return &MeanMotion{}
}

const (
	synodicMonth = 29.530588853 // days per lunation
	lunarDegDay  = 13.176358    // mean lunar motion, deg/day
	solarDegDay  = 0.98564736   // mean solar motion, deg/day
)

// epoch is the new moon of 2000-01-06 18:14 UTC.
var epoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

var tithiNames = []string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi",
}

var nakshatraNames = []string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

var yogaNames = []string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva", "Vyaghata",
	"Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana", "Parigha",
	"Shiva", "Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra",
	"Vaidhriti",
}

var karanaMovable = []string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti",
}

var karanaFixed = []string{"Shakuni", "Chatushpada", "Naga", "Kimstughna"}

var masaNames = []string{
	"Chaitra", "Vaishakha", "Jyeshtha", "Ashadha", "Shravana", "Bhadrapada",
	"Ashwina", "Kartika", "Margashirsha", "Pausha", "Magha", "Phalguna",
}

var raasiNames = []string{
	"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
	"Tula", "Vrischika", "Dhanu", "Makara", "Kumbha", "Meena",
}

var rituNames = []string{
	"Vasanta", "Grishma", "Varsha", "Sharad", "Hemanta", "Shishira",
}

func (m *MeanMotion) Compute(_ context.Context, date, lat, lng string) (Fields, error) {
	day, _, _, err := parseInputs(date, lat, lng)
	if err != nil {
		return Fields{}, err
	}

	days := day.Sub(epoch).Hours() / 24

	// Elongation of the moon from the sun drives tithi and paksha.
	elong := math.Mod(days, synodicMonth)
	if elong < 0 {
		elong += synodicMonth
	}
	tithiIdx := int(elong / (synodicMonth / 30)) // 0..29

	moonLong := wrap360(days * lunarDegDay)
	sunLong := wrap360(days * solarDegDay)

	f := Fields{
		Tithi:     tithiName(tithiIdx),
		Paksha:    pakshaName(tithiIdx),
		Nakshatra: nakshatraNames[int(moonLong/(360.0/27))%27],
		Yoga:      yogaNames[int(wrap360(moonLong+sunLong)/(360.0/27))%27],
		Karna:     karanaName(int(elong / (synodicMonth / 60))),
		Masa:      masaNames[int(sunLong/30)%12],
		Raasi:     raasiNames[int(moonLong/30)%12],
		Ritu:      rituNames[(int(sunLong/30)/2)%6],
	}
	return f, nil
}

func (m *MeanMotion) SunTimes(_ context.Context, date, lat, lng string) (string, string, error) {
	day, latDeg, _, err := parseInputs(date, lat, lng)
	if err != nil {
		return "", "", err
	}

	n := float64(day.YearDay())
	decl := 23.44 * math.Sin(2*math.Pi*(284+n)/365) // solar declination, deg

	x := -math.Tan(latDeg*math.Pi/180) * math.Tan(decl*math.Pi/180)
	switch {
	case x > 1: // polar night
		return "--:--", "--:--", nil
	case x < -1: // midnight sun
		return "00:00", "23:59", nil
	}

	// Hour angle in hours, local solar time around noon.
	ha := math.Acos(x) * 12 / math.Pi
	return clock(12 - ha), clock(12 + ha), nil
}

func parseInputs(date, lat, lng string) (time.Time, float64, float64, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	latDeg, err := strconv.ParseFloat(lat, 64)
	if err != nil || latDeg < -90 || latDeg > 90 {
		return time.Time{}, 0, 0, fmt.Errorf("invalid latitude %q", lat)
	}
	lngDeg, err := strconv.ParseFloat(lng, 64)
	if err != nil || lngDeg < -180 || lngDeg > 180 {
		return time.Time{}, 0, 0, fmt.Errorf("invalid longitude %q", lng)
	}
	return day, latDeg, lngDeg, nil
}

// tithiName maps a 0..29 index onto the 15-per-paksha naming scheme.
// Index 14 is Purnima (full moon), index 29 is Amavasya (new moon).
func tithiName(idx int) string {
	switch {
	case idx == 14:
		return "Purnima"
	case idx == 29:
		return "Amavasya"
	case idx < 15:
		return tithiNames[idx]
	default:
		return tithiNames[idx-15]
	}
}

func pakshaName(tithiIdx int) string {
	if tithiIdx < 15 {
		return "Shukla"
	}
	return "Krishna"
}

// karanaName maps a 0..59 half-tithi index onto 7 movable karanas cycling
// through the month plus 4 fixed ones at the ends.
func karanaName(half int) string {
	switch {
	case half == 0:
		return karanaFixed[3] // Kimstughna
	case half >= 57:
		return karanaFixed[half-57]
	default:
		return karanaMovable[(half-1)%7]
	}
}

func wrap360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func clock(h float64) string {
	minutes := int(math.Round(h * 60))
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
