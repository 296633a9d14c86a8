package panchang

import "time"

// YearDates returns every calendar date of year as a YYYY-MM-DD string,
// January 1 through December 31, ascending. Month lengths come from the
// calendar itself via time.AddDate, never a hardcoded table, so leap-year
// February is handled correctly.
func YearDates(year int) []string {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	dates := make([]string, 0, 366)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}
