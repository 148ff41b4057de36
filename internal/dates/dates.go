// Package dates handles the calendar-day arithmetic the schedulers run on.
// All dates are ISO YYYY-MM-DD strings; string comparison orders them.
package dates

import "time"

const layout = "2006-01-02"

// Today formats the calendar day of the given instant.
func Today(now time.Time) string {
	return now.Format(layout)
}

// AddDays shifts an ISO date by n calendar days. A malformed input is
// returned unchanged; callers hold only dates this package produced.
func AddDays(day string, n int) string {
	t, err := time.Parse(layout, day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, n).Format(layout)
}

// Yesterday returns the day before the given ISO date.
func Yesterday(day string) string {
	return AddDays(day, -1)
}
