package timetable

import "time"

// midnight normalizes a date to 00:00 UTC so day arithmetic is exact.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekNumber returns the ISO-8601 week number of the date: the date is
// shifted to the Thursday of its own week (Sunday counted as day 7), then the
// week index is ceil((daysSinceYearStart+1)/7) against January 1 of the
// shifted date's year. Always in [1, 53].
func WeekNumber(date time.Time) int {
	d := midnight(date)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	d = d.AddDate(0, 0, 4-wd)
	yearStart := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(yearStart).Hours() / 24)
	return (days + 7) / 7
}

// IsOddWeek reports whether the date falls in an odd-numbered week. Events
// with recurrence "odd" meet on these weeks, "even" on the others.
func IsOddWeek(date time.Time) bool {
	return WeekNumber(date)%2 != 0
}

// WeekdayName returns the English weekday name of the date.
func WeekdayName(date time.Time) string {
	return date.Weekday().String()
}

// WeekStart returns the Saturday on or before the anchor date.
func WeekStart(anchor time.Time) time.Time {
	d := midnight(anchor)
	daysPastSaturday := (int(d.Weekday()) + 1) % 7
	return d.AddDate(0, 0, -daysPastSaturday)
}

// ResolveCalendarDate maps a weekday name plus a week offset from the anchor's
// week to a concrete calendar date. The same arithmetic backs the week, 2-week
// and Friday renderings so they cannot diverge. ok is false for an unknown
// weekday name.
func ResolveCalendarDate(anchor time.Time, day string, weekOffset int) (time.Time, bool) {
	idx := DayIndex(day)
	if idx < 0 {
		return time.Time{}, false
	}
	return WeekStart(anchor).AddDate(0, 0, idx+weekOffset*7), true
}
