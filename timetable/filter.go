package timetable

import (
	"sort"
	"time"

	"dept-portal/models"
)

// EventsOnDate returns the events active on the given calendar date: the
// event's day must match the date's weekday and its recurrence parity must
// match the date's ISO week parity. Results are sorted ascending by start
// time (lexical order, valid for strict HH:MM). Duplicates in the same slot
// are kept; alternating-week classes legitimately share a slot. Cancelled
// events are included, rendering marks them instead.
//
// Malformed events (unknown weekday, non-HH:MM times) are skipped; the input
// boundary should have rejected them already.
func EventsOnDate(events []models.ScheduleEvent, date time.Time) []models.ScheduleEvent {
	day := WeekdayName(date)
	odd := IsOddWeek(date)

	out := make([]models.ScheduleEvent, 0)
	for _, e := range events {
		if !wellFormed(e) {
			continue
		}
		if e.Day != day {
			continue
		}
		if e.Recurrence == RecurOdd && !odd {
			continue
		}
		if e.Recurrence == RecurEven && odd {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
