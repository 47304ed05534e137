package timetable

import (
	"testing"
	"time"

	"dept-portal/models"
)

func mkEvent(id, day, start, end, recurrence string) models.ScheduleEvent {
	return models.ScheduleEvent{
		ID:         id,
		Day:        day,
		StartTime:  start,
		EndTime:    end,
		Type:       "Class",
		Recurrence: recurrence,
	}
}

func TestEventsOnDateWeekly(t *testing.T) {
	events := []models.ScheduleEvent{
		mkEvent("s1", "Sunday", "09:15", "10:30", RecurWeekly),
		mkEvent("m1", "Monday", "08:00", "09:15", RecurWeekly),
	}

	// Weekly events show on every matching weekday regardless of parity.
	for _, d := range []time.Time{
		date(2025, time.March, 2),  // Sunday, week 10
		date(2025, time.March, 9),  // Sunday, week 11
		date(2025, time.March, 16), // Sunday, week 12
	} {
		got := EventsOnDate(events, d)
		if len(got) != 1 || got[0].ID != "s1" {
			t.Fatalf("on %s got %v, want just s1", d.Format("2006-01-02"), got)
		}
	}
}

func TestEventsOnDateParity(t *testing.T) {
	events := []models.ScheduleEvent{
		mkEvent("odd", "Monday", "08:00", "09:15", RecurOdd),
		mkEvent("even", "Monday", "08:00", "09:15", RecurEven),
	}

	evenMonday := date(2025, time.March, 3)  // week 10
	oddMonday := date(2025, time.March, 10)  // week 11

	got := EventsOnDate(events, evenMonday)
	if len(got) != 1 || got[0].ID != "even" {
		t.Fatalf("even week: got %v, want just the even event", got)
	}

	got = EventsOnDate(events, oddMonday)
	if len(got) != 1 || got[0].ID != "odd" {
		t.Fatalf("odd week: got %v, want just the odd event", got)
	}
}

func TestEventsOnDateOrdering(t *testing.T) {
	events := []models.ScheduleEvent{
		mkEvent("late", "Tuesday", "14:00", "15:15", RecurWeekly),
		mkEvent("early", "Tuesday", "08:00", "09:15", RecurWeekly),
		mkEvent("mid", "Tuesday", "10:45", "12:00", RecurWeekly),
	}

	got := EventsOnDate(events, date(2025, time.March, 4)) // Tuesday
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].StartTime > got[i].StartTime {
			t.Fatalf("events out of order: %s after %s", got[i-1].StartTime, got[i].StartTime)
		}
	}
	if got[0].ID != "early" || got[1].ID != "mid" || got[2].ID != "late" {
		t.Fatalf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestEventsOnDateKeepsSameSlotDuplicates(t *testing.T) {
	// Two weekly events sharing day and time are both returned; alternating
	// classes end up like this on purpose.
	events := []models.ScheduleEvent{
		mkEvent("a", "Wednesday", "09:15", "10:30", RecurWeekly),
		mkEvent("b", "Wednesday", "09:15", "10:30", RecurWeekly),
	}
	got := EventsOnDate(events, date(2025, time.March, 5))
	if len(got) != 2 {
		t.Fatalf("got %d events, want both duplicates", len(got))
	}
}

func TestEventsOnDateSkipsMalformed(t *testing.T) {
	events := []models.ScheduleEvent{
		mkEvent("ok", "Thursday", "08:00", "09:15", RecurWeekly),
		mkEvent("bad-time", "Thursday", "8:00", "09:15", RecurWeekly),
		mkEvent("bad-day", "Thursdy", "08:00", "09:15", RecurWeekly),
		mkEvent("bad-end", "Thursday", "08:00", "25:70", RecurWeekly),
	}
	got := EventsOnDate(events, date(2025, time.March, 6))
	if len(got) != 1 || got[0].ID != "ok" {
		t.Fatalf("got %v, want just the well-formed event", got)
	}
}

func TestEventsOnDateIncludesCancelled(t *testing.T) {
	e := mkEvent("c", "Sunday", "09:15", "10:30", RecurWeekly)
	e.IsCancelled = true
	got := EventsOnDate([]models.ScheduleEvent{e}, date(2025, time.March, 2))
	if len(got) != 1 {
		t.Fatalf("cancelled event filtered out; cancellation is a display concern")
	}
}

func TestValidateEvent(t *testing.T) {
	cases := []struct {
		name    string
		event   models.ScheduleEvent
		wantErr bool
	}{
		{"valid", mkEvent("a", "Sunday", "09:15", "10:30", RecurWeekly), false},
		{"valid odd", mkEvent("a", "Friday", "13:00", "15:15", RecurOdd), false},
		{"unknown day", mkEvent("a", "Sundy", "09:15", "10:30", RecurWeekly), true},
		{"unpadded hour", mkEvent("a", "Sunday", "9:15", "10:30", RecurWeekly), true},
		{"12-hour style", mkEvent("a", "Sunday", "09:15", "1:30p", RecurWeekly), true},
		{"start after end", mkEvent("a", "Sunday", "10:30", "09:15", RecurWeekly), true},
		{"start equals end", mkEvent("a", "Sunday", "09:15", "09:15", RecurWeekly), true},
		{"bad recurrence", mkEvent("a", "Sunday", "09:15", "10:30", "biweekly"), true},
	}
	for _, tc := range cases {
		err := ValidateEvent(tc.event)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:15", 0, true},
		{"09.15", 0, true},
		{"09:1a", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseMinutes(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMinutes(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMinutes(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
