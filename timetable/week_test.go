package timetable

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekNumber(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want int
	}{
		{"first monday of 2024", date(2024, time.January, 1), 1},
		{"first thursday of 2024", date(2024, time.January, 4), 1},
		{"jan 1 2023 belongs to prior iso year", date(2023, time.January, 1), 52},
		{"dec 30 2024 belongs to next iso year", date(2024, time.December, 30), 1},
		{"2021 starts in week 53", date(2021, time.January, 1), 53},
		{"mid march 2025", date(2025, time.March, 3), 10},
		{"one week later", date(2025, time.March, 10), 11},
	}
	for _, tc := range cases {
		if got := WeekNumber(tc.date); got != tc.want {
			t.Errorf("%s: WeekNumber(%s) = %d, want %d", tc.name, tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestWeekNumberRangeAndStability(t *testing.T) {
	start := date(2024, time.January, 1)
	for i := 0; i < 730; i++ {
		d := start.AddDate(0, 0, i)
		first := WeekNumber(d)
		if first < 1 || first > 53 {
			t.Fatalf("WeekNumber(%s) = %d out of [1,53]", d.Format("2006-01-02"), first)
		}
		if again := WeekNumber(d); again != first {
			t.Fatalf("WeekNumber(%s) not stable: %d then %d", d.Format("2006-01-02"), first, again)
		}
	}
}

func TestIsOddWeek(t *testing.T) {
	if IsOddWeek(date(2025, time.March, 3)) { // week 10
		t.Errorf("week 10 reported odd")
	}
	if !IsOddWeek(date(2025, time.March, 10)) { // week 11
		t.Errorf("week 11 reported even")
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(date(2025, time.March, 2)); got != "Sunday" {
		t.Errorf("WeekdayName = %s, want Sunday", got)
	}
	if got := WeekdayName(date(2025, time.March, 7)); got != "Friday" {
		t.Errorf("WeekdayName = %s, want Friday", got)
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		anchor time.Time
		want   time.Time
	}{
		{date(2025, time.March, 3), date(2025, time.March, 1)},  // Monday -> prior Saturday
		{date(2025, time.March, 1), date(2025, time.March, 1)},  // Saturday is its own start
		{date(2025, time.March, 7), date(2025, time.March, 1)},  // Friday closes the week
		{date(2025, time.March, 8), date(2025, time.March, 8)},  // next Saturday
		{date(2025, time.March, 2), date(2025, time.March, 1)},  // Sunday
	}
	for _, tc := range cases {
		if got := WeekStart(tc.anchor); !got.Equal(tc.want) {
			t.Errorf("WeekStart(%s) = %s, want %s",
				tc.anchor.Format("2006-01-02"), got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
		}
	}
}

func TestResolveCalendarDate(t *testing.T) {
	anchor := date(2025, time.March, 3) // Monday, week of Sat Mar 1

	cases := []struct {
		day        string
		weekOffset int
		want       time.Time
	}{
		{"Saturday", 0, date(2025, time.March, 1)},
		{"Sunday", 0, date(2025, time.March, 2)},
		{"Friday", 0, date(2025, time.March, 7)},
		{"Saturday", 1, date(2025, time.March, 8)},
		{"Friday", 1, date(2025, time.March, 14)},
	}
	for _, tc := range cases {
		got, ok := ResolveCalendarDate(anchor, tc.day, tc.weekOffset)
		if !ok {
			t.Fatalf("ResolveCalendarDate(%s, %d) not ok", tc.day, tc.weekOffset)
		}
		if !got.Equal(tc.want) {
			t.Errorf("ResolveCalendarDate(%s, %d) = %s, want %s",
				tc.day, tc.weekOffset, got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
		}
		if WeekdayName(got) != tc.day {
			t.Errorf("resolved date %s is a %s, want %s", got.Format("2006-01-02"), WeekdayName(got), tc.day)
		}
	}

	if _, ok := ResolveCalendarDate(anchor, "Caturday", 0); ok {
		t.Errorf("unknown weekday resolved")
	}
}
