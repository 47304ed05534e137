package timetable

import (
	"math"
	"testing"

	"dept-portal/models"
)

func overlaps(e models.ScheduleEvent, s TimeSlot) bool {
	return e.StartTime < s.End && e.EndTime > s.Start
}

func TestSlotSpanWeekdayGrid(t *testing.T) {
	// A Sunday class exactly filling the second slot.
	e := mkEvent("a", "Sunday", "09:15", "10:30", RecurWeekly)
	p, ok := SlotSpan(e, WeekdaySlots)
	if !ok {
		t.Fatalf("placement not ok")
	}
	if p.StartIndex != 1 || p.Span != 1 {
		t.Fatalf("got startIndex=%d span=%d, want 1/1", p.StartIndex, p.Span)
	}
}

func TestSlotSpanFridayGrid(t *testing.T) {
	// The combined break/prayer interval spans exactly one Friday slot, but
	// would cover two on the weekday grid. Friday must use its own grid.
	e := mkEvent("f", "Friday", "13:00", "15:15", RecurWeekly)

	p, ok := SlotSpan(e, FridaySlots)
	if !ok {
		t.Fatalf("placement not ok")
	}
	if p.StartIndex != 4 || p.Span != 1 {
		t.Fatalf("friday grid: got startIndex=%d span=%d, want 4/1", p.StartIndex, p.Span)
	}
	if FridaySlots[p.StartIndex].Label != "01:00-03:15" {
		t.Fatalf("landed in %q, want the combined slot", FridaySlots[p.StartIndex].Label)
	}

	wp, _ := SlotSpan(e, WeekdaySlots)
	if wp.StartIndex == p.StartIndex && wp.Span == p.Span {
		t.Fatalf("weekday grid produced the same placement; grids are not interchangeable")
	}
}

func TestSlotSpanMultiSlot(t *testing.T) {
	grid := []TimeSlot{
		{Label: "08:00-09:15", Start: "08:00", End: "09:15"},
		{Label: "09:15-10:30", Start: "09:15", End: "10:30"},
		{Label: "10:45-12:00", Start: "10:45", End: "12:00"},
		{Label: "12:00-13:15", Start: "12:00", End: "13:15"},
	}
	e := mkEvent("d", "Monday", "10:00", "13:00", RecurWeekly)

	p, ok := SlotSpan(e, grid)
	if !ok {
		t.Fatalf("placement not ok")
	}
	if p.StartIndex != 1 || p.Span != 3 {
		t.Fatalf("got startIndex=%d span=%d, want 1/3", p.StartIndex, p.Span)
	}
}

// The slots inside [startIndex, startIndex+span) must all pass the half-open
// overlap test and no slot outside the range may pass it.
func TestSlotSpanLaw(t *testing.T) {
	events := []models.ScheduleEvent{
		mkEvent("a", "Sunday", "08:00", "09:15", RecurWeekly),
		mkEvent("b", "Sunday", "08:30", "09:00", RecurWeekly),  // inside one slot
		mkEvent("c", "Sunday", "09:00", "11:00", RecurWeekly),  // crosses the gap
		mkEvent("d", "Sunday", "10:00", "13:00", RecurWeekly),
		mkEvent("e", "Sunday", "12:30", "16:00", RecurWeekly),  // crosses tiffin gap
		mkEvent("f", "Sunday", "10:30", "10:45", RecurWeekly),  // entirely inside a gap
	}
	for _, grid := range [][]TimeSlot{WeekdaySlots, FridaySlots} {
		for _, e := range events {
			p, ok := SlotSpan(e, grid)
			if !ok {
				// No slot may overlap an unplaceable event.
				for i, s := range grid {
					if overlaps(e, s) {
						t.Fatalf("event %s reported unplaceable but overlaps slot %d", e.ID, i)
					}
				}
				if p.Span != 1 || p.StartIndex != -1 {
					t.Fatalf("event %s: degenerate placement should be span 1, index -1, got %+v", e.ID, p)
				}
				continue
			}
			for i, s := range grid {
				in := i >= p.StartIndex && i < p.StartIndex+p.Span
				if in != overlaps(e, s) {
					t.Fatalf("event %s slot %d: in-range=%v overlap=%v", e.ID, i, in, overlaps(e, s))
				}
			}
		}
	}
}

func TestSlotSpanNoOverlap(t *testing.T) {
	e := mkEvent("dawn", "Sunday", "06:00", "07:00", RecurWeekly)
	p, ok := SlotSpan(e, WeekdaySlots)
	if ok {
		t.Fatalf("event outside the grid placed at %+v", p)
	}
	if p.Span != 1 || p.StartIndex != -1 {
		t.Fatalf("degenerate placement = %+v, want span 1, index -1", p)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPositionFullWindow(t *testing.T) {
	e := mkEvent("full", "Sunday", "08:00", "17:00", RecurWeekly)
	p, err := Position(e, DefaultWindow)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if !almostEqual(p.OffsetPercent, 0) || !almostEqual(p.WidthPercent, 100) {
		t.Fatalf("got offset=%v width=%v, want 0/100", p.OffsetPercent, p.WidthPercent)
	}
}

func TestPositionProportional(t *testing.T) {
	// 09:15-10:30 inside the 08:00-17:00 window: 75 minutes in, 75 long.
	e := mkEvent("a", "Sunday", "09:15", "10:30", RecurWeekly)
	p, err := Position(e, DefaultWindow)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	wantOffset := 75.0 / 540 * 100
	wantWidth := 75.0 / 540 * 100
	if !almostEqual(p.OffsetPercent, wantOffset) || !almostEqual(p.WidthPercent, wantWidth) {
		t.Fatalf("got offset=%v width=%v, want %v/%v", p.OffsetPercent, p.WidthPercent, wantOffset, wantWidth)
	}
}

func TestPositionDoesNotClip(t *testing.T) {
	// Starts before the window: negative offset, width still true duration.
	e := mkEvent("early", "Sunday", "07:00", "08:30", RecurWeekly)
	p, err := Position(e, DefaultWindow)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if p.OffsetPercent >= 0 {
		t.Fatalf("offset %v should be negative for a pre-window start", p.OffsetPercent)
	}
	if !almostEqual(p.WidthPercent, 90.0/540*100) {
		t.Fatalf("width %v altered by window, want true duration share", p.WidthPercent)
	}
}

func TestPositionMalformedTime(t *testing.T) {
	e := mkEvent("bad", "Sunday", "7:00", "08:30", RecurWeekly)
	if _, err := Position(e, DefaultWindow); err == nil {
		t.Fatalf("expected error for malformed start time")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		name       string
		in         PrecisionPlacement
		wantOffset float64
		wantWidth  float64
	}{
		{"inside untouched", PrecisionPlacement{10, 20}, 10, 20},
		{"left overflow", PrecisionPlacement{-10, 30}, 0, 20},
		{"right overflow", PrecisionPlacement{90, 30}, 90, 10},
		{"both sides", PrecisionPlacement{-10, 140}, 0, 100},
		{"entirely before", PrecisionPlacement{-50, 20}, 0, 0},
		{"entirely after", PrecisionPlacement{120, 20}, 100, 0},
	}
	for _, tc := range cases {
		got := tc.in.Clamp()
		if !almostEqual(got.OffsetPercent, tc.wantOffset) || !almostEqual(got.WidthPercent, tc.wantWidth) {
			t.Errorf("%s: got %v/%v, want %v/%v", tc.name, got.OffsetPercent, got.WidthPercent, tc.wantOffset, tc.wantWidth)
		}
	}
}
