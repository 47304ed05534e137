package timetable

import (
	"testing"
	"time"

	"dept-portal/models"
)

func sampleEvents() []models.ScheduleEvent {
	return []models.ScheduleEvent{
		mkEvent("sun-class", "Sunday", "09:15", "10:30", RecurWeekly),
		mkEvent("sun-late", "Sunday", "14:00", "15:15", RecurWeekly),
		mkEvent("mon-odd", "Monday", "08:00", "09:15", RecurOdd),
		mkEvent("fri-prayer", "Friday", "13:00", "15:15", RecurWeekly),
		mkEvent("sun-dawn", "Sunday", "06:00", "07:00", RecurWeekly), // outside every grid
	}
}

func TestComposeDayView(t *testing.T) {
	view := Compose(sampleEvents(), Options{
		Anchor: date(2025, time.March, 2), // Sunday, week 10
		View:   ViewDay,
	})

	if len(view.Days) != 1 {
		t.Fatalf("day view has %d columns, want 1", len(view.Days))
	}
	col := view.Days[0]
	if col.Day != "Sunday" || col.Date != "2025-03-02" {
		t.Fatalf("unexpected column %s/%s", col.Day, col.Date)
	}
	if len(col.Events) != 3 {
		t.Fatalf("got %d events, want 3", len(col.Events))
	}
	// Vertical stacking in time order, no layout coordinates.
	if col.Events[0].ID != "sun-dawn" || col.Events[1].ID != "sun-class" || col.Events[2].ID != "sun-late" {
		t.Fatalf("unexpected order: %s %s %s", col.Events[0].ID, col.Events[1].ID, col.Events[2].ID)
	}
	for _, pe := range col.Events {
		if pe.Slot != nil || pe.Precision != nil {
			t.Fatalf("day view event %s carries layout coordinates", pe.ID)
		}
	}
}

func TestComposeWeekClassic(t *testing.T) {
	view := Compose(sampleEvents(), Options{
		Anchor: date(2025, time.March, 3), // Monday, week 10 (even)
		View:   ViewWeek,
		Layout: LayoutClassic,
	})

	if len(view.Days) != 7 {
		t.Fatalf("week view has %d columns, want 7", len(view.Days))
	}
	if view.WeekNumber != 10 {
		t.Fatalf("week number %d, want 10", view.WeekNumber)
	}

	byDay := map[string]DayColumn{}
	for _, col := range view.Days {
		byDay[col.Day] = col
	}

	// Friday uses its own grid and the combined slot.
	fri := byDay["Friday"]
	if len(fri.Grid) != len(FridaySlots) || fri.Grid[4].Label != "01:00-03:15" {
		t.Fatalf("friday column does not carry the friday grid")
	}
	if len(fri.Events) != 1 || fri.Events[0].Slot == nil {
		t.Fatalf("friday events = %+v", fri.Events)
	}
	if fri.Events[0].Slot.StartIndex != 4 || fri.Events[0].Slot.Span != 1 {
		t.Fatalf("friday placement = %+v, want 4/1", fri.Events[0].Slot)
	}

	// Even week: the odd Monday class is absent.
	if len(byDay["Monday"].Events) != 0 {
		t.Fatalf("odd-week event present in even week")
	}

	// Sunday keeps the placeable classes; the dawn event is dropped, not clipped.
	sun := byDay["Sunday"]
	if len(sun.Events) != 2 {
		t.Fatalf("sunday has %d placed events, want 2", len(sun.Events))
	}
	if sun.Events[0].Slot.StartIndex != 1 || sun.Events[0].Slot.Span != 1 {
		t.Fatalf("sunday 09:15 class placed at %+v, want 1/1", sun.Events[0].Slot)
	}
	found := false
	for _, id := range view.Dropped {
		if id == "sun-dawn" {
			found = true
		}
	}
	if !found {
		t.Fatalf("unplaceable event not reported in Dropped: %v", view.Dropped)
	}
}

func TestComposeWeekPrecision(t *testing.T) {
	view := Compose(sampleEvents(), Options{
		Anchor: date(2025, time.March, 10), // Monday, week 11 (odd)
		View:   ViewWeek,
		Layout: LayoutPrecision,
	})

	byDay := map[string]DayColumn{}
	for _, col := range view.Days {
		byDay[col.Day] = col
	}

	// Odd week: the alternating Monday class appears now.
	mon := byDay["Monday"]
	if len(mon.Events) != 1 || mon.Events[0].Precision == nil {
		t.Fatalf("monday events = %+v", mon.Events)
	}
	if !almostEqual(mon.Events[0].Precision.OffsetPercent, 0) {
		t.Fatalf("08:00 class offset = %v, want 0", mon.Events[0].Precision.OffsetPercent)
	}

	// Precision mode has no grid and drops nothing: out-of-window events
	// simply overflow.
	if byDay["Sunday"].Grid != nil {
		t.Fatalf("precision column carries a slot grid")
	}
	if len(byDay["Sunday"].Events) != 3 {
		t.Fatalf("sunday has %d events, want all 3", len(byDay["Sunday"].Events))
	}
	if len(view.Dropped) != 0 {
		t.Fatalf("precision mode dropped %v", view.Dropped)
	}
}

func TestComposeTwoWeekParityFlips(t *testing.T) {
	events := []models.ScheduleEvent{
		mkEvent("alt", "Monday", "08:00", "09:15", RecurOdd),
	}
	view := Compose(events, Options{
		Anchor:      date(2025, time.March, 3), // week 10
		View:        ViewTwoWeek,
		Layout:      LayoutClassic,
		VisibleDays: []string{"Monday"},
	})

	if len(view.Days) != 2 {
		t.Fatalf("2-week view has %d columns, want 2", len(view.Days))
	}
	first, second := view.Days[0], view.Days[1]
	if first.WeekOffset != 0 || second.WeekOffset != 1 {
		t.Fatalf("offsets %d/%d, want 0/1", first.WeekOffset, second.WeekOffset)
	}
	if first.Date != "2025-03-03" || second.Date != "2025-03-10" {
		t.Fatalf("dates %s/%s", first.Date, second.Date)
	}
	if len(first.Events) != 0 {
		t.Fatalf("alternating class present in even week")
	}
	if len(second.Events) != 1 {
		t.Fatalf("alternating class missing from odd week")
	}
}

func TestComposeVisibleDaysSubsetAndOrder(t *testing.T) {
	view := Compose(sampleEvents(), Options{
		Anchor:      date(2025, time.March, 3),
		View:        ViewWeek,
		Layout:      LayoutClassic,
		VisibleDays: []string{"Friday", "Sunday"},
	})
	if len(view.Days) != 2 {
		t.Fatalf("got %d columns, want 2", len(view.Days))
	}
	// Caller-supplied ordering is preserved.
	if view.Days[0].Day != "Friday" || view.Days[1].Day != "Sunday" {
		t.Fatalf("column order %s/%s", view.Days[0].Day, view.Days[1].Day)
	}
}

func TestComposeMonthView(t *testing.T) {
	view := Compose(sampleEvents(), Options{
		Anchor: date(2025, time.March, 15),
		View:   ViewMonth,
	})

	if len(view.Days) != 31 {
		t.Fatalf("march has %d columns, want 31", len(view.Days))
	}
	if view.Days[0].Date != "2025-03-01" || view.Days[30].Date != "2025-03-31" {
		t.Fatalf("month range %s..%s", view.Days[0].Date, view.Days[30].Date)
	}
	for _, col := range view.Days {
		if col.Grid != nil {
			t.Fatalf("month view column %s carries a slot grid", col.Date)
		}
		for _, pe := range col.Events {
			if pe.Slot != nil || pe.Precision != nil {
				t.Fatalf("month view event %s carries layout coordinates", pe.ID)
			}
		}
	}
	// Sundays in March 2025: 2, 9, 16, 23, 30 -> the weekly Sunday class
	// appears five times; the odd Monday class only on odd weeks (10, 24).
	sundays, oddMondays := 0, 0
	for _, col := range view.Days {
		for _, pe := range col.Events {
			if pe.ID == "sun-class" {
				sundays++
			}
			if pe.ID == "mon-odd" {
				oddMondays++
			}
		}
	}
	if sundays != 5 {
		t.Fatalf("weekly sunday class appeared %d times, want 5", sundays)
	}
	if oddMondays != 2 {
		t.Fatalf("alternating monday class appeared %d times, want 2", oddMondays)
	}
}

func TestComposeDefaults(t *testing.T) {
	view := Compose(nil, Options{
		Anchor: date(2025, time.March, 3),
		View:   ViewWeek,
	})
	if view.Layout != LayoutPrecision {
		t.Fatalf("default layout %s, want precision", view.Layout)
	}
	if len(view.Days) != 7 {
		t.Fatalf("default visible days produced %d columns, want 7", len(view.Days))
	}
	if view.Days[0].Day != "Saturday" {
		t.Fatalf("week starts on %s, want Saturday", view.Days[0].Day)
	}
}

func TestParseModes(t *testing.T) {
	if _, ok := ParseViewMode("fortnight"); ok {
		t.Errorf("accepted unknown view mode")
	}
	if v, ok := ParseViewMode("2week"); !ok || v != ViewTwoWeek {
		t.Errorf("2week not accepted")
	}
	if _, ok := ParseLayoutMode("compact"); ok {
		t.Errorf("accepted unknown layout mode")
	}
	if l, ok := ParseLayoutMode("classic"); !ok || l != LayoutClassic {
		t.Errorf("classic not accepted")
	}
}
