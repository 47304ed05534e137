package timetable

import (
	"time"

	"dept-portal/models"
)

type ViewMode string

const (
	ViewDay     ViewMode = "day"
	ViewWeek    ViewMode = "week"
	ViewTwoWeek ViewMode = "2week"
	ViewMonth   ViewMode = "month"
)

// ParseViewMode validates a view mode coming from the query string.
func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewDay, ViewWeek, ViewTwoWeek, ViewMonth:
		return ViewMode(s), true
	}
	return "", false
}

type LayoutMode string

const (
	LayoutClassic   LayoutMode = "classic"
	LayoutPrecision LayoutMode = "precision"
)

// ParseLayoutMode validates a layout mode coming from the query string or the
// site settings.
func ParseLayoutMode(s string) (LayoutMode, bool) {
	switch LayoutMode(s) {
	case LayoutClassic, LayoutPrecision:
		return LayoutMode(s), true
	}
	return "", false
}

// Options configures one composition pass. Zero values fall back to all seven
// visible days, the default window and precision layout.
type Options struct {
	Anchor      time.Time
	View        ViewMode
	Layout      LayoutMode
	VisibleDays []string
	Window      Window
}

// PlacedEvent is an event plus its layout coordinates for the active mode.
// Day and month views stack events vertically and carry no placement.
type PlacedEvent struct {
	models.ScheduleEvent
	Slot      *SlotPlacement      `json:"slot,omitempty"`
	Precision *PrecisionPlacement `json:"precision,omitempty"`
}

// DayColumn is one rendered date: the resolved calendar date, its weekday,
// the slot grid backing it in classic mode and the placed events.
type DayColumn struct {
	Date       string        `json:"date"`
	Day        string        `json:"day"`
	WeekOffset int           `json:"weekOffset"`
	Grid       []TimeSlot    `json:"grid,omitempty"`
	Events     []PlacedEvent `json:"events"`
}

// View is the composed, renderable timetable.
type View struct {
	Mode       ViewMode    `json:"mode"`
	Layout     LayoutMode  `json:"layout"`
	WeekNumber int         `json:"weekNumber"`
	Days       []DayColumn `json:"days"`
	// Dropped lists ids of events whose time range overlaps no slot of their
	// grid in classic mode. They are omitted from the view rather than
	// clipped; callers log them.
	Dropped []string `json:"dropped,omitempty"`
}

const dateFormat = "2006-01-02"

// Compose resolves and lays out the event snapshot for one view. It is a pure
// function of its inputs; the snapshot is never mutated.
func Compose(events []models.ScheduleEvent, opts Options) View {
	if len(opts.VisibleDays) == 0 {
		opts.VisibleDays = Days
	}
	if opts.Window.Duration() <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Layout == "" {
		opts.Layout = LayoutPrecision
	}

	view := View{
		Mode:       opts.View,
		Layout:     opts.Layout,
		WeekNumber: WeekNumber(opts.Anchor),
	}

	switch opts.View {
	case ViewDay:
		date := midnight(opts.Anchor)
		view.Days = append(view.Days, DayColumn{
			Date:   date.Format(dateFormat),
			Day:    WeekdayName(date),
			Events: stack(EventsOnDate(events, date)),
		})

	case ViewWeek, ViewTwoWeek:
		offsets := []int{0}
		if opts.View == ViewTwoWeek {
			offsets = []int{0, 1}
		}
		for _, weekOffset := range offsets {
			for _, day := range opts.VisibleDays {
				date, ok := ResolveCalendarDate(opts.Anchor, day, weekOffset)
				if !ok {
					continue
				}
				col := DayColumn{
					Date:       date.Format(dateFormat),
					Day:        day,
					WeekOffset: weekOffset,
				}
				dayEvents := EventsOnDate(events, date)
				if opts.Layout == LayoutClassic {
					col.Grid = GridFor(day)
					for _, e := range dayEvents {
						p, ok := SlotSpan(e, col.Grid)
						if !ok {
							view.Dropped = append(view.Dropped, e.ID)
							continue
						}
						placement := p
						col.Events = append(col.Events, PlacedEvent{ScheduleEvent: e, Slot: &placement})
					}
				} else {
					for _, e := range dayEvents {
						p, err := Position(e, opts.Window)
						if err != nil {
							continue
						}
						placement := p
						col.Events = append(col.Events, PlacedEvent{ScheduleEvent: e, Precision: &placement})
					}
				}
				view.Days = append(view.Days, col)
			}
		}

	case ViewMonth:
		first := time.Date(opts.Anchor.Year(), opts.Anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		for date := first; date.Month() == first.Month(); date = date.AddDate(0, 0, 1) {
			view.Days = append(view.Days, DayColumn{
				Date:   date.Format(dateFormat),
				Day:    WeekdayName(date),
				Events: stack(EventsOnDate(events, date)),
			})
		}
	}

	return view
}

// stack wraps events without layout coordinates, keeping filter order.
func stack(events []models.ScheduleEvent) []PlacedEvent {
	out := make([]PlacedEvent, 0, len(events))
	for _, e := range events {
		out = append(out, PlacedEvent{ScheduleEvent: e})
	}
	return out
}
