package timetable

import "dept-portal/models"

// SlotPlacement positions an event on a classic slot grid.
type SlotPlacement struct {
	StartIndex int `json:"startIndex"`
	Span       int `json:"span"`
}

// SlotSpan computes the first grid slot an event overlaps and how many slots
// it covers. An event overlaps a slot iff start < slot.End && end > slot.Start
// (half-open intersection), so a class starting mid-slot still lands in that
// slot and gaps between slots are skipped rather than counted. Slot widths
// are not assumed uniform.
//
// When no slot overlaps the event at all, ok is false and the placement
// carries Span 1 with StartIndex -1; callers drop such events from grid views
// and log them. Horizontal collision among events starting in the same slot
// is left to the renderer.
func SlotSpan(e models.ScheduleEvent, grid []TimeSlot) (SlotPlacement, bool) {
	p := SlotPlacement{StartIndex: -1}
	for i, slot := range grid {
		if e.StartTime < slot.End && e.EndTime > slot.Start {
			if p.StartIndex < 0 {
				p.StartIndex = i
			}
			p.Span++
		}
	}
	if p.Span == 0 {
		p.Span = 1
		return p, false
	}
	return p, true
}

// Window is the visible day range of precision mode, in minutes since
// midnight.
type Window struct {
	Start int
	End   int
}

// DefaultWindow is the institutional teaching day, 08:00 to 17:00.
var DefaultWindow = Window{Start: 8 * 60, End: 17 * 60}

// Duration returns the window length in minutes.
func (w Window) Duration() int {
	return w.End - w.Start
}

// PrecisionPlacement positions an event on a continuous percentage timeline.
type PrecisionPlacement struct {
	OffsetPercent float64 `json:"offsetPercent"`
	WidthPercent  float64 `json:"widthPercent"`
}

// Position maps an event onto the window as percentage offset and width.
// Events outside the window produce values outside [0,100]; nothing is
// clipped here, so width always reflects the true duration and overflow is
// the renderer's concern. Use Clamp where overflow is unacceptable.
func Position(e models.ScheduleEvent, w Window) (PrecisionPlacement, error) {
	start, err := ParseMinutes(e.StartTime)
	if err != nil {
		return PrecisionPlacement{}, err
	}
	end, err := ParseMinutes(e.EndTime)
	if err != nil {
		return PrecisionPlacement{}, err
	}
	dur := float64(w.Duration())
	return PrecisionPlacement{
		OffsetPercent: float64(start-w.Start) / dur * 100,
		WidthPercent:  float64(end-start) / dur * 100,
	}, nil
}

// Clamp restricts the placement to [0,100]. This shortens the apparent
// duration of events crossing the window edge, which is why Position does not
// do it silently.
func (p PrecisionPlacement) Clamp() PrecisionPlacement {
	left := p.OffsetPercent
	right := p.OffsetPercent + p.WidthPercent
	if left < 0 {
		left = 0
	}
	if left > 100 {
		left = 100
	}
	if right < left {
		right = left
	}
	if right > 100 {
		right = 100
	}
	return PrecisionPlacement{OffsetPercent: left, WidthPercent: right - left}
}
