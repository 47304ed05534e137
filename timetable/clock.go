package timetable

import (
	"errors"
	"fmt"

	"dept-portal/models"
)

// Boundary validation errors. All are recoverable: the holder of a malformed
// event skips it, it never aborts a rendering pass.
var (
	ErrMalformedTime     = errors.New("time must be zero-padded 24-hour HH:MM")
	ErrUnknownWeekday    = errors.New("unknown weekday name")
	ErrUnknownRecurrence = errors.New("recurrence must be weekly, odd or even")
	ErrTimeOrder         = errors.New("start time must be before end time")
)

// ParseMinutes converts a zero-padded 24-hour "HH:MM" string to minutes since
// midnight. Anything else fails with ErrMalformedTime; lexical ordering of
// event times is only sound for strings this strict form accepts.
func ParseMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	for i := 0; i < 5; i++ {
		if i == 2 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return h*60 + m, nil
}

// ValidateEvent checks an event at the input boundary: known weekday, strict
// HH:MM times in order, known recurrence. Events failing these checks must be
// rejected before they reach the filter or layout calculators.
func ValidateEvent(e models.ScheduleEvent) error {
	if DayIndex(e.Day) < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownWeekday, e.Day)
	}
	start, err := ParseMinutes(e.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseMinutes(e.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("%w: %s >= %s", ErrTimeOrder, e.StartTime, e.EndTime)
	}
	switch e.Recurrence {
	case RecurWeekly, RecurOdd, RecurEven:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRecurrence, e.Recurrence)
	}
}

// wellFormed is the looser check used inside the filter: it tolerates an
// empty recurrence (treated as weekly) but still refuses events whose times
// would misorder lexical comparison.
func wellFormed(e models.ScheduleEvent) bool {
	if DayIndex(e.Day) < 0 {
		return false
	}
	if _, err := ParseMinutes(e.StartTime); err != nil {
		return false
	}
	if _, err := ParseMinutes(e.EndTime); err != nil {
		return false
	}
	return true
}
