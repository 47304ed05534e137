package timetable

// Days lists the weekday names in institutional order. The week starts on
// Saturday in this domain.
var Days = []string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// EventTypes is the closed set of schedule entry types.
var EventTypes = []string{"Class", "Lab", "Break", "Tiffin", "Prayer", "Exam"}

// Recurrence values.
const (
	RecurWeekly = "weekly"
	RecurOdd    = "odd"
	RecurEven   = "even"
)

// TimeSlot is one fixed interval of a classic-mode grid. Start and End are
// zero-padded 24-hour "HH:MM"; labels keep the institutional 12-hour form.
type TimeSlot struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeekdaySlots is the classic grid for Saturday through Thursday. Slots are in
// start-time order but are not contiguous: there is a 15-minute break after
// the second slot and a tiffin gap after the fourth.
var WeekdaySlots = []TimeSlot{
	{Label: "08:00-09:15", Start: "08:00", End: "09:15"},
	{Label: "09:15-10:30", Start: "09:15", End: "10:30"},
	{Label: "10:45-12:00", Start: "10:45", End: "12:00"},
	{Label: "12:00-01:15", Start: "12:00", End: "13:15"},
	{Label: "02:00-03:15", Start: "14:00", End: "15:15"},
	{Label: "03:15-04:30", Start: "15:15", End: "16:30"},
}

// FridaySlots is the distinct Friday grid; the fifth slot is the combined
// break/prayer interval.
var FridaySlots = []TimeSlot{
	{Label: "08:00-09:15", Start: "08:00", End: "09:15"},
	{Label: "09:15-10:30", Start: "09:15", End: "10:30"},
	{Label: "10:30-11:45", Start: "10:30", End: "11:45"},
	{Label: "11:45-01:00", Start: "11:45", End: "13:00"},
	{Label: "01:00-03:15", Start: "13:00", End: "15:15"},
	{Label: "03:15-04:30", Start: "15:15", End: "16:30"},
}

// GridFor returns the classic-mode slot grid used for the given weekday.
func GridFor(day string) []TimeSlot {
	if day == "Friday" {
		return FridaySlots
	}
	return WeekdaySlots
}

// DayIndex returns the position of the weekday name within the
// Saturday-first week, or -1 for an unknown name.
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}
