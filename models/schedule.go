package models

// ScheduleEvent is one timetable entry. Events recur weekly by default;
// recurrence "odd"/"even" restricts them to alternating ISO weeks.
type ScheduleEvent struct {
	ID          string `bson:"id" json:"id"`
	Day         string `bson:"day" json:"day"`
	StartTime   string `bson:"startTime" json:"startTime"` // zero-padded 24h "HH:MM"
	EndTime     string `bson:"endTime" json:"endTime"`
	Type        string `bson:"type" json:"type"` // Class, Lab, Break, Tiffin, Prayer, Exam
	CourseID    string `bson:"courseId" json:"courseId"`
	CourseName  string `bson:"courseName" json:"courseName"`
	Instructor  string `bson:"instructor" json:"instructor"`
	Room        string `bson:"room" json:"room"`
	Recurrence  string `bson:"recurrence" json:"recurrence"` // weekly, odd, even
	Color       string `bson:"color" json:"color"`           // presentation tag, opaque here
	IsCancelled bool   `bson:"isCancelled" json:"isCancelled"`
}

// Settings is the single site-wide settings document.
type Settings struct {
	VisibleDays         []string `bson:"visibleDays" json:"visibleDays"`
	DefaultScheduleView string   `bson:"defaultScheduleView" json:"defaultScheduleView"` // "classic" or "precision"
	RoutineImageKey     string   `bson:"routineImageKey" json:"routineImageKey"`
	SyllabusPDFKey      string   `bson:"syllabusPdfKey" json:"syllabusPdfKey"`
}
