package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"dept-portal/models"
	"dept-portal/timetable"
)

// ParserService turns an uploaded routine spreadsheet into schedule events.
// The expected sheet layout is one header row followed by one event per row:
//
//	Day | Start | End | Type | Course ID | Course Name | Instructor | Room | Recurrence
//
// Times must be zero-padded 24-hour HH:MM. Rows failing validation are
// reported individually and do not abort the import.
type ParserService struct{}

func NewParserService() *ParserService {
	return &ParserService{}
}

// RowError describes one rejected spreadsheet row. Row numbers are 1-based as
// shown in spreadsheet applications.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

const importColumns = 9

// ParseRoutineXLSX reads the first sheet and returns the valid events plus
// per-row rejections.
func (s *ParserService) ParseRoutineXLSX(file io.Reader) ([]models.ScheduleEvent, []RowError, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("sheet has no data rows")
	}

	events := make([]models.ScheduleEvent, 0, len(rows)-1)
	rowErrors := make([]RowError, 0)

	for i, row := range rows[1:] {
		rowNum := i + 2 // header is row 1
		if isBlankRow(row) {
			continue
		}
		event, err := eventFromRow(row)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		events = append(events, event)
	}

	return events, rowErrors, nil
}

func eventFromRow(row []string) (models.ScheduleEvent, error) {
	cells := make([]string, importColumns)
	for i := 0; i < importColumns && i < len(row); i++ {
		cells[i] = strings.TrimSpace(row[i])
	}

	event := models.ScheduleEvent{
		ID:         "sched-" + uuid.NewString(),
		Day:        cells[0],
		StartTime:  cells[1],
		EndTime:    cells[2],
		Type:       cells[3],
		CourseID:   cells[4],
		CourseName: cells[5],
		Instructor: cells[6],
		Room:       cells[7],
		Recurrence: cells[8],
	}
	if event.Type == "" {
		event.Type = "Class"
	}
	if event.Recurrence == "" {
		event.Recurrence = timetable.RecurWeekly
	}

	if !validEventType(event.Type) {
		return models.ScheduleEvent{}, fmt.Errorf("unknown event type %q", event.Type)
	}
	if err := timetable.ValidateEvent(event); err != nil {
		return models.ScheduleEvent{}, err
	}
	return event, nil
}

func validEventType(t string) bool {
	for _, known := range timetable.EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
