package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func routineSheet(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	all := append([][]string{
		{"Day", "Start", "End", "Type", "Course ID", "Course Name", "Instructor", "Room", "Recurrence"},
	}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestParseRoutineXLSX(t *testing.T) {
	buf := routineSheet(t, [][]string{
		{"Sunday", "09:15", "10:30", "Class", "CSE-2101", "Algorithms", "Dr. Rahman", "301", "weekly"},
		{"Monday", "08:00", "09:15", "Lab", "CSE-2102", "Algorithms Lab", "", "Lab-2", "odd"},
		{"Tuesday", "10:45", "12:00", "", "", "Seminar", "", "", ""},
	})

	events, rowErrors, err := NewParserService().ParseRoutineXLSX(buf)
	if err != nil {
		t.Fatalf("ParseRoutineXLSX: %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("rowErrors = %+v, want none", rowErrors)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}

	if events[0].Day != "Sunday" || events[0].CourseID != "CSE-2101" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Recurrence != "odd" {
		t.Errorf("recurrence = %q, want odd", events[1].Recurrence)
	}
	// Blank type and recurrence fall back to defaults.
	if events[2].Type != "Class" || events[2].Recurrence != "weekly" {
		t.Errorf("defaults not applied: %+v", events[2])
	}
	for _, e := range events {
		if e.ID == "" {
			t.Error("expected generated id")
		}
	}
}

func TestParseRoutineXLSXRejectsBadRows(t *testing.T) {
	buf := routineSheet(t, [][]string{
		{"Sunday", "09:15", "10:30", "Class", "", "Good", "", "", ""},
		{"Funday", "09:15", "10:30", "Class", "", "Bad day", "", "", ""},
		{"Monday", "9:15", "10:30", "Class", "", "Bad time", "", "", ""},
		{"Monday", "10:30", "09:15", "Class", "", "Inverted", "", "", ""},
		{"Monday", "09:15", "10:30", "Recess", "", "Bad type", "", "", ""},
		{"", "", "", "", "", "", "", "", ""},
	})

	events, rowErrors, err := NewParserService().ParseRoutineXLSX(buf)
	if err != nil {
		t.Fatalf("ParseRoutineXLSX: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if len(rowErrors) != 4 {
		t.Fatalf("len(rowErrors) = %d, want 4: %+v", len(rowErrors), rowErrors)
	}
	// Rows are numbered as the spreadsheet shows them, header included.
	want := []int{3, 4, 5, 6}
	for i, re := range rowErrors {
		if re.Row != want[i] {
			t.Errorf("rowErrors[%d].Row = %d, want %d", i, re.Row, want[i])
		}
	}
}

func TestParseRoutineXLSXEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()

	if _, _, err := NewParserService().ParseRoutineXLSX(&buf); err == nil {
		t.Fatal("expected error for sheet without data rows")
	}
}
