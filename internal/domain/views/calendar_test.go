package views

import (
	"testing"
	"time"

	"github.com/dentalcare/clinic/internal/domain/records"
)

func TestMonthGridFebruary2025(t *testing.T) {
	cells := MonthGrid(2025, time.February, nil)

	if len(cells) != 42 {
		t.Fatalf("cells = %d, want 42", len(cells))
	}

	first := cells[0].Date
	if first.Weekday() != time.Sunday {
		t.Errorf("first cell weekday = %v, want Sunday", first.Weekday())
	}
	want := time.Date(2025, time.January, 26, 0, 0, 0, 0, time.UTC)
	if !first.Equal(want) {
		t.Errorf("first cell = %v, want %v", first, want)
	}

	last := cells[41].Date
	if !last.Equal(first.AddDate(0, 0, 41)) {
		t.Errorf("last cell = %v, want first+41d", last)
	}

	if cells[0].InMonth {
		t.Error("Jan 26 should be marked out of month")
	}
	// Feb 1 2025 is a Saturday, cell index 6
	if !cells[6].InMonth {
		t.Error("Feb 1 should be in month")
	}
	if !SameDay(cells[6].Date, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("cell 6 = %v, want Feb 1", cells[6].Date)
	}
}

func TestMonthGridStartsOnFirstWhenSunday(t *testing.T) {
	// June 1 2025 is a Sunday
	cells := MonthGrid(2025, time.June, nil)
	want := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !cells[0].Date.Equal(want) {
		t.Errorf("first cell = %v, want %v", cells[0].Date, want)
	}
	if !cells[0].InMonth {
		t.Error("June 1 should be in month")
	}
}

func TestMonthGridBucketsByCalendarDay(t *testing.T) {
	appt := time.Date(2025, time.February, 14, 15, 30, 0, 0, time.UTC)
	incidents := []records.Incident{
		{ID: "i1", PatientID: "p1", AppointmentDate: appt},
		{ID: "i2", PatientID: "p1", AppointmentDate: appt.Add(2 * time.Hour)},
		{ID: "i3", PatientID: "p2", AppointmentDate: appt.AddDate(0, 0, 1)},
	}

	cells := MonthGrid(2025, time.February, incidents)

	var valentines *Cell
	for i := range cells {
		if SameDay(cells[i].Date, appt) {
			valentines = &cells[i]
			break
		}
	}
	if valentines == nil {
		t.Fatal("no cell for Feb 14")
	}
	if len(valentines.Incidents) != 2 {
		t.Fatalf("Feb 14 incidents = %d, want 2", len(valentines.Incidents))
	}
	for _, i := range valentines.Incidents {
		if i.ID == "i3" {
			t.Error("Feb 15 incident bucketed into Feb 14")
		}
	}
}

func TestWeekContainsDate(t *testing.T) {
	// Wednesday
	date := time.Date(2025, time.February, 12, 10, 0, 0, 0, time.UTC)
	cells := Week(date, nil)

	if len(cells) != 7 {
		t.Fatalf("cells = %d, want 7", len(cells))
	}
	if cells[0].Date.Weekday() != time.Sunday {
		t.Errorf("week starts on %v, want Sunday", cells[0].Date.Weekday())
	}
	found := false
	for _, c := range cells {
		if SameDay(c.Date, date) {
			found = true
		}
	}
	if !found {
		t.Error("week does not contain the given date")
	}
}
