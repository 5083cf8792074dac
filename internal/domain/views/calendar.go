package views

import (
	"time"

	"github.com/dentalcare/clinic/internal/domain/records"
)

// Cell is one calendar day with the appointments falling on it.
type Cell struct {
	Date      time.Time          `json:"date"`
	InMonth   bool               `json:"inMonth"`
	Incidents []records.Incident `json:"incidents"`
}

// MonthGrid builds the 42-cell, Sunday-first grid for a month: six full
// weeks starting at the Sunday on or before the 1st, so leading and
// trailing days of adjacent months are included and marked.
func MonthGrid(year int, month time.Month, incidents []records.Incident) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]Cell, 42)
	for i := range cells {
		day := start.AddDate(0, 0, i)
		cells[i] = Cell{
			Date:      day,
			InMonth:   day.Month() == month,
			Incidents: bucket(day, incidents),
		}
	}
	return cells
}

// Week builds the 7-day, Sunday-first week containing date.
func Week(date time.Time, incidents []records.Incident) []Cell {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start := day.AddDate(0, 0, -int(day.Weekday()))

	cells := make([]Cell, 7)
	for i := range cells {
		d := start.AddDate(0, 0, i)
		cells[i] = Cell{
			Date:      d,
			InMonth:   true,
			Incidents: bucket(d, incidents),
		}
	}
	return cells
}

// bucket keeps incidents whose appointment falls on the given day.
func bucket(day time.Time, incidents []records.Incident) []records.Incident {
	out := []records.Incident{}
	for _, i := range incidents {
		if SameDay(day, i.AppointmentDate) {
			out = append(out, i)
		}
	}
	return out
}
