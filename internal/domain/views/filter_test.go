package views

import (
	"testing"
	"time"

	"github.com/dentalcare/clinic/internal/domain/records"
	"github.com/dentalcare/clinic/internal/platform/clock"
)

var testNow = time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)

func TestIsUpcoming(t *testing.T) {
	clk := clock.NewFixed(testNow)

	if !IsUpcoming(clk, testNow.Add(time.Minute)) {
		t.Error("one minute ahead should be upcoming")
	}
	if IsUpcoming(clk, testNow) {
		t.Error("exactly now is not upcoming")
	}
	if IsUpcoming(clk, testNow.Add(-time.Minute)) {
		t.Error("past is not upcoming")
	}
}

func TestIsToday(t *testing.T) {
	clk := clock.NewFixed(testNow)

	if !IsToday(clk, testNow.Add(8*time.Hour)) {
		t.Error("same calendar day should be today")
	}
	if IsToday(clk, testNow.AddDate(0, 0, 1)) {
		t.Error("tomorrow is not today")
	}
}

func TestUpcomingAndPastPartition(t *testing.T) {
	clk := clock.NewFixed(testNow)
	incidents := []records.Incident{
		{ID: "past", AppointmentDate: testNow.Add(-time.Hour)},
		{ID: "future", AppointmentDate: testNow.Add(time.Hour)},
		{ID: "exact", AppointmentDate: testNow},
	}

	up := Upcoming(clk, incidents)
	if len(up) != 1 || up[0].ID != "future" {
		t.Errorf("Upcoming = %+v, want only future", up)
	}

	past := Past(clk, incidents)
	if len(past) != 2 {
		t.Errorf("Past = %d incidents, want 2", len(past))
	}
}

func TestByStatus(t *testing.T) {
	incidents := []records.Incident{
		{ID: "a", Status: records.StatusScheduled},
		{ID: "b", Status: records.StatusCompleted},
	}
	got := ByStatus(incidents, records.StatusCompleted)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("ByStatus = %+v, want only b", got)
	}
}

func TestByPatient(t *testing.T) {
	incidents := []records.Incident{
		{ID: "a", PatientID: "p1"},
		{ID: "b", PatientID: "p2"},
		{ID: "c", PatientID: "p1"},
	}
	got := ByPatient(incidents, "p1")
	if len(got) != 2 {
		t.Fatalf("ByPatient = %d, want 2", len(got))
	}
	for _, i := range got {
		if i.PatientID != "p1" {
			t.Errorf("foreign incident %s in result", i.ID)
		}
	}
}

func TestSortByDateStable(t *testing.T) {
	sameTime := testNow.Add(time.Hour)
	incidents := []records.Incident{
		{ID: "late", AppointmentDate: testNow.Add(2 * time.Hour)},
		{ID: "tie1", AppointmentDate: sameTime},
		{ID: "tie2", AppointmentDate: sameTime},
		{ID: "early", AppointmentDate: testNow},
	}

	asc := SortByDate(incidents, false)
	wantAsc := []string{"early", "tie1", "tie2", "late"}
	for i, id := range wantAsc {
		if asc[i].ID != id {
			t.Errorf("asc[%d] = %s, want %s", i, asc[i].ID, id)
		}
	}

	desc := SortByDate(incidents, true)
	wantDesc := []string{"late", "tie1", "tie2", "early"}
	for i, id := range wantDesc {
		if desc[i].ID != id {
			t.Errorf("desc[%d] = %s, want %s", i, desc[i].ID, id)
		}
	}

	// input untouched
	if incidents[0].ID != "late" {
		t.Error("SortByDate must not mutate its input")
	}
}
