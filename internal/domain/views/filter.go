package views

import (
	"sort"

	"github.com/dentalcare/clinic/internal/domain/records"
	"github.com/dentalcare/clinic/internal/platform/clock"
)

// ByStatus keeps incidents with the given status.
func ByStatus(in []records.Incident, status records.IncidentStatus) []records.Incident {
	out := make([]records.Incident, 0, len(in))
	for _, i := range in {
		if i.Status == status {
			out = append(out, i)
		}
	}
	return out
}

// Upcoming keeps incidents scheduled after now.
func Upcoming(clk clock.Clock, in []records.Incident) []records.Incident {
	out := make([]records.Incident, 0, len(in))
	for _, i := range in {
		if IsUpcoming(clk, i.AppointmentDate) {
			out = append(out, i)
		}
	}
	return out
}

// Past keeps incidents scheduled at or before now.
func Past(clk clock.Clock, in []records.Incident) []records.Incident {
	out := make([]records.Incident, 0, len(in))
	for _, i := range in {
		if !IsUpcoming(clk, i.AppointmentDate) {
			out = append(out, i)
		}
	}
	return out
}

// ByPatient keeps incidents owned by the given patient.
func ByPatient(in []records.Incident, patientID string) []records.Incident {
	out := make([]records.Incident, 0, len(in))
	for _, i := range in {
		if i.PatientID == patientID {
			out = append(out, i)
		}
	}
	return out
}

// SortByDate orders incidents by appointment date. Ties keep their
// original order.
func SortByDate(in []records.Incident, descending bool) []records.Incident {
	out := make([]records.Incident, len(in))
	copy(out, in)
	sort.SliceStable(out, func(a, b int) bool {
		if descending {
			return out[a].AppointmentDate.After(out[b].AppointmentDate)
		}
		return out[a].AppointmentDate.Before(out[b].AppointmentDate)
	})
	return out
}
