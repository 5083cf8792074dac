package views

import (
	"context"
	"sort"
	"time"

	"github.com/dentalcare/clinic/internal/domain/records"
	"github.com/dentalcare/clinic/internal/platform/auth"
	"github.com/dentalcare/clinic/internal/platform/clock"
)

const (
	maxNextAppointments = 10
	maxTopPatients      = 5
)

// Service computes read-only views over the record store. Patient-role
// callers are hard-scoped to their own incidents here, not in handlers.
type Service struct {
	records *records.Service
	clock   clock.Clock
}

func NewService(rec *records.Service, clk clock.Clock) *Service {
	return &Service{records: rec, clock: clk}
}

// AppointmentSummary is an incident enriched with its patient's name.
type AppointmentSummary struct {
	Incident    records.Incident `json:"incident"`
	PatientName string           `json:"patientName"`
}

// PatientActivity ranks a patient by incident count.
type PatientActivity struct {
	PatientID     string `json:"patientId"`
	PatientName   string `json:"patientName"`
	IncidentCount int    `json:"incidentCount"`
}

// AdminDashboard is the clinic-wide KPI view.
type AdminDashboard struct {
	TotalPatients         int                            `json:"totalPatients"`
	TotalIncidents        int                            `json:"totalIncidents"`
	StatusCounts          map[records.IncidentStatus]int `json:"statusCounts"`
	TotalRevenue          float64                        `json:"totalRevenue"`
	CompletionRate        float64                        `json:"completionRate"`
	PatientsWithIncidents int                            `json:"patientsWithIncidents"`
	NextAppointments      []AppointmentSummary           `json:"nextAppointments"`
	TopPatients           []PatientActivity              `json:"topPatients"`
}

// PatientDashboard is a patient's own view of their care.
type PatientDashboard struct {
	Upcoming   []records.Incident `json:"upcoming"`
	History    []records.Incident `json:"history"`
	TotalSpent float64            `json:"totalSpent"`
}

// IncidentQuery narrows an incident listing.
type IncidentQuery struct {
	Status records.IncidentStatus
	When   string // "upcoming", "past", or ""
	Sort   string // "asc" (default) or "desc"
}

// Dashboard builds the admin KPI view from the current snapshot.
func (s *Service) Dashboard(ctx context.Context) AdminDashboard {
	incidents := s.records.ListIncidents(ctx)
	patients := s.records.ListPatients(ctx)

	names := make(map[string]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.Name
	}

	next := SortByDate(Upcoming(s.clock, incidents), false)
	if len(next) > maxNextAppointments {
		next = next[:maxNextAppointments]
	}
	summaries := make([]AppointmentSummary, 0, len(next))
	for _, i := range next {
		summaries = append(summaries, AppointmentSummary{Incident: i, PatientName: names[i.PatientID]})
	}

	return AdminDashboard{
		TotalPatients:         len(patients),
		TotalIncidents:        len(incidents),
		StatusCounts:          StatusCounts(incidents),
		TotalRevenue:          TotalRevenue(incidents),
		CompletionRate:        CompletionRate(incidents),
		PatientsWithIncidents: DistinctPatients(incidents),
		NextAppointments:      summaries,
		TopPatients:           s.topPatients(incidents, names),
	}
}

func (s *Service) topPatients(incidents []records.Incident, names map[string]string) []PatientActivity {
	counts := make(map[string]int)
	order := []string{}
	for _, i := range incidents {
		if counts[i.PatientID] == 0 {
			order = append(order, i.PatientID)
		}
		counts[i.PatientID]++
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if len(order) > maxTopPatients {
		order = order[:maxTopPatients]
	}
	top := make([]PatientActivity, 0, len(order))
	for _, id := range order {
		top = append(top, PatientActivity{PatientID: id, PatientName: names[id], IncidentCount: counts[id]})
	}
	return top
}

// MyDashboard builds a patient's own dashboard.
func (s *Service) MyDashboard(ctx context.Context, patientID string) PatientDashboard {
	own := s.records.GetPatientIncidents(ctx, patientID)
	return PatientDashboard{
		Upcoming:   SortByDate(Upcoming(s.clock, own), false),
		History:    SortByDate(Past(s.clock, own), true),
		TotalSpent: TotalRevenue(own),
	}
}

// Incidents lists incidents for the caller, narrowed by the query.
// Patient callers only ever see their own, whatever they ask for.
func (s *Service) Incidents(ctx context.Context, caller auth.Identity, q IncidentQuery) []records.Incident {
	var in []records.Incident
	if caller.IsPatient() {
		in = s.records.GetPatientIncidents(ctx, caller.PatientID)
	} else {
		in = s.records.ListIncidents(ctx)
	}

	if q.Status != "" {
		in = ByStatus(in, q.Status)
	}
	switch q.When {
	case "upcoming":
		in = Upcoming(s.clock, in)
	case "past":
		in = Past(s.clock, in)
	}
	return SortByDate(in, q.Sort == "desc")
}

// Month builds the month grid for the caller's visible incidents.
func (s *Service) Month(ctx context.Context, caller auth.Identity, year int, month time.Month) []Cell {
	return MonthGrid(year, month, s.visible(ctx, caller))
}

// CurrentWeek builds the week view containing date.
func (s *Service) CurrentWeek(ctx context.Context, caller auth.Identity, date time.Time) []Cell {
	return Week(date, s.visible(ctx, caller))
}

func (s *Service) visible(ctx context.Context, caller auth.Identity) []records.Incident {
	if caller.IsPatient() {
		return s.records.GetPatientIncidents(ctx, caller.PatientID)
	}
	return s.records.ListIncidents(ctx)
}
