package views

import "github.com/dentalcare/clinic/internal/domain/records"

// TotalRevenue sums cost over completed incidents. A missing cost
// counts as zero.
func TotalRevenue(in []records.Incident) float64 {
	var total float64
	for _, i := range in {
		if i.Status != records.StatusCompleted {
			continue
		}
		if i.Cost != nil {
			total += *i.Cost
		}
	}
	return total
}

// CompletionRate is completed over total, with the denominator guarded
// so an empty list yields 0 rather than dividing by zero.
func CompletionRate(in []records.Incident) float64 {
	total := len(in)
	if total < 1 {
		total = 1
	}
	var completed int
	for _, i := range in {
		if i.Status == records.StatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(total)
}

// StatusCounts tallies incidents per status.
func StatusCounts(in []records.Incident) map[records.IncidentStatus]int {
	counts := make(map[records.IncidentStatus]int)
	for _, i := range in {
		counts[i.Status]++
	}
	return counts
}

// DistinctPatients counts patients with at least one incident.
func DistinctPatients(in []records.Incident) int {
	seen := make(map[string]bool)
	for _, i := range in {
		seen[i.PatientID] = true
	}
	return len(seen)
}
