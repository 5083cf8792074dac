package records

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dentalcare/clinic/internal/platform/clock"
	"github.com/dentalcare/clinic/internal/storage"
)

// PatientRepo is the write-through patient repository: mutations replace
// the in-memory collection and immediately persist the whole collection
// through the storage gateway. Insertion order is preserved.
type PatientRepo struct {
	mu       sync.RWMutex
	gw       *storage.Gateway
	clock    clock.Clock
	patients []Patient
}

// NewPatientRepo loads the patient collection from the gateway.
func NewPatientRepo(gw *storage.Gateway, clk clock.Clock) (*PatientRepo, error) {
	r := &PatientRepo{gw: gw, clock: clk}
	if err := gw.Load(storage.CollectionPatients, &r.patients); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PatientRepo) persist() error {
	return r.gw.Save(storage.CollectionPatients, r.patients)
}

func (r *PatientRepo) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = r.clock.Now()
	r.patients = append(r.patients, *p)
	return r.persist()
}

func (r *PatientRepo) Update(_ context.Context, id string, patch PatientPatch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.patients {
		if r.patients[i].ID == id {
			patch.Apply(&r.patients[i])
			return true, r.persist()
		}
	}
	return false, nil
}

func (r *PatientRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.patients {
		if r.patients[i].ID == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return true, r.persist()
		}
	}
	return false, nil
}

func (r *PatientRepo) GetByID(_ context.Context, id string) (*Patient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.patients {
		if r.patients[i].ID == id {
			p := r.patients[i]
			return &p, true
		}
	}
	return nil, false
}

func (r *PatientRepo) List(_ context.Context) []Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

// IncidentRepo is the write-through incident repository.
type IncidentRepo struct {
	mu        sync.RWMutex
	gw        *storage.Gateway
	clock     clock.Clock
	incidents []Incident
}

// NewIncidentRepo loads the incident collection from the gateway.
func NewIncidentRepo(gw *storage.Gateway, clk clock.Clock) (*IncidentRepo, error) {
	r := &IncidentRepo{gw: gw, clock: clk}
	if err := gw.Load(storage.CollectionIncidents, &r.incidents); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *IncidentRepo) persist() error {
	return r.gw.Save(storage.CollectionIncidents, r.incidents)
}

func (r *IncidentRepo) Create(_ context.Context, in *Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clock.Now()
	in.ID = uuid.NewString()
	in.CreatedAt = now
	in.UpdatedAt = now
	if in.Files == nil {
		in.Files = []FileAttachment{}
	}
	r.incidents = append(r.incidents, *in)
	return r.persist()
}

func (r *IncidentRepo) Update(_ context.Context, id string, patch IncidentPatch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.incidents {
		if r.incidents[i].ID == id {
			patch.Apply(&r.incidents[i])
			r.incidents[i].UpdatedAt = r.clock.Now()
			return true, r.persist()
		}
	}
	return false, nil
}

func (r *IncidentRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.incidents {
		if r.incidents[i].ID == id {
			r.incidents = append(r.incidents[:i], r.incidents[i+1:]...)
			return true, r.persist()
		}
	}
	return false, nil
}

func (r *IncidentRepo) DeleteByPatient(_ context.Context, patientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.incidents[:0]
	removed := 0
	for _, in := range r.incidents {
		if in.PatientID == patientID {
			removed++
			continue
		}
		kept = append(kept, in)
	}
	r.incidents = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, r.persist()
}

func (r *IncidentRepo) GetByID(_ context.Context, id string) (*Incident, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.incidents {
		if r.incidents[i].ID == id {
			in := cloneIncident(r.incidents[i])
			return &in, true
		}
	}
	return nil, false
}

func (r *IncidentRepo) ListByPatient(_ context.Context, patientID string) []Incident {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Incident
	for i := range r.incidents {
		if r.incidents[i].PatientID == patientID {
			out = append(out, cloneIncident(r.incidents[i]))
		}
	}
	return out
}

func (r *IncidentRepo) List(_ context.Context) []Incident {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Incident, len(r.incidents))
	for i := range r.incidents {
		out[i] = cloneIncident(r.incidents[i])
	}
	return out
}

// cloneIncident copies the incident and its attachment slice so callers
// cannot alias the stored collection.
func cloneIncident(in Incident) Incident {
	out := in
	if in.Files != nil {
		out.Files = make([]FileAttachment, len(in.Files))
		copy(out.Files, in.Files)
	}
	return out
}
