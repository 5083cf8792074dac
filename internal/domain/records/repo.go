package records

import "context"

// PatientRepository holds the patient collection. Create assigns the ID and
// creation timestamp. Update and Delete report whether the ID matched;
// an absent ID is a no-op, not an error.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	Update(ctx context.Context, id string, patch PatientPatch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*Patient, bool)
	List(ctx context.Context) []Patient
}

// IncidentRepository holds the incident collection. Create stamps ID,
// CreatedAt and UpdatedAt; Update refreshes UpdatedAt on every applied
// patch.
type IncidentRepository interface {
	Create(ctx context.Context, in *Incident) error
	Update(ctx context.Context, id string, patch IncidentPatch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByPatient(ctx context.Context, patientID string) (int, error)
	GetByID(ctx context.Context, id string) (*Incident, bool)
	ListByPatient(ctx context.Context, patientID string) []Incident
	List(ctx context.Context) []Incident
}
