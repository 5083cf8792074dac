package records

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports caller-supplied data that failed shape checks,
// as a field→message mapping.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	ve, ok := err.(*ValidationError)
	return ve, ok
}

// Service is the record store: validated mutations over the patient and
// incident collections, with cascade delete keeping referential integrity.
type Service struct {
	patients  PatientRepository
	incidents IncidentRepository
	validate  *validator.Validate
}

func NewService(patients PatientRepository, incidents IncidentRepository) *Service {
	validate := validator.New()
	// report failures under the json field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Service{
		patients:  patients,
		incidents: incidents,
		validate:  validate,
	}
}

// checkStruct runs tag validation and converts failures to a field→message
// map keyed by the field's json name.
func (s *Service) checkStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[name] = "is required"
		case "email":
			fields[name] = "must be a valid email address"
		default:
			fields[name] = "is invalid"
		}
	}
	return &ValidationError{Fields: fields}
}

// AddPatient validates p, assigns identity and creation time, and persists.
func (s *Service) AddPatient(ctx context.Context, p *Patient) error {
	if err := s.checkStruct(p); err != nil {
		return err
	}
	return s.patients.Create(ctx, p)
}

// UpdatePatient merges the patch into the matching patient. An absent ID is
// a no-op reported through the bool.
func (s *Service) UpdatePatient(ctx context.Context, id string, patch PatientPatch) (bool, error) {
	return s.patients.Update(ctx, id, patch)
}

// DeletePatient removes the patient and cascades: every incident whose
// patientId matches is removed too. Both collections are persisted.
func (s *Service) DeletePatient(ctx context.Context, id string) (bool, error) {
	found, err := s.patients.Delete(ctx, id)
	if err != nil || !found {
		return found, err
	}
	if _, err := s.incidents.DeleteByPatient(ctx, id); err != nil {
		return true, fmt.Errorf("cascade delete incidents for patient %s: %w", id, err)
	}
	return true, nil
}

// AddIncident validates in, requires its patient to exist, defaults the
// status to Scheduled, and persists with createdAt == updatedAt.
func (s *Service) AddIncident(ctx context.Context, in *Incident) error {
	if err := s.checkStruct(in); err != nil {
		return err
	}
	if in.Status == "" {
		in.Status = StatusScheduled
	}
	if !ValidStatus(in.Status) {
		return &ValidationError{Fields: map[string]string{
			"status": fmt.Sprintf("unknown status %q", in.Status),
		}}
	}
	if _, ok := s.patients.GetByID(ctx, in.PatientID); !ok {
		return &ValidationError{Fields: map[string]string{
			"patientId": "no such patient",
		}}
	}
	return s.incidents.Create(ctx, in)
}

// UpdateIncident merges the patch and refreshes updatedAt.
func (s *Service) UpdateIncident(ctx context.Context, id string, patch IncidentPatch) (bool, error) {
	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return false, &ValidationError{Fields: map[string]string{
			"status": fmt.Sprintf("unknown status %q", *patch.Status),
		}}
	}
	return s.incidents.Update(ctx, id, patch)
}

// DeleteIncident removes the incident and, with it, its attachments.
func (s *Service) DeleteIncident(ctx context.Context, id string) (bool, error) {
	return s.incidents.Delete(ctx, id)
}

// AttachFile appends an encoded attachment to the incident's file list.
func (s *Service) AttachFile(ctx context.Context, incidentID string, f FileAttachment) (bool, error) {
	in, ok := s.incidents.GetByID(ctx, incidentID)
	if !ok {
		return false, nil
	}
	files := append(in.Files, f)
	return s.incidents.Update(ctx, incidentID, IncidentPatch{Files: &files})
}

// RemoveFile removes the attachment with the given ID from the incident.
// The second bool reports whether the file was present.
func (s *Service) RemoveFile(ctx context.Context, incidentID, fileID string) (bool, error) {
	in, ok := s.incidents.GetByID(ctx, incidentID)
	if !ok {
		return false, nil
	}
	files := make([]FileAttachment, 0, len(in.Files))
	removed := false
	for _, f := range in.Files {
		if f.ID == fileID {
			removed = true
			continue
		}
		files = append(files, f)
	}
	if !removed {
		return false, nil
	}
	return s.incidents.Update(ctx, incidentID, IncidentPatch{Files: &files})
}

// GetPatientByID looks up a patient; absence is reported, not an error.
func (s *Service) GetPatientByID(ctx context.Context, id string) (*Patient, bool) {
	return s.patients.GetByID(ctx, id)
}

// GetIncidentByID looks up an incident.
func (s *Service) GetIncidentByID(ctx context.Context, id string) (*Incident, bool) {
	return s.incidents.GetByID(ctx, id)
}

// GetPatientIncidents returns every incident for the patient, unfiltered.
func (s *Service) GetPatientIncidents(ctx context.Context, patientID string) []Incident {
	return s.incidents.ListByPatient(ctx, patientID)
}

// ListPatients returns a snapshot copy of the patient collection.
func (s *Service) ListPatients(ctx context.Context) []Patient {
	return s.patients.List(ctx)
}

// ListIncidents returns a snapshot copy of the incident collection.
func (s *Service) ListIncidents(ctx context.Context) []Incident {
	return s.incidents.List(ctx)
}
