package records

import "time"

// IncidentStatus enumerates the lifecycle of an appointment incident.
type IncidentStatus string

const (
	StatusScheduled  IncidentStatus = "Scheduled"
	StatusInProgress IncidentStatus = "In Progress"
	StatusCompleted  IncidentStatus = "Completed"
	StatusCancelled  IncidentStatus = "Cancelled"
)

var validStatuses = map[IncidentStatus]bool{
	StatusScheduled:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

// ValidStatus reports whether s is one of the known incident statuses.
func ValidStatus(s IncidentStatus) bool { return validStatuses[s] }

// Patient is a long-lived clinic record. Incidents reference it by ID and
// are cascade-deleted with it.
type Patient struct {
	ID               string    `json:"id"`
	Name             string    `json:"name" validate:"required"`
	DOB              string    `json:"dob" validate:"required"`
	Contact          string    `json:"contact" validate:"required"`
	Email            string    `json:"email" validate:"required,email"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergencyContact"`
	HealthInfo       string    `json:"healthInfo"`
	Allergies        string    `json:"allergies"`
	Medications      string    `json:"medications"`
	CreatedAt        time.Time `json:"createdAt"`
}

// FileAttachment is an inline-encoded file owned by one incident. The URL
// carries the payload as a base64 data URL.
type FileAttachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Incident is an appointment/treatment record tied to one patient.
type Incident struct {
	ID                  string           `json:"id"`
	PatientID           string           `json:"patientId" validate:"required"`
	Title               string           `json:"title" validate:"required"`
	Description         string           `json:"description"`
	Comments            string           `json:"comments"`
	AppointmentDate     time.Time        `json:"appointmentDate" validate:"required"`
	Cost                *float64         `json:"cost,omitempty"`
	Treatment           string           `json:"treatment,omitempty"`
	Status              IncidentStatus   `json:"status"`
	NextAppointmentDate *time.Time       `json:"nextAppointmentDate,omitempty"`
	Files               []FileAttachment `json:"files"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// PatientPatch is a partial update applied field-by-field. Nil fields are
// left untouched.
type PatientPatch struct {
	Name             *string `json:"name,omitempty"`
	DOB              *string `json:"dob,omitempty"`
	Contact          *string `json:"contact,omitempty"`
	Email            *string `json:"email,omitempty"`
	Address          *string `json:"address,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
	HealthInfo       *string `json:"healthInfo,omitempty"`
	Allergies        *string `json:"allergies,omitempty"`
	Medications      *string `json:"medications,omitempty"`
}

// Apply merges the patch into p.
func (patch PatientPatch) Apply(p *Patient) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.DOB != nil {
		p.DOB = *patch.DOB
	}
	if patch.Contact != nil {
		p.Contact = *patch.Contact
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.EmergencyContact != nil {
		p.EmergencyContact = *patch.EmergencyContact
	}
	if patch.HealthInfo != nil {
		p.HealthInfo = *patch.HealthInfo
	}
	if patch.Medications != nil {
		p.Medications = *patch.Medications
	}
	if patch.Allergies != nil {
		p.Allergies = *patch.Allergies
	}
}

// IncidentPatch is a partial update for an incident. PatientID and
// timestamps are not patchable; UpdatedAt is stamped by the repository on
// every applied patch.
type IncidentPatch struct {
	Title               *string           `json:"title,omitempty"`
	Description         *string           `json:"description,omitempty"`
	Comments            *string           `json:"comments,omitempty"`
	AppointmentDate     *time.Time        `json:"appointmentDate,omitempty"`
	Cost                *float64          `json:"cost,omitempty"`
	Treatment           *string           `json:"treatment,omitempty"`
	Status              *IncidentStatus   `json:"status,omitempty"`
	NextAppointmentDate *time.Time        `json:"nextAppointmentDate,omitempty"`
	Files               *[]FileAttachment `json:"files,omitempty"`
}

// Apply merges the patch into in.
func (patch IncidentPatch) Apply(in *Incident) {
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.Comments != nil {
		in.Comments = *patch.Comments
	}
	if patch.AppointmentDate != nil {
		in.AppointmentDate = *patch.AppointmentDate
	}
	if patch.Cost != nil {
		in.Cost = patch.Cost
	}
	if patch.Treatment != nil {
		in.Treatment = *patch.Treatment
	}
	if patch.Status != nil {
		in.Status = *patch.Status
	}
	if patch.NextAppointmentDate != nil {
		in.NextAppointmentDate = patch.NextAppointmentDate
	}
	if patch.Files != nil {
		in.Files = *patch.Files
	}
}
