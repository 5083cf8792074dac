// Package seed installs the demo dataset so a fresh data directory is
// usable without any setup: one admin, two patients with linked patient
// records, and three incidents.
package seed

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic/internal/domain/records"
	"github.com/dentalcare/clinic/internal/domain/session"
	"github.com/dentalcare/clinic/internal/storage"
)

func ts(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic("seed: bad timestamp " + v)
	}
	return t
}

func cost(v float64) *float64 { return &v }

// Users returns the demo login accounts.
func Users() []session.User {
	return []session.User{
		{ID: "1", Role: "Admin", Email: "admin@entnt.in", Password: "admin123", Name: "David Lee"},
		{ID: "2", Role: "Patient", Email: "john@entnt.in", Password: "patient123", PatientID: "p1", Name: "John Doe"},
		{ID: "3", Role: "Patient", Email: "emily@entnt.in", Password: "patient789", PatientID: "p2", Name: "Emily Johnson"},
	}
}

// Patients returns the demo patient records.
func Patients() []records.Patient {
	return []records.Patient{
		{
			ID:               "p1",
			Name:             "John Doe",
			DOB:              "1990-05-10",
			Contact:          "1234567890",
			Email:            "john@entnt.in",
			Address:          "123 Main St, City, State 12345",
			EmergencyContact: "0987654321",
			HealthInfo:       "No allergies",
			Allergies:        "None",
			Medications:      "None",
			CreatedAt:        ts("2025-04-10T11:00:00Z"),
		},
		{
			ID:               "p2",
			Name:             "Emily Johnson",
			DOB:              "1992-11-05",
			Contact:          "8765432109",
			Email:            "emily@entnt.in",
			Address:          "321 Maple St, Townsville, State 54321",
			EmergencyContact: "1122334455",
			HealthInfo:       "Asthma, uses inhaler occasionally",
			Allergies:        "Dust, pollen",
			Medications:      "Albuterol inhaler as needed",
			CreatedAt:        ts("2025-03-22T16:45:00Z"),
		},
	}
}

// Incidents returns the demo appointment records.
func Incidents() []records.Incident {
	return []records.Incident{
		{
			ID:              "i1",
			PatientID:       "p1",
			Title:           "Toothache",
			Description:     "Upper molar pain",
			Comments:        "Sensitive to cold",
			AppointmentDate: ts("2025-07-01T10:00:00Z"),
			Cost:            cost(80),
			Treatment:       "Tooth extraction, pain management",
			Status:          records.StatusCompleted,
			Files:           []records.FileAttachment{},
			CreatedAt:       ts("2025-06-01T14:20:00Z"),
			UpdatedAt:       ts("2025-06-10T16:00:00Z"),
		},
		{
			ID:              "i2",
			PatientID:       "p1",
			Title:           "Routine Dental Checkup",
			Description:     "Annual dental examination and cleaning",
			Comments:        "Patient advised regular flossing",
			AppointmentDate: ts("2025-08-10T10:30:00Z"),
			Status:          records.StatusScheduled,
			Files:           []records.FileAttachment{},
			CreatedAt:       ts("2025-01-15T11:00:00Z"),
			UpdatedAt:       ts("2025-08-10T12:00:00Z"),
		},
		{
			ID:              "i3",
			PatientID:       "p2",
			Title:           "Cavity Treatment - Molar",
			Description:     "Treated cavity on upper right molar with composite filling",
			Comments:        "Next check-up in 3 months",
			AppointmentDate: ts("2025-02-01T09:00:00Z"),
			Status:          records.StatusScheduled,
			Files:           []records.FileAttachment{},
			CreatedAt:       ts("2025-01-20T15:30:00Z"),
			UpdatedAt:       ts("2025-02-01T10:15:00Z"),
		},
	}
}

// EnsureDefaults seeds each collection that has never been written.
// Collections already on disk, even if emptied since, are left alone.
func EnsureDefaults(gw *storage.Gateway, log zerolog.Logger) error {
	seeded := false
	if !gw.Exists(storage.CollectionUsers) {
		if err := gw.Save(storage.CollectionUsers, Users()); err != nil {
			return err
		}
		seeded = true
	}
	if !gw.Exists(storage.CollectionPatients) {
		if err := gw.Save(storage.CollectionPatients, Patients()); err != nil {
			return err
		}
		seeded = true
	}
	if !gw.Exists(storage.CollectionIncidents) {
		if err := gw.Save(storage.CollectionIncidents, Incidents()); err != nil {
			return err
		}
		seeded = true
	}
	if seeded {
		log.Info().Str("dir", gw.Dir()).Msg("seeded demo dataset")
	}
	return nil
}

// Force overwrites every collection with the demo dataset and clears any
// persisted session.
func Force(gw *storage.Gateway, log zerolog.Logger) error {
	if err := gw.Save(storage.CollectionUsers, Users()); err != nil {
		return err
	}
	if err := gw.Save(storage.CollectionPatients, Patients()); err != nil {
		return err
	}
	if err := gw.Save(storage.CollectionIncidents, Incidents()); err != nil {
		return err
	}
	if err := gw.Remove(storage.CollectionSession); err != nil {
		return err
	}
	log.Info().Str("dir", gw.Dir()).Msg("reseeded demo dataset")
	return nil
}
