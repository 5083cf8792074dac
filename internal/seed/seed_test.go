package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic/internal/domain/records"
	"github.com/dentalcare/clinic/internal/domain/session"
	"github.com/dentalcare/clinic/internal/platform/clock"
	"github.com/dentalcare/clinic/internal/storage"
)

func TestEnsureDefaultsSeedsOnFirstRun(t *testing.T) {
	gw, err := storage.New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}

	if err := EnsureDefaults(gw, zerolog.Nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	users, err := session.NewUserRepo(gw)
	if err != nil {
		t.Fatalf("user repo: %v", err)
	}
	if got := len(users.List(context.Background())); got != 3 {
		t.Errorf("users = %d, want 3", got)
	}
	admin, ok := users.GetByEmail(context.Background(), "admin@entnt.in")
	if !ok {
		t.Fatal("admin account missing")
	}
	if admin.Role != "Admin" || admin.Password != "admin123" {
		t.Errorf("admin = %+v", admin)
	}

	clk := clock.System{}
	patients, err := records.NewPatientRepo(gw, clk)
	if err != nil {
		t.Fatalf("patient repo: %v", err)
	}
	if got := len(patients.List(context.Background())); got != 2 {
		t.Errorf("patients = %d, want 2", got)
	}

	incidents, err := records.NewIncidentRepo(gw, clk)
	if err != nil {
		t.Fatalf("incident repo: %v", err)
	}
	if got := len(incidents.List(context.Background())); got != 3 {
		t.Errorf("incidents = %d, want 3", got)
	}
}

func TestSeedReferentialIntegrity(t *testing.T) {
	ids := make(map[string]bool)
	for _, p := range Patients() {
		ids[p.ID] = true
	}
	for _, i := range Incidents() {
		if !ids[i.PatientID] {
			t.Errorf("incident %s references unknown patient %s", i.ID, i.PatientID)
		}
		if i.UpdatedAt.Before(i.CreatedAt) {
			t.Errorf("incident %s has updatedAt before createdAt", i.ID)
		}
	}
	for _, u := range Users() {
		if u.Role == "Patient" && !ids[u.PatientID] {
			t.Errorf("user %s references unknown patient %s", u.ID, u.PatientID)
		}
	}
}

func TestSeedUserIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, u := range Users() {
		if seen[u.ID] {
			t.Errorf("duplicate user id %s", u.ID)
		}
		seen[u.ID] = true
	}
}

func TestEnsureDefaultsDoesNotOverwrite(t *testing.T) {
	gw, err := storage.New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	if err := EnsureDefaults(gw, zerolog.Nop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// wipe the patient collection, keep the file
	if err := gw.Save(storage.CollectionPatients, []records.Patient{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := EnsureDefaults(gw, zerolog.Nop()); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	var patients []records.Patient
	if err := gw.Load(storage.CollectionPatients, &patients); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(patients) != 0 {
		t.Errorf("existing collection was overwritten: %d patients", len(patients))
	}
}

func TestForceReseeds(t *testing.T) {
	gw, err := storage.New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	if err := gw.Save(storage.CollectionPatients, []records.Patient{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := gw.Save(storage.CollectionSession, session.Persisted{UserID: "1"}); err != nil {
		t.Fatalf("save session: %v", err)
	}

	if err := Force(gw, zerolog.Nop()); err != nil {
		t.Fatalf("force: %v", err)
	}

	var patients []records.Patient
	if err := gw.Load(storage.CollectionPatients, &patients); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(patients) != 2 {
		t.Errorf("patients = %d, want 2", len(patients))
	}
	if gw.Exists(storage.CollectionSession) {
		t.Error("force seed should clear the persisted session")
	}
}
