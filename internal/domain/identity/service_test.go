package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

func newTestService() *Service {
	s := NewService(NewPatientRepoMem(), NewDoctorRepoMem(), idgen.NewFrom(0))
	s.now = func() time.Time { return time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestCreatePatient_AssignsIDAndDefaults(t *testing.T) {
	s := newTestService()
	p := &Patient{Name: "John Doe", Email: "john.doe@email.com"}
	if err := s.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("expected generated id")
	}
	if p.Status != PatientActive {
		t.Errorf("expected default status active, got %s", p.Status)
	}
}

func TestCreatePatient_Validation(t *testing.T) {
	s := newTestService()
	if err := s.CreatePatient(context.Background(), &Patient{Email: "a@b.com"}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := s.CreatePatient(context.Background(), &Patient{Name: "A", Email: "a@b.com", Status: "deceased"}); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestUpdatePatient_ShallowMerge(t *testing.T) {
	s := newTestService()
	p := &Patient{Name: "John Doe", Email: "john.doe@email.com", BloodType: "O+"}
	s.CreatePatient(context.Background(), p)

	critical := PatientCritical
	doctor := "Dr. Sarah Smith"
	got, err := s.UpdatePatient(context.Background(), p.ID, PatientPatch{
		Status:         &critical,
		AssignedDoctor: &doctor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != PatientCritical || got.AssignedDoctor != "Dr. Sarah Smith" {
		t.Errorf("patch not applied: %+v", got)
	}
	if got.BloodType != "O+" {
		t.Errorf("untouched field changed: %+v", got)
	}
}

func TestEnsurePatientForUser_Idempotent(t *testing.T) {
	s := newTestService()
	profile := SessionProfile{
		Name: "John Doe", Email: "john.doe@email.com",
		Phone: "+1-555-0003", DateOfBirth: "1985-06-15",
	}

	first, err := s.EnsurePatientForUser(context.Background(), profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.EnsurePatientForUser(context.Background(), profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same row on repeat, got %s and %s", first.ID, second.ID)
	}

	all, _ := s.ListPatients(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected 1 patient row, got %d", len(all))
	}
	if all[0].Age != 38 {
		t.Errorf("expected age 38 before the June birthday, got %d", all[0].Age)
	}
	if all[0].BloodType != "Unknown" {
		t.Errorf("expected Unknown blood type, got %s", all[0].BloodType)
	}
}

func TestEnsureDoctorForUser_DefaultsAndIdempotence(t *testing.T) {
	s := newTestService()
	profile := SessionProfile{Name: "Dr. New", Email: "dr.new@swasthtrack.com"}

	d, err := s.EnsureDoctorForUser(context.Background(), profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Specialization != "General Medicine" {
		t.Errorf("expected default specialization, got %s", d.Specialization)
	}
	if d.Rating != 4.5 || d.ConsultationFee != 150 {
		t.Errorf("unexpected defaults: rating=%v fee=%v", d.Rating, d.ConsultationFee)
	}
	if len(d.Availability) != 5 {
		t.Errorf("expected Mon-Fri availability, got %v", d.Availability)
	}

	if _, err := s.EnsureDoctorForUser(context.Background(), profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all, _ := s.ListDoctors(context.Background())
	if len(all) != 1 {
		t.Errorf("expected 1 doctor row, got %d", len(all))
	}
}

func TestDeleteDoctor(t *testing.T) {
	s := newTestService()
	d := &Doctor{Name: "Dr. Gone", Email: "gone@swasthtrack.com"}
	s.CreateDoctor(context.Background(), d)

	if err := s.DeleteDoctor(context.Background(), d.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.GetDoctor(context.Background(), d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPatientsAppendAtEnd(t *testing.T) {
	s := newTestService()
	for _, name := range []string{"First", "Second", "Third"} {
		s.CreatePatient(context.Background(), &Patient{Name: name, Email: name + "@email.com"})
	}
	all, _ := s.ListPatients(context.Background())
	if all[0].Name != "First" || all[2].Name != "Third" {
		t.Errorf("expected insertion order preserved, got %s..%s", all[0].Name, all[2].Name)
	}
}

func TestListByAssignedDoctor(t *testing.T) {
	repo := NewPatientRepoMem()
	s := NewService(repo, NewDoctorRepoMem(), idgen.NewFrom(0))
	s.CreatePatient(context.Background(), &Patient{Name: "A", Email: "a@e.com", AssignedDoctor: "Dr. Sarah Smith"})
	s.CreatePatient(context.Background(), &Patient{Name: "B", Email: "b@e.com", AssignedDoctor: "Dr. Michael Johnson"})
	s.CreatePatient(context.Background(), &Patient{Name: "C", Email: "c@e.com", AssignedDoctor: "Dr. Sarah Smith"})

	// Case-sensitive exact match only.
	got, _ := repo.ListByAssignedDoctor(context.Background(), "Dr. Sarah Smith")
	if len(got) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(got))
	}
	got, _ = repo.ListByAssignedDoctor(context.Background(), "dr. sarah smith")
	if len(got) != 0 {
		t.Errorf("expected case-sensitive match to find none, got %d", len(got))
	}
}

func TestAgeFromDateOfBirth(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		dob  string
		want int
	}{
		{"1990-06-15", 34}, // birthday today
		{"1990-06-16", 33}, // birthday tomorrow
		{"1990-06-14", 34}, // birthday yesterday
		{"1990-12-01", 33}, // birthday later this year
		{"1990-01-01", 34}, // birthday already passed
		{"2025-01-01", 0},  // future date clamps to zero
		{"", 0},
		{"not-a-date", 0},
	}
	for _, tc := range cases {
		if got := ageFromDateOfBirth(tc.dob, now); got != tc.want {
			t.Errorf("ageFromDateOfBirth(%q) = %d, want %d", tc.dob, got, tc.want)
		}
	}
}
