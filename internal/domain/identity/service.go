package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

// SessionProfile is the slice of a session user the auto-provisioner needs.
// Defined here so the domain does not depend on the auth package.
type SessionProfile struct {
	Name             string
	Email            string
	Phone            string
	DateOfBirth      string
	Address          string
	EmergencyContact string
	Specialization   string
	LicenseNumber    string
}

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
	ids      *idgen.Generator
	now      func() time.Time
}

func NewService(patients PatientRepository, doctors DoctorRepository, ids *idgen.Generator) *Service {
	return &Service{patients: patients, doctors: doctors, ids: ids, now: time.Now}
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Email == "" {
		return fmt.Errorf("email is required")
	}
	if p.Status == "" {
		p.Status = PatientActive
	}
	if !validPatientStatuses[p.Status] {
		return fmt.Errorf("invalid patient status: %s", p.Status)
	}
	if p.ID == "" {
		p.ID = s.ids.Next(idgen.PrefixPatient)
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, id string, patch PatientPatch) (*Patient, error) {
	if patch.Status != nil && !validPatientStatuses[*patch.Status] {
		return nil, fmt.Errorf("invalid patient status: %s", *patch.Status)
	}
	return s.patients.Update(ctx, id, patch)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

// ListPatientsForDoctor returns the patients assigned to a doctor. The match
// on the doctor's display name is exact and case-sensitive.
func (s *Service) ListPatientsForDoctor(ctx context.Context, doctorName string) ([]*Patient, error) {
	return s.patients.ListByAssignedDoctor(ctx, doctorName)
}

// EnsurePatientForUser provisions a patient row for a signed-in patient who
// does not have one yet, keyed by email. Calling it repeatedly for the same
// user is a no-op after the first call.
func (s *Service) EnsurePatientForUser(ctx context.Context, profile SessionProfile) (*Patient, error) {
	if existing, err := s.patients.GetByEmail(ctx, profile.Email); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p := &Patient{
		ID:               s.ids.Next(idgen.PrefixPatient),
		Name:             profile.Name,
		Email:            profile.Email,
		Phone:            profile.Phone,
		Age:              ageFromDateOfBirth(profile.DateOfBirth, s.now()),
		Gender:           "Not specified",
		DateOfBirth:      profile.DateOfBirth,
		Address:          profile.Address,
		EmergencyContact: profile.EmergencyContact,
		BloodType:        "Unknown",
		Allergies:        []string{},
		LastVisit:        s.now().Format("2006-01-02"),
		Status:           PatientActive,
		AssignedDoctor:   "",
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Email == "" {
		return fmt.Errorf("email is required")
	}
	if d.Status == "" {
		d.Status = DoctorActive
	}
	if !validDoctorStatuses[d.Status] {
		return fmt.Errorf("invalid doctor status: %s", d.Status)
	}
	if d.ID == "" {
		d.ID = s.ids.Next(idgen.PrefixDoctor)
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, id string, patch DoctorPatch) (*Doctor, error) {
	if patch.Status != nil && !validDoctorStatuses[*patch.Status] {
		return nil, fmt.Errorf("invalid doctor status: %s", *patch.Status)
	}
	return s.doctors.Update(ctx, id, patch)
}

func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.List(ctx)
}

// EnsureDoctorForUser provisions a doctor row for a signed-in doctor who
// does not have one yet, keyed by email. Idempotent per email.
func (s *Service) EnsureDoctorForUser(ctx context.Context, profile SessionProfile) (*Doctor, error) {
	if existing, err := s.doctors.GetByEmail(ctx, profile.Email); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	spec := profile.Specialization
	if spec == "" {
		spec = "General Medicine"
	}
	d := &Doctor{
		ID:              s.ids.Next(idgen.PrefixDoctor),
		Name:            profile.Name,
		Email:           profile.Email,
		Phone:           profile.Phone,
		Specialization:  spec,
		Experience:      0,
		Rating:          4.5,
		Patients:        0,
		ConsultationFee: 150,
		Availability:    []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		Status:          DoctorActive,
		LicenseNumber:   profile.LicenseNumber,
		JoinedDate:      s.now().Format("2006-01-02"),
	}
	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func ageFromDateOfBirth(dob string, now time.Time) int {
	if dob == "" {
		return 0
	}
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
