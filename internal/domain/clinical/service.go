package clinical

import (
	"context"
	"fmt"
	"time"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

// Prescriptions without an explicit expiry run this many days from issue.
const prescriptionValidDays = 30

// Service validates clinical writes and derives vital statuses. Reads pass
// straight through to the repositories.
type Service struct {
	records       HealthRecordRepository
	vitals        VitalReadingRepository
	prescriptions PrescriptionRepository
	ids           *idgen.Generator
	now           func() time.Time
}

func NewService(records HealthRecordRepository, vitals VitalReadingRepository, prescriptions PrescriptionRepository, ids *idgen.Generator) *Service {
	return &Service{
		records:       records,
		vitals:        vitals,
		prescriptions: prescriptions,
		ids:           ids,
		now:           time.Now,
	}
}

func (s *Service) CreateRecord(ctx context.Context, r HealthRecord) (*HealthRecord, error) {
	if r.PatientName == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if r.DoctorName == "" {
		return nil, fmt.Errorf("doctor name is required")
	}
	if r.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if r.RecordType == "" {
		r.RecordType = RecordConsultation
	}
	if !validRecordTypes[r.RecordType] {
		return nil, fmt.Errorf("invalid record type: %s", r.RecordType)
	}
	if r.Status == "" {
		r.Status = RecordPending
	}
	if !validRecordStatuses[r.Status] {
		return nil, fmt.Errorf("invalid record status: %s", r.Status)
	}
	if r.Date == "" {
		r.Date = s.now().Format("2006-01-02")
	}
	if r.Attachments == nil {
		r.Attachments = []string{}
	}

	r.ID = s.ids.Next(idgen.PrefixHealthRecord)
	if err := s.records.Create(ctx, &r); err != nil {
		return nil, fmt.Errorf("create health record: %w", err)
	}
	return &r, nil
}

func (s *Service) UpdateRecord(ctx context.Context, id string, patch HealthRecordPatch) (*HealthRecord, error) {
	if patch.RecordType != nil && !validRecordTypes[*patch.RecordType] {
		return nil, fmt.Errorf("invalid record type: %s", *patch.RecordType)
	}
	if patch.Status != nil && !validRecordStatuses[*patch.Status] {
		return nil, fmt.Errorf("invalid record status: %s", *patch.Status)
	}
	if patch.Title != nil && *patch.Title == "" {
		return nil, fmt.Errorf("title cannot be cleared")
	}
	return s.records.Update(ctx, id, patch)
}

func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	return s.records.Delete(ctx, id)
}

func (s *Service) GetRecord(ctx context.Context, id string) (*HealthRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) ListRecords(ctx context.Context) ([]*HealthRecord, error) {
	return s.records.List(ctx)
}

func (s *Service) ListRecordsForPatient(ctx context.Context, name string) ([]*HealthRecord, error) {
	return s.records.ListByPatientName(ctx, name)
}

func (s *Service) ListRecordsForDoctor(ctx context.Context, name string) ([]*HealthRecord, error) {
	return s.records.ListByDoctorName(ctx, name)
}

// RecordVital stores a measurement. Unit and status come from the reading
// type; anything the caller sent in those fields is overwritten.
func (s *Service) RecordVital(ctx context.Context, v VitalReading) (*VitalReading, error) {
	if v.PatientName == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	unit, ok := vitalUnits[v.Type]
	if !ok {
		return nil, fmt.Errorf("invalid vital type: %s", v.Type)
	}
	if v.Value <= 0 {
		return nil, fmt.Errorf("value must be positive")
	}

	v.ID = s.ids.Next(idgen.PrefixVitalReading)
	v.Unit = unit
	v.Status = DeriveVitalStatus(v.Type, v.Value)
	if v.Timestamp == "" {
		v.Timestamp = s.now().Format(time.RFC3339)
	}

	if err := s.vitals.Create(ctx, &v); err != nil {
		return nil, fmt.Errorf("record vital: %w", err)
	}
	return &v, nil
}

func (s *Service) ListVitals(ctx context.Context) ([]*VitalReading, error) {
	return s.vitals.List(ctx)
}

func (s *Service) ListVitalsForPatient(ctx context.Context, name string) ([]*VitalReading, error) {
	return s.vitals.ListByPatientName(ctx, name)
}

// IssuePrescription creates an active prescription. At least one medication
// line with a name and dosage is required.
func (s *Service) IssuePrescription(ctx context.Context, p Prescription) (*Prescription, error) {
	if p.PatientName == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if p.DoctorName == "" {
		return nil, fmt.Errorf("doctor name is required")
	}
	if p.Diagnosis == "" {
		return nil, fmt.Errorf("diagnosis is required")
	}
	if len(p.Medications) == 0 {
		return nil, fmt.Errorf("at least one medication is required")
	}
	for i, m := range p.Medications {
		if m.Name == "" || m.Dosage == "" {
			return nil, fmt.Errorf("medication %d: name and dosage are required", i+1)
		}
	}
	if p.RefillsRemaining < 0 {
		return nil, fmt.Errorf("refills remaining cannot be negative")
	}
	if p.Date == "" {
		p.Date = s.now().Format("2006-01-02")
	}
	if p.ValidUntil == "" {
		issued, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %s", p.Date)
		}
		p.ValidUntil = issued.AddDate(0, 0, prescriptionValidDays).Format("2006-01-02")
	}

	p.ID = s.ids.Next(idgen.PrefixPrescription)
	p.Status = PrescriptionActive

	if err := s.prescriptions.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("issue prescription: %w", err)
	}
	return &p, nil
}

func (s *Service) UpdatePrescription(ctx context.Context, id string, patch PrescriptionPatch) (*Prescription, error) {
	current, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && *patch.Status != current.Status {
		allowed := false
		for _, next := range prescriptionTransitions[current.Status] {
			if next == *patch.Status {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("invalid prescription status transition: %s -> %s", current.Status, *patch.Status)
		}
	}
	if patch.Medications != nil && len(*patch.Medications) == 0 {
		return nil, fmt.Errorf("medications cannot be cleared")
	}
	if patch.Diagnosis != nil && *patch.Diagnosis == "" {
		return nil, fmt.Errorf("diagnosis cannot be cleared")
	}
	if patch.RefillsRemaining != nil && *patch.RefillsRemaining < 0 {
		return nil, fmt.Errorf("refills remaining cannot be negative")
	}
	return s.prescriptions.Update(ctx, id, patch)
}

// CompletePrescription marks a course finished.
func (s *Service) CompletePrescription(ctx context.Context, id string) (*Prescription, error) {
	status := PrescriptionCompleted
	return s.UpdatePrescription(ctx, id, PrescriptionPatch{Status: &status})
}

// CancelPrescription stops a course early.
func (s *Service) CancelPrescription(ctx context.Context, id string) (*Prescription, error) {
	status := PrescriptionCancelled
	return s.UpdatePrescription(ctx, id, PrescriptionPatch{Status: &status})
}

func (s *Service) GetPrescription(ctx context.Context, id string) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

func (s *Service) ListPrescriptions(ctx context.Context) ([]*Prescription, error) {
	return s.prescriptions.List(ctx)
}

func (s *Service) ListPrescriptionsForPatient(ctx context.Context, name string) ([]*Prescription, error) {
	return s.prescriptions.ListByPatientName(ctx, name)
}

func (s *Service) ListPrescriptionsForDoctor(ctx context.Context, name string) ([]*Prescription, error) {
	return s.prescriptions.ListByDoctorName(ctx, name)
}
