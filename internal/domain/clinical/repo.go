package clinical

import (
	"context"
	"errors"
)

// ErrNotFound is returned for unknown record, reading or prescription ids.
var ErrNotFound = errors.New("clinical: not found")

// HealthRecordRepository stores records most-recent-first.
type HealthRecordRepository interface {
	Create(ctx context.Context, r *HealthRecord) error
	GetByID(ctx context.Context, id string) (*HealthRecord, error)
	Update(ctx context.Context, id string, patch HealthRecordPatch) (*HealthRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*HealthRecord, error)
	ListByPatientName(ctx context.Context, name string) ([]*HealthRecord, error)
	ListByDoctorName(ctx context.Context, name string) ([]*HealthRecord, error)
}

// VitalReadingRepository stores readings most-recent-first.
type VitalReadingRepository interface {
	Create(ctx context.Context, v *VitalReading) error
	List(ctx context.Context) ([]*VitalReading, error)
	ListByPatientName(ctx context.Context, name string) ([]*VitalReading, error)
}

// PrescriptionRepository stores prescriptions most-recent-first.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id string) (*Prescription, error)
	Update(ctx context.Context, id string, patch PrescriptionPatch) (*Prescription, error)
	List(ctx context.Context) ([]*Prescription, error)
	ListByPatientName(ctx context.Context, name string) ([]*Prescription, error)
	ListByDoctorName(ctx context.Context, name string) ([]*Prescription, error)
}
