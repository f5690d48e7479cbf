package identity

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a lookup finds no matching record.
var ErrNotFound = errors.New("not found")

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	Update(ctx context.Context, id string, patch PatientPatch) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
	ListByAssignedDoctor(ctx context.Context, doctorName string) ([]*Patient, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id string) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	Update(ctx context.Context, id string, patch DoctorPatch) (*Doctor, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Doctor, error)
}
