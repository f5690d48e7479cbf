package scheduling

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an appointment or video call id does not
// exist in the store.
var ErrNotFound = errors.New("scheduling: not found")

// AppointmentRepository stores appointments most-recent-first: Create
// prepends, List returns newest at index 0.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, id string, patch AppointmentPatch) (*Appointment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Appointment, error)
	ListByPatientName(ctx context.Context, name string) ([]*Appointment, error)
	ListByDoctorName(ctx context.Context, name string) ([]*Appointment, error)
}

// VideoCallRepository stores video calls most-recent-first.
type VideoCallRepository interface {
	Create(ctx context.Context, v *VideoCall) error
	GetByID(ctx context.Context, id string) (*VideoCall, error)
	Update(ctx context.Context, id string, patch VideoCallPatch) (*VideoCall, error)
	List(ctx context.Context) ([]*VideoCall, error)
	ListByPatientName(ctx context.Context, name string) ([]*VideoCall, error)
	ListByDoctorName(ctx context.Context, name string) ([]*VideoCall, error)
}
