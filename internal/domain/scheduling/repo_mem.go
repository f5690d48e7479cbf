package scheduling

import (
	"context"
	"sync"
)

// AppointmentRepoMem is the in-memory AppointmentRepository. New rows are
// prepended so listings read newest first.
type AppointmentRepoMem struct {
	mu   sync.RWMutex
	rows []*Appointment
}

func NewAppointmentRepoMem() *AppointmentRepoMem {
	return &AppointmentRepoMem{}
}

func (r *AppointmentRepoMem) Create(ctx context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.rows = append([]*Appointment{&cp}, r.rows...)
	return nil
}

func (r *AppointmentRepoMem) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *AppointmentRepoMem) Update(ctx context.Context, id string, patch AppointmentPatch) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row.apply(patch)
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *AppointmentRepoMem) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *AppointmentRepoMem) List(ctx context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Appointment, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *AppointmentRepoMem) ListByPatientName(ctx context.Context, name string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Appointment
	for _, row := range r.rows {
		if row.PatientName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *AppointmentRepoMem) ListByDoctorName(ctx context.Context, name string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Appointment
	for _, row := range r.rows {
		if row.DoctorName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

// VideoCallRepoMem is the in-memory VideoCallRepository, prepend ordered.
type VideoCallRepoMem struct {
	mu   sync.RWMutex
	rows []*VideoCall
}

func NewVideoCallRepoMem() *VideoCallRepoMem {
	return &VideoCallRepoMem{}
}

func (r *VideoCallRepoMem) Create(ctx context.Context, v *VideoCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.rows = append([]*VideoCall{&cp}, r.rows...)
	return nil
}

func (r *VideoCallRepoMem) GetByID(ctx context.Context, id string) (*VideoCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *VideoCallRepoMem) Update(ctx context.Context, id string, patch VideoCallPatch) (*VideoCall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row.apply(patch)
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *VideoCallRepoMem) List(ctx context.Context) ([]*VideoCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*VideoCall, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *VideoCallRepoMem) ListByPatientName(ctx context.Context, name string) ([]*VideoCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*VideoCall
	for _, row := range r.rows {
		if row.PatientName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *VideoCallRepoMem) ListByDoctorName(ctx context.Context, name string) ([]*VideoCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*VideoCall
	for _, row := range r.rows {
		if row.DoctorName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}
