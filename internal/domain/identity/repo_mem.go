package identity

import (
	"context"
	"sync"
)

// PatientRepoMem is the in-memory patient collection. New rows append at the
// end, so List returns registration order.
type PatientRepoMem struct {
	mu   sync.RWMutex
	rows []*Patient
}

func NewPatientRepoMem() *PatientRepoMem {
	return &PatientRepoMem{}
}

func (r *PatientRepoMem) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *PatientRepoMem) GetByID(_ context.Context, id string) (*Patient, error) {
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

func (r *PatientRepoMem) GetByEmail(_ context.Context, email string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *PatientRepoMem) Update(_ context.Context, id string, patch PatientPatch) (*Patient, error) {
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

func (r *PatientRepoMem) List(_ context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Patient, len(r.rows))
	for i, row := range r.rows {
		cp := *row
		out[i] = &cp
	}
	return out, nil
}

func (r *PatientRepoMem) ListByAssignedDoctor(_ context.Context, doctorName string) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Patient
	for _, row := range r.rows {
		if row.AssignedDoctor == doctorName {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

// DoctorRepoMem is the in-memory doctor collection.
type DoctorRepoMem struct {
	mu   sync.RWMutex
	rows []*Doctor
}

func NewDoctorRepoMem() *DoctorRepoMem {
	return &DoctorRepoMem{}
}

func (r *DoctorRepoMem) Create(_ context.Context, d *Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *DoctorRepoMem) GetByID(_ context.Context, id string) (*Doctor, error) {
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

func (r *DoctorRepoMem) GetByEmail(_ context.Context, email string) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *DoctorRepoMem) Update(_ context.Context, id string, patch DoctorPatch) (*Doctor, error) {
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

func (r *DoctorRepoMem) Delete(_ context.Context, id string) error {
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

func (r *DoctorRepoMem) List(_ context.Context) ([]*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Doctor, len(r.rows))
	for i, row := range r.rows {
		cp := *row
		out[i] = &cp
	}
	return out, nil
}
