package clinical

import (
	"context"
	"sync"
)

// HealthRecordRepoMem is the in-memory HealthRecordRepository. New rows are
// prepended so listings read newest first.
type HealthRecordRepoMem struct {
	mu   sync.RWMutex
	rows []*HealthRecord
}

func NewHealthRecordRepoMem() *HealthRecordRepoMem {
	return &HealthRecordRepoMem{}
}

func (r *HealthRecordRepoMem) Create(ctx context.Context, rec *HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.rows = append([]*HealthRecord{&cp}, r.rows...)
	return nil
}

func (r *HealthRecordRepoMem) GetByID(ctx context.Context, id string) (*HealthRecord, error) {
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

func (r *HealthRecordRepoMem) Update(ctx context.Context, id string, patch HealthRecordPatch) (*HealthRecord, error) {
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

func (r *HealthRecordRepoMem) Delete(ctx context.Context, id string) error {
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

func (r *HealthRecordRepoMem) List(ctx context.Context) ([]*HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*HealthRecord, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *HealthRecordRepoMem) ListByPatientName(ctx context.Context, name string) ([]*HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*HealthRecord
	for _, row := range r.rows {
		if row.PatientName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *HealthRecordRepoMem) ListByDoctorName(ctx context.Context, name string) ([]*HealthRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*HealthRecord
	for _, row := range r.rows {
		if row.DoctorName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

// VitalReadingRepoMem is the in-memory VitalReadingRepository.
type VitalReadingRepoMem struct {
	mu   sync.RWMutex
	rows []*VitalReading
}

func NewVitalReadingRepoMem() *VitalReadingRepoMem {
	return &VitalReadingRepoMem{}
}

func (r *VitalReadingRepoMem) Create(ctx context.Context, v *VitalReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.rows = append([]*VitalReading{&cp}, r.rows...)
	return nil
}

func (r *VitalReadingRepoMem) List(ctx context.Context) ([]*VitalReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*VitalReading, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *VitalReadingRepoMem) ListByPatientName(ctx context.Context, name string) ([]*VitalReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*VitalReading
	for _, row := range r.rows {
		if row.PatientName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

// PrescriptionRepoMem is the in-memory PrescriptionRepository.
type PrescriptionRepoMem struct {
	mu   sync.RWMutex
	rows []*Prescription
}

func NewPrescriptionRepoMem() *PrescriptionRepoMem {
	return &PrescriptionRepoMem{}
}

func (r *PrescriptionRepoMem) Create(ctx context.Context, p *Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.rows = append([]*Prescription{&cp}, r.rows...)
	return nil
}

func (r *PrescriptionRepoMem) GetByID(ctx context.Context, id string) (*Prescription, error) {
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

func (r *PrescriptionRepoMem) Update(ctx context.Context, id string, patch PrescriptionPatch) (*Prescription, error) {
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

func (r *PrescriptionRepoMem) List(ctx context.Context) ([]*Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Prescription, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *PrescriptionRepoMem) ListByPatientName(ctx context.Context, name string) ([]*Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Prescription
	for _, row := range r.rows {
		if row.PatientName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *PrescriptionRepoMem) ListByDoctorName(ctx context.Context, name string) ([]*Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Prescription
	for _, row := range r.rows {
		if row.DoctorName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}
