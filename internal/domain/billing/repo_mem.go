package billing

import (
	"context"
	"sync"
)

// PaymentRepoMem is the in-memory PaymentRepository. New rows are prepended
// so listings read newest first.
type PaymentRepoMem struct {
	mu   sync.RWMutex
	rows []*Payment
}

func NewPaymentRepoMem() *PaymentRepoMem {
	return &PaymentRepoMem{}
}

func (r *PaymentRepoMem) Create(ctx context.Context, p *Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.rows = append([]*Payment{&cp}, r.rows...)
	return nil
}

func (r *PaymentRepoMem) GetByID(ctx context.Context, id string) (*Payment, error) {
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

func (r *PaymentRepoMem) UpdateStatus(ctx context.Context, id, status string) (*Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = status
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *PaymentRepoMem) List(ctx context.Context) ([]*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Payment, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *PaymentRepoMem) ListByPatientName(ctx context.Context, name string) ([]*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Payment
	for _, row := range r.rows {
		if row.PatientName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *PaymentRepoMem) ListByDoctorName(ctx context.Context, name string) ([]*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Payment
	for _, row := range r.rows {
		if row.DoctorName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

// InvoiceRepoMem is the in-memory InvoiceRepository, prepend ordered.
type InvoiceRepoMem struct {
	mu   sync.RWMutex
	rows []*Invoice
}

func NewInvoiceRepoMem() *InvoiceRepoMem {
	return &InvoiceRepoMem{}
}

func (r *InvoiceRepoMem) Create(ctx context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.rows = append([]*Invoice{&cp}, r.rows...)
	return nil
}

func (r *InvoiceRepoMem) GetByID(ctx context.Context, id string) (*Invoice, error) {
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

func (r *InvoiceRepoMem) UpdateStatus(ctx context.Context, id, status string) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = status
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InvoiceRepoMem) List(ctx context.Context) ([]*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Invoice, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *InvoiceRepoMem) ListByPatientName(ctx context.Context, name string) ([]*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Invoice
	for _, row := range r.rows {
		if row.PatientName == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}
