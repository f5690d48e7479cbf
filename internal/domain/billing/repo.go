package billing

import (
	"context"
	"errors"
)

// ErrNotFound is returned for unknown payment or invoice ids.
var ErrNotFound = errors.New("billing: not found")

// PaymentRepository stores payments most-recent-first.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	UpdateStatus(ctx context.Context, id, status string) (*Payment, error)
	List(ctx context.Context) ([]*Payment, error)
	ListByPatientName(ctx context.Context, name string) ([]*Payment, error)
	ListByDoctorName(ctx context.Context, name string) ([]*Payment, error)
}

// InvoiceRepository stores invoices most-recent-first.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id string) (*Invoice, error)
	UpdateStatus(ctx context.Context, id, status string) (*Invoice, error)
	List(ctx context.Context) ([]*Invoice, error)
	ListByPatientName(ctx context.Context, name string) ([]*Invoice, error)
}
