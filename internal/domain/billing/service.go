package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

// AppointmentLedger is the slice of the scheduling module billing needs:
// look up what an appointment costs and mark it paid. The server wires an
// adapter over the scheduling service.
type AppointmentLedger interface {
	Get(ctx context.Context, id string) (*LedgerAppointment, error)
	MarkPaid(ctx context.Context, id, method, transactionID string) error
}

// LedgerAppointment is the billing view of an appointment.
type LedgerAppointment struct {
	ID            string
	PatientName   string
	DoctorName    string
	Fee           float64
	PaymentStatus string
}

// Due dates run two weeks out from the invoice date.
const invoiceDueDays = 15

// Service owns payments and invoices. Paying an appointment is one
// operation here: the appointment flips to paid and the payment record is
// written with the same transaction id, so the two sides never drift.
type Service struct {
	payments PaymentRepository
	invoices InvoiceRepository
	ledger   AppointmentLedger
	ids      *idgen.Generator
	now      func() time.Time
}

func NewService(payments PaymentRepository, invoices InvoiceRepository, ledger AppointmentLedger, ids *idgen.Generator) *Service {
	return &Service{
		payments: payments,
		invoices: invoices,
		ledger:   ledger,
		ids:      ids,
		now:      time.Now,
	}
}

// ProcessAppointmentPayment charges an appointment. The appointment must be
// pending payment; its fee becomes the payment amount and one transaction id
// is stamped on both records.
func (s *Service) ProcessAppointmentPayment(ctx context.Context, appointmentID, method string) (*Payment, error) {
	if !validPaymentMethods[method] {
		return nil, fmt.Errorf("invalid payment method: %s", method)
	}
	appt, err := s.ledger.Get(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("look up appointment %s: %w", appointmentID, err)
	}
	if appt.PaymentStatus != "pending" {
		return nil, fmt.Errorf("appointment %s is not pending payment (status %s)", appointmentID, appt.PaymentStatus)
	}

	txn := idgen.TransactionID()
	if err := s.ledger.MarkPaid(ctx, appointmentID, method, txn); err != nil {
		return nil, fmt.Errorf("mark appointment paid: %w", err)
	}

	p := Payment{
		ID:            s.ids.Next(idgen.PrefixPayment),
		PatientName:   appt.PatientName,
		DoctorName:    appt.DoctorName,
		AppointmentID: appt.ID,
		Amount:        appt.Fee,
		Date:          s.now().Format("2006-01-02"),
		Status:        PaymentPaid,
		Method:        method,
		TransactionID: txn,
		Description:   fmt.Sprintf("Consultation fee for appointment %s", appt.ID),
	}
	if err := s.payments.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	return &p, nil
}

// RecordPayment writes a payment that did not come through the appointment
// flow, e.g. an imported insurance settlement.
func (s *Service) RecordPayment(ctx context.Context, p Payment) (*Payment, error) {
	if p.PatientName == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if p.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !validPaymentMethods[p.Method] {
		return nil, fmt.Errorf("invalid payment method: %s", p.Method)
	}
	if p.Status == "" {
		p.Status = PaymentPaid
	}
	if !validPaymentStatuses[p.Status] {
		return nil, fmt.Errorf("invalid payment status: %s", p.Status)
	}
	if p.Date == "" {
		p.Date = s.now().Format("2006-01-02")
	}
	if p.TransactionID == "" {
		p.TransactionID = idgen.TransactionID()
	}

	p.ID = s.ids.Next(idgen.PrefixPayment)
	if err := s.payments.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	return &p, nil
}

// RefundPayment flips a paid payment to refunded.
func (s *Service) RefundPayment(ctx context.Context, id string) (*Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != PaymentPaid {
		return nil, fmt.Errorf("only paid payments can be refunded (status %s)", p.Status)
	}
	return s.payments.UpdateStatus(ctx, id, PaymentRefunded)
}

func (s *Service) GetPayment(ctx context.Context, id string) (*Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context) ([]*Payment, error) {
	return s.payments.List(ctx)
}

func (s *Service) ListPaymentsForPatient(ctx context.Context, name string) ([]*Payment, error) {
	return s.payments.ListByPatientName(ctx, name)
}

func (s *Service) ListPaymentsForDoctor(ctx context.Context, name string) ([]*Payment, error) {
	return s.payments.ListByDoctorName(ctx, name)
}

// GenerateInvoice totals the service lines, applies tax and sets the due
// date. Subtotal, tax and total on the way in are ignored.
func (s *Service) GenerateInvoice(ctx context.Context, patientName, doctorName string, services []ServiceLine) (*Invoice, error) {
	if patientName == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("at least one service line is required")
	}
	var subtotal float64
	for i, line := range services {
		if line.Name == "" {
			return nil, fmt.Errorf("service line %d: name is required", i+1)
		}
		if line.Amount <= 0 {
			return nil, fmt.Errorf("service line %d: amount must be positive", i+1)
		}
		subtotal += line.Amount
	}

	issued := s.now()
	inv := Invoice{
		ID:          s.ids.Next(idgen.PrefixInvoice),
		PatientName: patientName,
		DoctorName:  doctorName,
		Date:        issued.Format("2006-01-02"),
		DueDate:     issued.AddDate(0, 0, invoiceDueDays).Format("2006-01-02"),
		Services:    services,
		Subtotal:    subtotal,
		Tax:         subtotal * TaxRate,
		Status:      InvoiceDraft,
	}
	inv.Total = inv.Subtotal + inv.Tax

	if err := s.invoices.Create(ctx, &inv); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return &inv, nil
}

// SendInvoice moves a draft invoice to sent.
func (s *Service) SendInvoice(ctx context.Context, id string) (*Invoice, error) {
	return s.invoiceTransition(ctx, id, InvoiceSent, InvoiceDraft)
}

// MarkInvoicePaid settles a sent or overdue invoice.
func (s *Service) MarkInvoicePaid(ctx context.Context, id string) (*Invoice, error) {
	return s.invoiceTransition(ctx, id, InvoicePaid, InvoiceSent, InvoiceOverdue)
}

// MarkInvoiceOverdue flags a sent invoice past its due date.
func (s *Service) MarkInvoiceOverdue(ctx context.Context, id string) (*Invoice, error) {
	return s.invoiceTransition(ctx, id, InvoiceOverdue, InvoiceSent)
}

func (s *Service) invoiceTransition(ctx context.Context, id, to string, from ...string) (*Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, f := range from {
		if inv.Status == f {
			return s.invoices.UpdateStatus(ctx, id, to)
		}
	}
	return nil, fmt.Errorf("invalid invoice status transition: %s -> %s", inv.Status, to)
}

func (s *Service) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *Service) ListInvoices(ctx context.Context) ([]*Invoice, error) {
	return s.invoices.List(ctx)
}

func (s *Service) ListInvoicesForPatient(ctx context.Context, name string) ([]*Invoice, error) {
	return s.invoices.ListByPatientName(ctx, name)
}
