package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/swasthtrack/clinic/internal/domain/billing"
	"github.com/swasthtrack/clinic/internal/domain/clinical"
	"github.com/swasthtrack/clinic/internal/domain/identity"
	"github.com/swasthtrack/clinic/internal/domain/notification"
	"github.com/swasthtrack/clinic/internal/domain/scheduling"
	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

type ledgerAdapter struct {
	svc *scheduling.Service
}

func (a ledgerAdapter) Get(ctx context.Context, id string) (*billing.LedgerAppointment, error) {
	appt, err := a.svc.GetAppointment(ctx, id)
	if err != nil {
		return nil, billing.ErrNotFound
	}
	return &billing.LedgerAppointment{
		ID: appt.ID, PatientName: appt.PatientName, DoctorName: appt.DoctorName,
		Fee: appt.Fee, PaymentStatus: appt.PaymentStatus,
	}, nil
}

func (a ledgerAdapter) MarkPaid(ctx context.Context, id, method, transactionID string) error {
	_, err := a.svc.MarkPaid(ctx, id, method, transactionID)
	return err
}

func newSeeder() *Seeder {
	ids := idgen.NewFrom(0)
	sch := scheduling.NewService(scheduling.NewAppointmentRepoMem(), scheduling.NewVideoCallRepoMem(), ids, "https://meet.swasthtrack.com")
	return &Seeder{
		Identity:      identity.NewService(identity.NewPatientRepoMem(), identity.NewDoctorRepoMem(), ids),
		Scheduling:    sch,
		Clinical:      clinical.NewService(clinical.NewHealthRecordRepoMem(), clinical.NewVitalReadingRepoMem(), clinical.NewPrescriptionRepoMem(), ids),
		Billing:       billing.NewService(billing.NewPaymentRepoMem(), billing.NewInvoiceRepoMem(), ledgerAdapter{svc: sch}, ids),
		Notifications: notification.NewService(notification.NewRepoMem(), ids),
		Log:           zerolog.Nop(),
	}
}

func TestSeedCounts(t *testing.T) {
	s := newSeeder()
	ctx := context.Background()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	patients, _ := s.Identity.ListPatients(ctx)
	if len(patients) != 3 {
		t.Errorf("patients = %d, want 3", len(patients))
	}
	doctors, _ := s.Identity.ListDoctors(ctx)
	if len(doctors) != 3 {
		t.Errorf("doctors = %d, want 3", len(doctors))
	}
	appts, _ := s.Scheduling.ListAppointments(ctx)
	if len(appts) != 6 {
		t.Errorf("appointments = %d, want 6", len(appts))
	}
	records, _ := s.Clinical.ListRecords(ctx)
	if len(records) != 5 {
		t.Errorf("health records = %d, want 5", len(records))
	}
	rx, _ := s.Clinical.ListPrescriptions(ctx)
	if len(rx) != 3 {
		t.Errorf("prescriptions = %d, want 3", len(rx))
	}
	payments, _ := s.Billing.ListPayments(ctx)
	if len(payments) != 5 {
		t.Errorf("payments = %d, want 5", len(payments))
	}
	calls, _ := s.Scheduling.ListCalls(ctx)
	if len(calls) != 2 {
		t.Errorf("video calls = %d, want 2", len(calls))
	}
	notifs, _ := s.Notifications.List(ctx)
	if len(notifs) != 6 {
		t.Errorf("notifications = %d, want 6", len(notifs))
	}
}

func TestSeededStatesAreConsistent(t *testing.T) {
	s := newSeeder()
	ctx := context.Background()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	appts, _ := s.Scheduling.ListAppointments(ctx)
	completed, paid := 0, 0
	for _, a := range appts {
		if a.Status == scheduling.StatusCompleted {
			completed++
			if a.PaymentStatus != scheduling.PaymentPaid {
				t.Errorf("completed appointment %s is unpaid", a.ID)
			}
		}
		if a.PaymentStatus == scheduling.PaymentPaid {
			paid++
			if a.TransactionID == "" {
				t.Errorf("paid appointment %s has no transaction id", a.ID)
			}
		}
	}
	if completed != 3 {
		t.Errorf("completed appointments = %d, want 3", completed)
	}
	if paid != 4 {
		t.Errorf("paid appointments = %d, want 4", paid)
	}

	calls, _ := s.Scheduling.ListCalls(ctx)
	for _, v := range calls {
		if v.Status == scheduling.CallCompleted && !v.RecordingAvailable {
			t.Errorf("completed call %s has no recording", v.ID)
		}
	}

	// Every payment written by the appointment flow must point back at a
	// paid appointment with the same transaction id.
	payments, _ := s.Billing.ListPayments(ctx)
	for _, p := range payments {
		if p.AppointmentID == "" {
			continue
		}
		appt, err := s.Scheduling.GetAppointment(ctx, p.AppointmentID)
		if err != nil {
			t.Errorf("payment %s points at missing appointment %s", p.ID, p.AppointmentID)
			continue
		}
		if appt.TransactionID != p.TransactionID {
			t.Errorf("payment %s txn %s != appointment txn %s", p.ID, p.TransactionID, appt.TransactionID)
		}
	}
}
