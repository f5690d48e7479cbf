// Package dashboard assembles the role-scoped views the front ends render:
// a patient sees their own slice of the store, a doctor sees their panel and
// day, an admin sees practice-wide totals. It only reads; every aggregate is
// recomputed from the live stores on each call.
package dashboard

import (
	"context"
	"fmt"

	"github.com/swasthtrack/clinic/internal/domain/billing"
	"github.com/swasthtrack/clinic/internal/domain/clinical"
	"github.com/swasthtrack/clinic/internal/domain/identity"
	"github.com/swasthtrack/clinic/internal/domain/notification"
	"github.com/swasthtrack/clinic/internal/domain/scheduling"
)

// IdentitySource is the slice of the identity module the dashboards read.
type IdentitySource interface {
	ListPatients(ctx context.Context) ([]*identity.Patient, error)
	ListDoctors(ctx context.Context) ([]*identity.Doctor, error)
	ListPatientsForDoctor(ctx context.Context, doctorName string) ([]*identity.Patient, error)
}

// SchedulingSource is the slice of the scheduling module the dashboards read.
type SchedulingSource interface {
	ListAppointments(ctx context.Context) ([]*scheduling.Appointment, error)
	ListAppointmentsForPatient(ctx context.Context, name string) ([]*scheduling.Appointment, error)
	ListAppointmentsForDoctor(ctx context.Context, name string) ([]*scheduling.Appointment, error)
	ListCallsForPatient(ctx context.Context, name string) ([]*scheduling.VideoCall, error)
	ListCallsForDoctor(ctx context.Context, name string) ([]*scheduling.VideoCall, error)
}

// ClinicalSource is the slice of the clinical module the dashboards read.
type ClinicalSource interface {
	ListRecordsForPatient(ctx context.Context, name string) ([]*clinical.HealthRecord, error)
	ListRecordsForDoctor(ctx context.Context, name string) ([]*clinical.HealthRecord, error)
	ListVitalsForPatient(ctx context.Context, name string) ([]*clinical.VitalReading, error)
	ListPrescriptionsForPatient(ctx context.Context, name string) ([]*clinical.Prescription, error)
	ListPrescriptionsForDoctor(ctx context.Context, name string) ([]*clinical.Prescription, error)
}

// BillingSource is the slice of the billing module the dashboards read.
type BillingSource interface {
	ListPayments(ctx context.Context) ([]*billing.Payment, error)
	ListPaymentsForPatient(ctx context.Context, name string) ([]*billing.Payment, error)
	ListInvoicesForPatient(ctx context.Context, name string) ([]*billing.Invoice, error)
}

// NotificationSource is the slice of the notification module the dashboards
// read.
type NotificationSource interface {
	ListForRecipient(ctx context.Context, name string) ([]*notification.Notification, error)
}

// PatientView is everything a patient's home screen shows.
type PatientView struct {
	Appointments  []*scheduling.Appointment    `json:"appointments"`
	HealthRecords []*clinical.HealthRecord     `json:"health_records"`
	Vitals        []*clinical.VitalReading     `json:"vitals"`
	Prescriptions []*clinical.Prescription     `json:"prescriptions"`
	VideoCalls    []*scheduling.VideoCall      `json:"video_calls"`
	Payments      []*billing.Payment           `json:"payments"`
	Invoices      []*billing.Invoice           `json:"invoices"`
	Notifications []*notification.Notification `json:"notifications"`
}

// DoctorView is a doctor's panel: their patients plus everything scoped to
// their name.
type DoctorView struct {
	Patients      []*identity.Patient       `json:"patients"`
	Appointments  []*scheduling.Appointment `json:"appointments"`
	HealthRecords []*clinical.HealthRecord  `json:"health_records"`
	Prescriptions []*clinical.Prescription  `json:"prescriptions"`
	VideoCalls    []*scheduling.VideoCall   `json:"video_calls"`
}

// AdminStats are the practice-wide counters on the admin overview.
type AdminStats struct {
	TotalPatients         int     `json:"total_patients"`
	TotalDoctors          int     `json:"total_doctors"`
	TotalAppointments     int     `json:"total_appointments"`
	PendingAppointments   int     `json:"pending_appointments"`
	CompletedAppointments int     `json:"completed_appointments"`
	TotalRevenue          float64 `json:"total_revenue"`
	PendingPayments       int     `json:"pending_payments"`
}

// Service fans out to the other modules and stitches the views together.
type Service struct {
	identity     IdentitySource
	scheduling   SchedulingSource
	clinical     ClinicalSource
	billing      BillingSource
	notification NotificationSource
}

func NewService(id IdentitySource, sch SchedulingSource, cl ClinicalSource, bil BillingSource, ntf NotificationSource) *Service {
	return &Service{identity: id, scheduling: sch, clinical: cl, billing: bil, notification: ntf}
}

// PatientData builds the patient dashboard keyed by display name.
func (s *Service) PatientData(ctx context.Context, name string) (*PatientView, error) {
	if name == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	v := &PatientView{}
	var err error
	if v.Appointments, err = s.scheduling.ListAppointmentsForPatient(ctx, name); err != nil {
		return nil, fmt.Errorf("patient appointments: %w", err)
	}
	if v.HealthRecords, err = s.clinical.ListRecordsForPatient(ctx, name); err != nil {
		return nil, fmt.Errorf("patient health records: %w", err)
	}
	if v.Vitals, err = s.clinical.ListVitalsForPatient(ctx, name); err != nil {
		return nil, fmt.Errorf("patient vitals: %w", err)
	}
	if v.Prescriptions, err = s.clinical.ListPrescriptionsForPatient(ctx, name); err != nil {
		return nil, fmt.Errorf("patient prescriptions: %w", err)
	}
	if v.VideoCalls, err = s.scheduling.ListCallsForPatient(ctx, name); err != nil {
		return nil, fmt.Errorf("patient video calls: %w", err)
	}
	if v.Payments, err = s.billing.ListPaymentsForPatient(ctx, name); err != nil {
		return nil, fmt.Errorf("patient payments: %w", err)
	}
	if v.Invoices, err = s.billing.ListInvoicesForPatient(ctx, name); err != nil {
		return nil, fmt.Errorf("patient invoices: %w", err)
	}
	if v.Notifications, err = s.notification.ListForRecipient(ctx, name); err != nil {
		return nil, fmt.Errorf("patient notifications: %w", err)
	}
	return v, nil
}

// DoctorData builds the doctor dashboard keyed by display name.
func (s *Service) DoctorData(ctx context.Context, name string) (*DoctorView, error) {
	if name == "" {
		return nil, fmt.Errorf("doctor name is required")
	}
	v := &DoctorView{}
	var err error
	if v.Patients, err = s.identity.ListPatientsForDoctor(ctx, name); err != nil {
		return nil, fmt.Errorf("doctor patients: %w", err)
	}
	if v.Appointments, err = s.scheduling.ListAppointmentsForDoctor(ctx, name); err != nil {
		return nil, fmt.Errorf("doctor appointments: %w", err)
	}
	if v.HealthRecords, err = s.clinical.ListRecordsForDoctor(ctx, name); err != nil {
		return nil, fmt.Errorf("doctor health records: %w", err)
	}
	if v.Prescriptions, err = s.clinical.ListPrescriptionsForDoctor(ctx, name); err != nil {
		return nil, fmt.Errorf("doctor prescriptions: %w", err)
	}
	if v.VideoCalls, err = s.scheduling.ListCallsForDoctor(ctx, name); err != nil {
		return nil, fmt.Errorf("doctor video calls: %w", err)
	}
	return v, nil
}

// Admin builds the practice-wide counters. Revenue counts completed
// payments only; refunds drop back out of the total.
func (s *Service) Admin(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	patients, err := s.identity.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin patients: %w", err)
	}
	stats.TotalPatients = len(patients)

	doctors, err := s.identity.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin doctors: %w", err)
	}
	stats.TotalDoctors = len(doctors)

	appts, err := s.scheduling.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin appointments: %w", err)
	}
	stats.TotalAppointments = len(appts)
	for _, a := range appts {
		switch a.Status {
		case scheduling.StatusScheduled, scheduling.StatusConfirmed:
			stats.PendingAppointments++
		case scheduling.StatusCompleted:
			stats.CompletedAppointments++
		}
		if a.PaymentStatus == scheduling.PaymentPending {
			stats.PendingPayments++
		}
	}

	payments, err := s.billing.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin payments: %w", err)
	}
	for _, p := range payments {
		if p.Status == billing.PaymentPaid {
			stats.TotalRevenue += p.Amount
		}
	}
	return stats, nil
}
