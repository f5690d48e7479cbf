package scheduling

import (
	"context"
	"fmt"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

// Service enforces the appointment and video call state machines on top of
// the repositories. Callers never write a status directly; every change
// goes through a transition check.
type Service struct {
	appointments AppointmentRepository
	calls        VideoCallRepository
	ids          *idgen.Generator
	meetBaseURL  string
}

func NewService(appointments AppointmentRepository, calls VideoCallRepository, ids *idgen.Generator, meetBaseURL string) *Service {
	return &Service{
		appointments: appointments,
		calls:        calls,
		ids:          ids,
		meetBaseURL:  meetBaseURL,
	}
}

// CreateAppointment books a new appointment in the scheduled state with
// payment pending.
func (s *Service) CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	if a.PatientName == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if a.DoctorName == "" {
		return nil, fmt.Errorf("doctor name is required")
	}
	if a.Date == "" || a.Time == "" {
		return nil, fmt.Errorf("date and time are required")
	}
	if a.Type == "" {
		a.Type = TypeConsultation
	}
	if !validAppointmentTypes[a.Type] {
		return nil, fmt.Errorf("invalid appointment type: %s", a.Type)
	}
	if a.Fee < 0 {
		return nil, fmt.Errorf("fee cannot be negative")
	}
	if a.Duration <= 0 {
		a.Duration = 30
	}

	a.ID = s.ids.Next(idgen.PrefixAppointment)
	a.Status = StatusScheduled
	a.PaymentStatus = PaymentPending
	a.PaymentMethod = ""
	a.TransactionID = ""

	if err := s.appointments.Create(ctx, &a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return &a, nil
}

// UpdateAppointment applies a partial update. Status and payment status
// changes are validated against the stored row before the patch lands.
func (s *Service) UpdateAppointment(ctx context.Context, id string, patch AppointmentPatch) (*Appointment, error) {
	current, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && *patch.Status != current.Status {
		if !canTransition(appointmentTransitions, current.Status, *patch.Status) {
			return nil, fmt.Errorf("invalid appointment status transition: %s -> %s", current.Status, *patch.Status)
		}
	}
	if patch.PaymentStatus != nil && *patch.PaymentStatus != current.PaymentStatus {
		if !canTransition(paymentTransitions, current.PaymentStatus, *patch.PaymentStatus) {
			return nil, fmt.Errorf("invalid payment status transition: %s -> %s", current.PaymentStatus, *patch.PaymentStatus)
		}
	}
	if patch.Fee != nil && *patch.Fee < 0 {
		return nil, fmt.Errorf("fee cannot be negative")
	}
	return s.appointments.Update(ctx, id, patch)
}

// ConfirmAppointment moves a scheduled appointment to confirmed.
func (s *Service) ConfirmAppointment(ctx context.Context, id string) (*Appointment, error) {
	status := StatusConfirmed
	return s.UpdateAppointment(ctx, id, AppointmentPatch{Status: &status})
}

// CompleteAppointment moves a confirmed appointment to completed.
func (s *Service) CompleteAppointment(ctx context.Context, id string) (*Appointment, error) {
	status := StatusCompleted
	return s.UpdateAppointment(ctx, id, AppointmentPatch{Status: &status})
}

// CancelAppointment cancels from scheduled or confirmed.
func (s *Service) CancelAppointment(ctx context.Context, id string) (*Appointment, error) {
	status := StatusCancelled
	return s.UpdateAppointment(ctx, id, AppointmentPatch{Status: &status})
}

// DeleteAppointment removes the row outright.
func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	return s.appointments.Delete(ctx, id)
}

// MarkPaid records a successful payment against the appointment. It refuses
// appointments that are already paid or refunded.
func (s *Service) MarkPaid(ctx context.Context, id, method, transactionID string) (*Appointment, error) {
	current, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.PaymentStatus != PaymentPending {
		return nil, fmt.Errorf("appointment %s is not pending payment (status %s)", id, current.PaymentStatus)
	}
	status := PaymentPaid
	return s.appointments.Update(ctx, id, AppointmentPatch{
		PaymentStatus: &status,
		PaymentMethod: &method,
		TransactionID: &transactionID,
	})
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context) ([]*Appointment, error) {
	return s.appointments.List(ctx)
}

func (s *Service) ListAppointmentsForPatient(ctx context.Context, name string) ([]*Appointment, error) {
	return s.appointments.ListByPatientName(ctx, name)
}

func (s *Service) ListAppointmentsForDoctor(ctx context.Context, name string) ([]*Appointment, error) {
	return s.appointments.ListByDoctorName(ctx, name)
}

// ScheduleCall creates a video call in the scheduled state with a generated
// room id and a meeting link under the configured meet base URL.
func (s *Service) ScheduleCall(ctx context.Context, v VideoCall) (*VideoCall, error) {
	if v.PatientName == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if v.DoctorName == "" {
		return nil, fmt.Errorf("doctor name is required")
	}
	if v.ScheduledTime == "" {
		return nil, fmt.Errorf("scheduled time is required")
	}
	if v.Duration <= 0 {
		v.Duration = 30
	}

	v.ID = s.ids.Next(idgen.PrefixVideoCall)
	v.RoomID = idgen.RoomID()
	v.MeetingLink = fmt.Sprintf("%s/room/%s", s.meetBaseURL, v.RoomID)
	v.Status = CallScheduled
	v.RecordingAvailable = false

	if err := s.calls.Create(ctx, &v); err != nil {
		return nil, fmt.Errorf("create video call: %w", err)
	}
	return &v, nil
}

// JoinCall moves a scheduled call to in-progress.
func (s *Service) JoinCall(ctx context.Context, id string) (*VideoCall, error) {
	return s.transitionCall(ctx, id, CallInProgress, nil)
}

// EndCall completes an in-progress call and marks its recording available.
func (s *Service) EndCall(ctx context.Context, id string) (*VideoCall, error) {
	rec := true
	return s.transitionCall(ctx, id, CallCompleted, &rec)
}

// CancelCall cancels a call that has not started.
func (s *Service) CancelCall(ctx context.Context, id string) (*VideoCall, error) {
	return s.transitionCall(ctx, id, CallCancelled, nil)
}

// MarkCallMissed marks a scheduled call nobody joined.
func (s *Service) MarkCallMissed(ctx context.Context, id string) (*VideoCall, error) {
	return s.transitionCall(ctx, id, CallMissed, nil)
}

func (s *Service) transitionCall(ctx context.Context, id, to string, recording *bool) (*VideoCall, error) {
	current, err := s.calls.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(callTransitions, current.Status, to) {
		return nil, fmt.Errorf("invalid video call status transition: %s -> %s", current.Status, to)
	}
	return s.calls.Update(ctx, id, VideoCallPatch{Status: &to, RecordingAvailable: recording})
}

// UpdateCall applies a partial update to scheduling details. Status changes
// must go through the transition operations, so a status in the patch is
// rejected.
func (s *Service) UpdateCall(ctx context.Context, id string, patch VideoCallPatch) (*VideoCall, error) {
	if patch.Status != nil {
		return nil, fmt.Errorf("call status cannot be set directly")
	}
	if patch.Duration != nil && *patch.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	return s.calls.Update(ctx, id, patch)
}

func (s *Service) GetCall(ctx context.Context, id string) (*VideoCall, error) {
	return s.calls.GetByID(ctx, id)
}

func (s *Service) ListCalls(ctx context.Context) ([]*VideoCall, error) {
	return s.calls.List(ctx)
}

func (s *Service) ListCallsForPatient(ctx context.Context, name string) ([]*VideoCall, error) {
	return s.calls.ListByPatientName(ctx, name)
}

func (s *Service) ListCallsForDoctor(ctx context.Context, name string) ([]*VideoCall, error) {
	return s.calls.ListByDoctorName(ctx, name)
}
