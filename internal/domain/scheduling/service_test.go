package scheduling

import (
	"context"
	"strings"
	"testing"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

func newTestService() *Service {
	return NewService(NewAppointmentRepoMem(), NewVideoCallRepoMem(), idgen.NewFrom(1), "https://meet.swasthtrack.com")
}

func mustBook(t *testing.T, svc *Service) *Appointment {
	t.Helper()
	a, err := svc.CreateAppointment(context.Background(), Appointment{
		PatientName: "John Doe",
		DoctorName:  "Dr. Sarah Smith",
		Date:        "2025-02-10",
		Time:        "10:00",
		Type:        TypeConsultation,
		Fee:         150,
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return a
}

func TestCreateAppointmentDefaults(t *testing.T) {
	svc := newTestService()
	a := mustBook(t, svc)

	if !strings.HasPrefix(a.ID, "APT") {
		t.Errorf("id = %q, want APT prefix", a.ID)
	}
	if a.Status != StatusScheduled {
		t.Errorf("status = %q, want scheduled", a.Status)
	}
	if a.PaymentStatus != PaymentPending {
		t.Errorf("payment status = %q, want pending", a.PaymentStatus)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc := newTestService()
	cases := []struct {
		name string
		a    Appointment
	}{
		{"missing patient", Appointment{DoctorName: "Dr. Smith", Date: "2025-02-10", Time: "10:00"}},
		{"missing doctor", Appointment{PatientName: "John Doe", Date: "2025-02-10", Time: "10:00"}},
		{"missing date", Appointment{PatientName: "John Doe", DoctorName: "Dr. Smith", Time: "10:00"}},
		{"bad type", Appointment{PatientName: "John Doe", DoctorName: "Dr. Smith", Date: "2025-02-10", Time: "10:00", Type: "walk-in"}},
		{"negative fee", Appointment{PatientName: "John Doe", DoctorName: "Dr. Smith", Date: "2025-02-10", Time: "10:00", Fee: -5}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateAppointment(context.Background(), tc.a); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	svc := newTestService()
	a := mustBook(t, svc)

	a, err := svc.ConfirmAppointment(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if a.Status != StatusConfirmed {
		t.Fatalf("status = %q, want confirmed", a.Status)
	}

	a, err = svc.CompleteAppointment(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if a.Status != StatusCompleted {
		t.Fatalf("status = %q, want completed", a.Status)
	}

	if _, err := svc.CancelAppointment(context.Background(), a.ID); err == nil {
		t.Error("cancel after completion should fail")
	}
	if _, err := svc.ConfirmAppointment(context.Background(), a.ID); err == nil {
		t.Error("confirm after completion should fail")
	}
}

func TestCompleteRequiresConfirmation(t *testing.T) {
	svc := newTestService()
	a := mustBook(t, svc)

	if _, err := svc.CompleteAppointment(context.Background(), a.ID); err == nil {
		t.Error("completing a scheduled appointment should fail")
	}
}

func TestCancelledAppointmentIsTerminal(t *testing.T) {
	svc := newTestService()
	a := mustBook(t, svc)

	if _, err := svc.CancelAppointment(context.Background(), a.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.ConfirmAppointment(context.Background(), a.ID); err == nil {
		t.Error("confirming a cancelled appointment should fail")
	}
}

func TestMarkPaid(t *testing.T) {
	svc := newTestService()
	a := mustBook(t, svc)

	paid, err := svc.MarkPaid(context.Background(), a.ID, "card", "TXN123456")
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.PaymentStatus != PaymentPaid {
		t.Errorf("payment status = %q, want paid", paid.PaymentStatus)
	}
	if paid.PaymentMethod != "card" || paid.TransactionID != "TXN123456" {
		t.Errorf("payment details not recorded: %+v", paid)
	}

	if _, err := svc.MarkPaid(context.Background(), a.ID, "card", "TXN000001"); err == nil {
		t.Error("paying twice should fail")
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	svc := newTestService()
	a := mustBook(t, svc)

	refunded := PaymentRefunded
	if _, err := svc.UpdateAppointment(context.Background(), a.ID, AppointmentPatch{PaymentStatus: &refunded}); err == nil {
		t.Error("refunding a pending appointment should fail")
	}

	if _, err := svc.MarkPaid(context.Background(), a.ID, "card", "TXN654321"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	updated, err := svc.UpdateAppointment(context.Background(), a.ID, AppointmentPatch{PaymentStatus: &refunded})
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if updated.PaymentStatus != PaymentRefunded {
		t.Errorf("payment status = %q, want refunded", updated.PaymentStatus)
	}

	pending := PaymentPending
	if _, err := svc.UpdateAppointment(context.Background(), a.ID, AppointmentPatch{PaymentStatus: &pending}); err == nil {
		t.Error("moving back to pending should fail")
	}
}

func TestAppointmentsListNewestFirst(t *testing.T) {
	svc := newTestService()
	first := mustBook(t, svc)
	second, err := svc.CreateAppointment(context.Background(), Appointment{
		PatientName: "Mary Johnson",
		DoctorName:  "Dr. Sarah Smith",
		Date:        "2025-02-11",
		Time:        "11:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := svc.ListAppointments(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].ID != second.ID || rows[1].ID != first.ID {
		t.Errorf("order = [%s %s], want newest first", rows[0].ID, rows[1].ID)
	}
}

func TestScheduleCall(t *testing.T) {
	svc := newTestService()
	v, err := svc.ScheduleCall(context.Background(), VideoCall{
		PatientName:   "John Doe",
		DoctorName:    "Dr. Sarah Smith",
		ScheduledTime: "2025-02-10T14:00:00Z",
	})
	if err != nil {
		t.Fatalf("schedule call: %v", err)
	}
	if !strings.HasPrefix(v.ID, "VC") {
		t.Errorf("id = %q, want VC prefix", v.ID)
	}
	if v.Status != CallScheduled {
		t.Errorf("status = %q, want scheduled", v.Status)
	}
	if v.RoomID == "" {
		t.Error("room id not assigned")
	}
	want := "https://meet.swasthtrack.com/room/" + v.RoomID
	if v.MeetingLink != want {
		t.Errorf("meeting link = %q, want %q", v.MeetingLink, want)
	}
	if v.RecordingAvailable {
		t.Error("recording should not be available before the call ends")
	}
}

func TestCallLifecycle(t *testing.T) {
	svc := newTestService()
	v, err := svc.ScheduleCall(context.Background(), VideoCall{PatientName: "John Doe", DoctorName: "Dr. Sarah Smith", ScheduledTime: "2025-02-10T14:00:00Z"})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if _, err := svc.EndCall(context.Background(), v.ID); err == nil {
		t.Error("ending a call that never started should fail")
	}

	v, err = svc.JoinCall(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if v.Status != CallInProgress {
		t.Fatalf("status = %q, want in-progress", v.Status)
	}

	if _, err := svc.CancelCall(context.Background(), v.ID); err == nil {
		t.Error("cancelling an in-progress call should fail")
	}

	v, err = svc.EndCall(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if v.Status != CallCompleted {
		t.Errorf("status = %q, want completed", v.Status)
	}
	if !v.RecordingAvailable {
		t.Error("recording should be available after the call ends")
	}

	if _, err := svc.JoinCall(context.Background(), v.ID); err == nil {
		t.Error("joining a completed call should fail")
	}
}

func TestMarkCallMissed(t *testing.T) {
	svc := newTestService()
	v, err := svc.ScheduleCall(context.Background(), VideoCall{PatientName: "John Doe", DoctorName: "Dr. Sarah Smith", ScheduledTime: "2025-02-10T14:00:00Z"})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	v, err = svc.MarkCallMissed(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("mark missed: %v", err)
	}
	if v.Status != CallMissed {
		t.Errorf("status = %q, want missed", v.Status)
	}
	if _, err := svc.JoinCall(context.Background(), v.ID); err == nil {
		t.Error("joining a missed call should fail")
	}
}

func TestUpdateCallRejectsStatus(t *testing.T) {
	svc := newTestService()
	v, err := svc.ScheduleCall(context.Background(), VideoCall{PatientName: "John Doe", DoctorName: "Dr. Sarah Smith", ScheduledTime: "2025-02-10T14:00:00Z"})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	done := CallCompleted
	if _, err := svc.UpdateCall(context.Background(), v.ID, VideoCallPatch{Status: &done}); err == nil {
		t.Error("setting status through a patch should fail")
	}
}
