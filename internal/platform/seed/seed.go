// Package seed loads the demo practice into an empty store. Everything goes
// through the domain services, so seeded rows obey the same validation and
// state machines as live traffic.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/swasthtrack/clinic/internal/domain/billing"
	"github.com/swasthtrack/clinic/internal/domain/clinical"
	"github.com/swasthtrack/clinic/internal/domain/identity"
	"github.com/swasthtrack/clinic/internal/domain/notification"
	"github.com/swasthtrack/clinic/internal/domain/scheduling"
)

// Seeder wires the demo dataset into the domain services.
type Seeder struct {
	Identity      *identity.Service
	Scheduling    *scheduling.Service
	Clinical      *clinical.Service
	Billing       *billing.Service
	Notifications *notification.Service
	Log           zerolog.Logger
}

// Run loads the demo practice. It is meant for a fresh store; running it
// twice duplicates appointments and clinical rows.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.people(ctx); err != nil {
		return err
	}
	if err := s.appointments(ctx); err != nil {
		return err
	}
	if err := s.clinicalData(ctx); err != nil {
		return err
	}
	if err := s.payments(ctx); err != nil {
		return err
	}
	if err := s.videoCalls(ctx); err != nil {
		return err
	}
	if err := s.notifications(ctx); err != nil {
		return err
	}
	s.Log.Info().Msg("demo data seeded")
	return nil
}

func (s *Seeder) people(ctx context.Context) error {
	patients := []*identity.Patient{
		{
			Name: "John Doe", Email: "john.doe@email.com", Phone: "+1-555-0101",
			Age: 39, Gender: "Male", DateOfBirth: "1985-06-15",
			Address: "123 Main St, Springfield", EmergencyContact: "+1-555-0102",
			BloodType: "O+", Allergies: []string{"Penicillin"},
			LastVisit: "2025-01-20", AssignedDoctor: "Dr. Sarah Smith",
		},
		{
			Name: "Mary Johnson", Email: "mary.j@email.com", Phone: "+1-555-0103",
			Age: 52, Gender: "Female", DateOfBirth: "1972-11-03",
			Address: "45 Oak Ave, Springfield", EmergencyContact: "+1-555-0104",
			BloodType: "A-", Allergies: []string{"Sulfa", "Latex"},
			LastVisit: "2025-01-18", AssignedDoctor: "Dr. Michael Brown",
		},
		{
			Name: "Robert Wilson", Email: "r.wilson@email.com", Phone: "+1-555-0105",
			Age: 45, Gender: "Male", DateOfBirth: "1979-03-22",
			Address: "9 Pine Rd, Springfield", EmergencyContact: "+1-555-0106",
			BloodType: "B+", LastVisit: "2025-01-25", AssignedDoctor: "Dr. Sarah Smith",
		},
	}
	for _, p := range patients {
		if err := s.Identity.CreatePatient(ctx, p); err != nil {
			return fmt.Errorf("seed patient %s: %w", p.Name, err)
		}
	}

	doctors := []*identity.Doctor{
		{
			Name: "Dr. Sarah Smith", Email: "dr.smith@swasthtrack.com", Phone: "+1-555-0201",
			Specialization: "Cardiology", LicenseNumber: "MD-44871", Experience: 12,
			Rating: 4.8, ConsultationFee: 200,
			Availability: []string{"Monday", "Tuesday", "Thursday", "Friday"},
		},
		{
			Name: "Dr. Michael Brown", Email: "dr.brown@swasthtrack.com", Phone: "+1-555-0202",
			Specialization: "Pediatrics", LicenseNumber: "MD-50321", Experience: 8,
			Rating: 4.6, ConsultationFee: 150,
			Availability: []string{"Monday", "Wednesday", "Friday"},
		},
		{
			Name: "Dr. Emily Davis", Email: "dr.davis@swasthtrack.com", Phone: "+1-555-0203",
			Specialization: "Dermatology", LicenseNumber: "MD-61208", Experience: 15,
			Rating: 4.9, ConsultationFee: 180,
			Availability: []string{"Tuesday", "Wednesday", "Thursday"},
		},
	}
	for _, d := range doctors {
		if err := s.Identity.CreateDoctor(ctx, d); err != nil {
			return fmt.Errorf("seed doctor %s: %w", d.Name, err)
		}
	}
	return nil
}

func (s *Seeder) appointments(ctx context.Context) error {
	rows := []struct {
		appt     scheduling.Appointment
		confirm  bool
		complete bool
		pay      string
	}{
		{
			appt: scheduling.Appointment{
				PatientName: "John Doe", DoctorName: "Dr. Sarah Smith",
				Date: "2025-01-20", Time: "10:00", Type: scheduling.TypeConsultation,
				Reason: "Chest pain follow-up", Duration: 30, Fee: 200,
			},
			confirm: true, complete: true, pay: billing.MethodCard,
		},
		{
			appt: scheduling.Appointment{
				PatientName: "Mary Johnson", DoctorName: "Dr. Michael Brown",
				Date: "2025-01-18", Time: "14:30", Type: scheduling.TypeFollowup,
				Reason: "Medication review", Duration: 20, Fee: 150,
			},
			confirm: true, complete: true, pay: billing.MethodBankTransfer,
		},
		{
			appt: scheduling.Appointment{
				PatientName: "Robert Wilson", DoctorName: "Dr. Sarah Smith",
				Date: "2025-01-25", Time: "11:15", Type: scheduling.TypeConsultation,
				Reason: "Annual checkup", Duration: 45, Fee: 200,
			},
			confirm: true, complete: true, pay: billing.MethodCash,
		},
		{
			appt: scheduling.Appointment{
				PatientName: "John Doe", DoctorName: "Dr. Sarah Smith",
				Date: "2025-02-10", Time: "10:00", Type: scheduling.TypeFollowup,
				Reason: "Blood pressure recheck", Duration: 20, Fee: 200,
			},
			confirm: true, pay: billing.MethodCard,
		},
		{
			appt: scheduling.Appointment{
				PatientName: "Mary Johnson", DoctorName: "Dr. Emily Davis",
				Date: "2025-02-12", Time: "09:30", Type: scheduling.TypeConsultation,
				Reason: "Skin rash", Duration: 30, Fee: 180,
			},
		},
		{
			appt: scheduling.Appointment{
				PatientName: "Robert Wilson", DoctorName: "Dr. Michael Brown",
				Date: "2025-02-14", Time: "15:00", Type: scheduling.TypeVideo,
				Reason: "Lab results discussion", Duration: 15, Fee: 150,
			},
		},
	}

	for _, row := range rows {
		created, err := s.Scheduling.CreateAppointment(ctx, row.appt)
		if err != nil {
			return fmt.Errorf("seed appointment for %s: %w", row.appt.PatientName, err)
		}
		if row.confirm {
			if _, err := s.Scheduling.ConfirmAppointment(ctx, created.ID); err != nil {
				return fmt.Errorf("confirm seeded appointment %s: %w", created.ID, err)
			}
		}
		if row.pay != "" {
			if _, err := s.Billing.ProcessAppointmentPayment(ctx, created.ID, row.pay); err != nil {
				return fmt.Errorf("pay seeded appointment %s: %w", created.ID, err)
			}
		}
		if row.complete {
			if _, err := s.Scheduling.CompleteAppointment(ctx, created.ID); err != nil {
				return fmt.Errorf("complete seeded appointment %s: %w", created.ID, err)
			}
		}
	}
	return nil
}

func (s *Seeder) clinicalData(ctx context.Context) error {
	records := []clinical.HealthRecord{
		{
			PatientName: "John Doe", DoctorName: "Dr. Sarah Smith", Date: "2025-01-20",
			RecordType: clinical.RecordConsultation, Title: "Hypertension follow-up",
			Description: "Stage 1 hypertension. Lisinopril 10mg daily, recheck in three weeks.",
			Status:      clinical.RecordAbnormal,
			Vitals:      &clinical.Vitals{BloodPressure: "142/92", HeartRate: 84, Temperature: 98.4, Weight: 82},
		},
		{
			PatientName: "Mary Johnson", DoctorName: "Dr. Michael Brown", Date: "2025-01-18",
			RecordType: clinical.RecordConsultation, Title: "Diabetes review",
			Description: "Type 2 diabetes, stable on metformin.",
			Status:      clinical.RecordNormal,
			Vitals:      &clinical.Vitals{BloodPressure: "128/80", HeartRate: 76, Temperature: 98.2, Weight: 68},
		},
		{
			PatientName: "Robert Wilson", DoctorName: "Dr. Sarah Smith", Date: "2025-01-25",
			RecordType: clinical.RecordLabResult, Title: "Lipid panel",
			Description: "Elevated LDL cholesterol. Dietary counselling given.",
			Status:      clinical.RecordAbnormal,
			Attachments: []string{"lipid-panel-2025-01-25.pdf"},
		},
		{
			PatientName: "John Doe", DoctorName: "Dr. Sarah Smith", Date: "2024-11-02",
			RecordType: clinical.RecordImaging, Title: "Chest X-ray",
			Description: "No acute findings.",
			Status:      clinical.RecordNormal,
			Attachments: []string{"chest-xray-2024-11-02.dcm"},
		},
		{
			PatientName: "Mary Johnson", DoctorName: "Dr. Emily Davis", Date: "2024-12-15",
			RecordType: clinical.RecordVitalSigns, Title: "Routine vitals check",
			Status: clinical.RecordNormal,
			Vitals: &clinical.Vitals{BloodPressure: "124/78", HeartRate: 72, Temperature: 98.1, Weight: 67},
		},
	}
	for _, r := range records {
		if _, err := s.Clinical.CreateRecord(ctx, r); err != nil {
			return fmt.Errorf("seed health record for %s: %w", r.PatientName, err)
		}
	}

	prescriptions := []clinical.Prescription{
		{
			PatientName: "John Doe", DoctorName: "Dr. Sarah Smith", Date: "2025-01-20",
			Diagnosis: "Stage 1 hypertension", Instructions: "Monitor blood pressure at home",
			RefillsRemaining: 2,
			Medications: []clinical.Medication{
				{Name: "Lisinopril", Dosage: "10mg", Frequency: "once daily", Duration: "90 days", Instructions: "Take in the morning"},
			},
		},
		{
			PatientName: "Mary Johnson", DoctorName: "Dr. Michael Brown", Date: "2025-01-18",
			Diagnosis: "Type 2 diabetes", RefillsRemaining: 3, ValidUntil: "2025-04-18",
			Medications: []clinical.Medication{
				{Name: "Metformin", Dosage: "500mg", Frequency: "twice daily", Duration: "90 days", Instructions: "Take with meals"},
				{Name: "Atorvastatin", Dosage: "20mg", Frequency: "once daily", Duration: "90 days"},
			},
		},
		{
			PatientName: "Robert Wilson", DoctorName: "Dr. Sarah Smith", Date: "2025-01-25",
			Diagnosis: "Hyperlipidemia",
			Medications: []clinical.Medication{
				{Name: "Rosuvastatin", Dosage: "10mg", Frequency: "once daily", Duration: "30 days"},
			},
		},
	}
	for _, p := range prescriptions {
		if _, err := s.Clinical.IssuePrescription(ctx, p); err != nil {
			return fmt.Errorf("seed prescription for %s: %w", p.PatientName, err)
		}
	}

	vitals := []clinical.VitalReading{
		{PatientName: "John Doe", Type: clinical.VitalHeartRate, Value: 84, Timestamp: "2025-01-20T10:05:00Z"},
		{PatientName: "John Doe", Type: clinical.VitalBloodSugar, Value: 104, Timestamp: "2025-01-20T10:06:00Z"},
		{PatientName: "Mary Johnson", Type: clinical.VitalBloodSugar, Value: 152, Timestamp: "2025-01-18T14:35:00Z"},
		{PatientName: "Robert Wilson", Type: clinical.VitalTemperature, Value: 98.6, Timestamp: "2025-01-25T11:20:00Z"},
	}
	for _, v := range vitals {
		if _, err := s.Clinical.RecordVital(ctx, v); err != nil {
			return fmt.Errorf("seed vital for %s: %w", v.PatientName, err)
		}
	}
	return nil
}

func (s *Seeder) payments(ctx context.Context) error {
	// Four payments already came out of the appointment flow above; one
	// historic insurance settlement is imported directly.
	settlement := billing.Payment{
		PatientName: "John Doe", DoctorName: "Dr. Sarah Smith", Amount: 200,
		Date: "2024-11-02", Method: billing.MethodInsurance,
		Description: "Imaging, insurance settlement",
	}
	if _, err := s.Billing.RecordPayment(ctx, settlement); err != nil {
		return fmt.Errorf("seed payment for %s: %w", settlement.PatientName, err)
	}

	if _, err := s.Billing.GenerateInvoice(ctx, "John Doe", "Dr. Sarah Smith", []billing.ServiceLine{
		{Name: "Cardiology consultation", Amount: 200},
		{Name: "ECG", Amount: 50},
	}); err != nil {
		return fmt.Errorf("seed invoice: %w", err)
	}
	return nil
}

func (s *Seeder) videoCalls(ctx context.Context) error {
	done, err := s.Scheduling.ScheduleCall(ctx, scheduling.VideoCall{
		PatientName: "John Doe", DoctorName: "Dr. Sarah Smith",
		ScheduledTime: "2025-01-22T16:00:00Z", Duration: 20,
		Notes: "Discuss home blood pressure log",
	})
	if err != nil {
		return fmt.Errorf("seed video call: %w", err)
	}
	if _, err := s.Scheduling.JoinCall(ctx, done.ID); err != nil {
		return fmt.Errorf("seed video call join: %w", err)
	}
	if _, err := s.Scheduling.EndCall(ctx, done.ID); err != nil {
		return fmt.Errorf("seed video call end: %w", err)
	}

	if _, err := s.Scheduling.ScheduleCall(ctx, scheduling.VideoCall{
		PatientName: "Robert Wilson", DoctorName: "Dr. Michael Brown",
		ScheduledTime: "2025-02-14T15:00:00Z", Duration: 15,
	}); err != nil {
		return fmt.Errorf("seed video call: %w", err)
	}
	return nil
}

func (s *Seeder) notifications(ctx context.Context) error {
	rows := []notification.Notification{
		{Recipient: "John Doe", Type: notification.TypeAppointment, Priority: notification.PriorityHigh, Title: "Appointment Confirmed", Message: "Your follow-up on Feb 10 at 10:00 is confirmed.", ActionURL: "/appointments"},
		{Recipient: "John Doe", Type: notification.TypeHealth, Title: "Prescription Ready", Message: "Your Lisinopril refill is ready for pickup."},
		{Recipient: "Mary Johnson", Type: notification.TypeReminder, Title: "Upcoming Appointment", Message: "Dermatology consultation on Feb 12 at 09:30."},
		{Recipient: "Robert Wilson", Type: notification.TypePayment, Title: "Payment Received", Message: "We received your payment of $200."},
		{Recipient: "Dr. Sarah Smith", Type: notification.TypeAppointment, Title: "New Booking", Message: "John Doe booked a follow-up on Feb 10."},
		{Recipient: "Dr. Michael Brown", Type: notification.TypeSystem, Priority: notification.PriorityLow, Title: "Schedule Updated", Message: "Your Friday availability was published."},
	}
	for _, n := range rows {
		if _, err := s.Notifications.Notify(ctx, n); err != nil {
			return fmt.Errorf("seed notification for %s: %w", n.Recipient, err)
		}
	}
	return nil
}
