package clinical

import (
	"context"
	"strings"
	"testing"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

func newTestService() *Service {
	return NewService(NewHealthRecordRepoMem(), NewVitalReadingRepoMem(), NewPrescriptionRepoMem(), idgen.NewFrom(1))
}

func TestCreateRecord(t *testing.T) {
	svc := newTestService()
	r, err := svc.CreateRecord(context.Background(), HealthRecord{
		PatientName: "John Doe",
		DoctorName:  "Dr. Sarah Smith",
		RecordType:  RecordConsultation,
		Title:       "Hypertension Follow-up",
		Description: "Blood pressure elevated, medication adjusted",
		Vitals:      &Vitals{BloodPressure: "140/90", HeartRate: 82},
	})
	if err != nil {
		t.Fatalf("create record: %v", err)
	}
	if !strings.HasPrefix(r.ID, "HR") {
		t.Errorf("id = %q, want HR prefix", r.ID)
	}
	if r.Date == "" {
		t.Error("date should default to today")
	}
	if r.Status != RecordPending {
		t.Errorf("status = %q, want pending default", r.Status)
	}
	if r.Attachments == nil {
		t.Error("attachments should default to an empty list")
	}
}

func TestCreateRecordValidation(t *testing.T) {
	svc := newTestService()
	cases := []struct {
		name string
		r    HealthRecord
	}{
		{"missing patient", HealthRecord{DoctorName: "Dr. Smith", Title: "Flu"}},
		{"missing doctor", HealthRecord{PatientName: "John Doe", Title: "Flu"}},
		{"missing title", HealthRecord{PatientName: "John Doe", DoctorName: "Dr. Smith"}},
		{"bad type", HealthRecord{PatientName: "John Doe", DoctorName: "Dr. Smith", Title: "Flu", RecordType: "memo"}},
		{"bad status", HealthRecord{PatientName: "John Doe", DoctorName: "Dr. Smith", Title: "Flu", Status: "fine"}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateRecord(context.Background(), tc.r); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestCreateRecordAcceptsAllTypes(t *testing.T) {
	svc := newTestService()
	for _, rt := range []string{RecordConsultation, RecordLabResult, RecordImaging, RecordPrescription, RecordVitalSigns} {
		if _, err := svc.CreateRecord(context.Background(), HealthRecord{
			PatientName: "John Doe", DoctorName: "Dr. Smith", Title: "Entry", RecordType: rt,
		}); err != nil {
			t.Errorf("type %s: %v", rt, err)
		}
	}
}

func TestRecordsListNewestFirst(t *testing.T) {
	svc := newTestService()
	first, _ := svc.CreateRecord(context.Background(), HealthRecord{PatientName: "John Doe", DoctorName: "Dr. Smith", Title: "Flu"})
	second, _ := svc.CreateRecord(context.Background(), HealthRecord{PatientName: "John Doe", DoctorName: "Dr. Smith", Title: "Follow-up"})

	rows, err := svc.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != second.ID || rows[1].ID != first.ID {
		t.Errorf("expected newest first, got %+v", rows)
	}
}

func TestDeriveVitalStatus(t *testing.T) {
	cases := []struct {
		vitalType string
		value     float64
		want      string
	}{
		{VitalHeartRate, 55, VitalLow},
		{VitalHeartRate, 72, VitalNormal},
		{VitalHeartRate, 110, VitalHigh},
		{VitalTemperature, 96.5, VitalLow},
		{VitalTemperature, 98.6, VitalNormal},
		{VitalTemperature, 100.2, VitalHigh},
		{VitalBloodSugar, 65, VitalLow},
		{VitalBloodSugar, 95, VitalNormal},
		{VitalBloodSugar, 180, VitalHigh},
		{VitalBloodPressure, 120, VitalNormal},
		{VitalWeight, 70, VitalNormal},
	}
	for _, tc := range cases {
		if got := DeriveVitalStatus(tc.vitalType, tc.value); got != tc.want {
			t.Errorf("DeriveVitalStatus(%s, %v) = %q, want %q", tc.vitalType, tc.value, got, tc.want)
		}
	}
}

func TestRecordVital(t *testing.T) {
	svc := newTestService()
	v, err := svc.RecordVital(context.Background(), VitalReading{
		PatientName: "John Doe",
		Type:        VitalHeartRate,
		Value:       110,
	})
	if err != nil {
		t.Fatalf("record vital: %v", err)
	}
	if !strings.HasPrefix(v.ID, "VR") {
		t.Errorf("id = %q, want VR prefix", v.ID)
	}
	if v.Unit != "bpm" {
		t.Errorf("unit = %q, want bpm", v.Unit)
	}
	if v.Status != VitalHigh {
		t.Errorf("status = %q, want high", v.Status)
	}
	if v.Timestamp == "" {
		t.Error("timestamp should be stamped")
	}
}

func TestRecordVitalIgnoresCallerStatus(t *testing.T) {
	svc := newTestService()
	v, err := svc.RecordVital(context.Background(), VitalReading{
		PatientName: "John Doe",
		Type:        VitalBloodSugar,
		Value:       95,
		Status:      VitalHigh,
		Unit:        "pints",
	})
	if err != nil {
		t.Fatalf("record vital: %v", err)
	}
	if v.Status != VitalNormal {
		t.Errorf("status = %q, want derived normal", v.Status)
	}
	if v.Unit != "mg/dL" {
		t.Errorf("unit = %q, want mg/dL", v.Unit)
	}
}

func TestRecordVitalValidation(t *testing.T) {
	svc := newTestService()
	if _, err := svc.RecordVital(context.Background(), VitalReading{Type: VitalHeartRate, Value: 72}); err == nil {
		t.Error("missing patient should fail")
	}
	if _, err := svc.RecordVital(context.Background(), VitalReading{PatientName: "John Doe", Type: "mood", Value: 7}); err == nil {
		t.Error("unknown type should fail")
	}
	if _, err := svc.RecordVital(context.Background(), VitalReading{PatientName: "John Doe", Type: VitalHeartRate, Value: 0}); err == nil {
		t.Error("non-positive value should fail")
	}
}

func TestIssuePrescription(t *testing.T) {
	svc := newTestService()
	p, err := svc.IssuePrescription(context.Background(), Prescription{
		PatientName:      "John Doe",
		DoctorName:       "Dr. Sarah Smith",
		Date:             "2025-02-01",
		Diagnosis:        "Hypertension",
		RefillsRemaining: 2,
		Medications: []Medication{
			{Name: "Lisinopril", Dosage: "10mg", Frequency: "once daily", Duration: "30 days"},
		},
	})
	if err != nil {
		t.Fatalf("issue prescription: %v", err)
	}
	if !strings.HasPrefix(p.ID, "RX") {
		t.Errorf("id = %q, want RX prefix", p.ID)
	}
	if p.Status != PrescriptionActive {
		t.Errorf("status = %q, want active", p.Status)
	}
	if p.ValidUntil != "2025-03-03" {
		t.Errorf("valid until = %q, want 30 days out", p.ValidUntil)
	}
	if p.RefillsRemaining != 2 {
		t.Errorf("refills = %d, want 2", p.RefillsRemaining)
	}
}

func TestIssuePrescriptionValidation(t *testing.T) {
	svc := newTestService()
	if _, err := svc.IssuePrescription(context.Background(), Prescription{PatientName: "John Doe", DoctorName: "Dr. Smith", Diagnosis: "Flu"}); err == nil {
		t.Error("no medications should fail")
	}
	if _, err := svc.IssuePrescription(context.Background(), Prescription{
		PatientName: "John Doe",
		DoctorName:  "Dr. Smith",
		Diagnosis:   "Flu",
		Medications: []Medication{{Name: "Lisinopril"}},
	}); err == nil {
		t.Error("medication without dosage should fail")
	}
	if _, err := svc.IssuePrescription(context.Background(), Prescription{
		PatientName: "John Doe",
		DoctorName:  "Dr. Smith",
		Medications: []Medication{{Name: "Lisinopril", Dosage: "10mg"}},
	}); err == nil {
		t.Error("missing diagnosis should fail")
	}
	if _, err := svc.IssuePrescription(context.Background(), Prescription{
		PatientName:      "John Doe",
		DoctorName:       "Dr. Smith",
		Diagnosis:        "Flu",
		RefillsRemaining: -1,
		Medications:      []Medication{{Name: "Lisinopril", Dosage: "10mg"}},
	}); err == nil {
		t.Error("negative refills should fail")
	}
}

func TestPrescriptionLifecycle(t *testing.T) {
	svc := newTestService()
	p, err := svc.IssuePrescription(context.Background(), Prescription{
		PatientName: "John Doe",
		DoctorName:  "Dr. Sarah Smith",
		Diagnosis:   "Type 2 diabetes",
		Medications: []Medication{{Name: "Metformin", Dosage: "500mg"}},
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	p, err = svc.CompletePrescription(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if p.Status != PrescriptionCompleted {
		t.Fatalf("status = %q, want completed", p.Status)
	}

	if _, err := svc.CancelPrescription(context.Background(), p.ID); err == nil {
		t.Error("cancelling a completed prescription should fail")
	}
}
