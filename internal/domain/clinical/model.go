package clinical

// Health record types mirror what the practice actually files.
const (
	RecordConsultation = "consultation"
	RecordLabResult    = "lab-result"
	RecordImaging      = "imaging"
	RecordPrescription = "prescription"
	RecordVitalSigns   = "vital-signs"
)

// Health record statuses set by the reviewing clinician.
const (
	RecordNormal   = "normal"
	RecordAbnormal = "abnormal"
	RecordCritical = "critical"
	RecordPending  = "pending"
)

// Prescription statuses. active -> completed or cancelled; both terminal.
const (
	PrescriptionActive    = "active"
	PrescriptionCompleted = "completed"
	PrescriptionCancelled = "cancelled"
)

// Vital statuses derived from the reading value, never set by callers.
const (
	VitalNormal = "normal"
	VitalLow    = "low"
	VitalHigh   = "high"
)

// Vital reading types with derivation rules.
const (
	VitalHeartRate     = "heart_rate"
	VitalTemperature   = "temperature"
	VitalBloodSugar    = "blood_sugar"
	VitalBloodPressure = "blood_pressure"
	VitalWeight        = "weight"
	VitalOxygen        = "oxygen_saturation"
)

// Vitals is the snapshot captured alongside a health record.
type Vitals struct {
	BloodPressure string  `json:"blood_pressure,omitempty"`
	HeartRate     int     `json:"heart_rate,omitempty"`
	Temperature   float64 `json:"temperature,omitempty"`
	Weight        float64 `json:"weight,omitempty"`
}

// HealthRecord is a clinical document filed against a patient by name. The
// patient id rides along for display; the name string is the join key.
type HealthRecord struct {
	ID          string   `json:"id"`
	PatientName string   `json:"patient_name"`
	PatientID   string   `json:"patient_id,omitempty"`
	RecordType  string   `json:"record_type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DoctorName  string   `json:"doctor_name"`
	Date        string   `json:"date"`
	Status      string   `json:"status"`
	Attachments []string `json:"attachments"`
	Vitals      *Vitals  `json:"vitals,omitempty"`
}

// HealthRecordPatch carries a partial record update.
type HealthRecordPatch struct {
	RecordType  *string   `json:"record_type,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Attachments *[]string `json:"attachments,omitempty"`
	Vitals      *Vitals   `json:"vitals,omitempty"`
}

func (r *HealthRecord) apply(patch HealthRecordPatch) {
	if patch.RecordType != nil {
		r.RecordType = *patch.RecordType
	}
	if patch.Title != nil {
		r.Title = *patch.Title
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}
	if patch.Date != nil {
		r.Date = *patch.Date
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.Attachments != nil {
		r.Attachments = *patch.Attachments
	}
	if patch.Vitals != nil {
		r.Vitals = patch.Vitals
	}
}

// VitalReading is a single measurement. Status and unit are derived from the
// type and value at creation.
type VitalReading struct {
	ID          string  `json:"id"`
	PatientName string  `json:"patient_name"`
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Notes       string  `json:"notes,omitempty"`
}

// Medication is one line in a prescription.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions,omitempty"`
}

// Prescription groups the medications issued in one sitting.
type Prescription struct {
	ID               string       `json:"id"`
	PatientName      string       `json:"patient_name"`
	PatientID        string       `json:"patient_id,omitempty"`
	DoctorName       string       `json:"doctor_name"`
	DoctorID         string       `json:"doctor_id,omitempty"`
	Date             string       `json:"date"`
	Medications      []Medication `json:"medications"`
	Diagnosis        string       `json:"diagnosis"`
	Instructions     string       `json:"instructions,omitempty"`
	Status           string       `json:"status"`
	RefillsRemaining int          `json:"refills_remaining"`
	ValidUntil       string       `json:"valid_until"`
}

// PrescriptionPatch carries a partial prescription update.
type PrescriptionPatch struct {
	Date             *string       `json:"date,omitempty"`
	Medications      *[]Medication `json:"medications,omitempty"`
	Diagnosis        *string       `json:"diagnosis,omitempty"`
	Instructions     *string       `json:"instructions,omitempty"`
	Status           *string       `json:"status,omitempty"`
	RefillsRemaining *int          `json:"refills_remaining,omitempty"`
	ValidUntil       *string       `json:"valid_until,omitempty"`
}

func (p *Prescription) apply(patch PrescriptionPatch) {
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	if patch.Medications != nil {
		p.Medications = *patch.Medications
	}
	if patch.Diagnosis != nil {
		p.Diagnosis = *patch.Diagnosis
	}
	if patch.Instructions != nil {
		p.Instructions = *patch.Instructions
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.RefillsRemaining != nil {
		p.RefillsRemaining = *patch.RefillsRemaining
	}
	if patch.ValidUntil != nil {
		p.ValidUntil = *patch.ValidUntil
	}
}

var validRecordTypes = map[string]bool{
	RecordConsultation: true, RecordLabResult: true, RecordImaging: true,
	RecordPrescription: true, RecordVitalSigns: true,
}

var validRecordStatuses = map[string]bool{
	RecordNormal: true, RecordAbnormal: true, RecordCritical: true, RecordPending: true,
}

var prescriptionTransitions = map[string][]string{
	PrescriptionActive:    {PrescriptionCompleted, PrescriptionCancelled},
	PrescriptionCompleted: {},
	PrescriptionCancelled: {},
}

var vitalUnits = map[string]string{
	VitalHeartRate:     "bpm",
	VitalTemperature:   "°F",
	VitalBloodSugar:    "mg/dL",
	VitalBloodPressure: "mmHg",
	VitalWeight:        "kg",
	VitalOxygen:        "%",
}

// DeriveVitalStatus classifies a reading against the clinic's reference
// ranges. Types without a range always read normal.
func DeriveVitalStatus(vitalType string, value float64) string {
	switch vitalType {
	case VitalHeartRate:
		if value < 60 {
			return VitalLow
		}
		if value > 100 {
			return VitalHigh
		}
	case VitalTemperature:
		if value < 97 {
			return VitalLow
		}
		if value > 99.5 {
			return VitalHigh
		}
	case VitalBloodSugar:
		if value < 70 {
			return VitalLow
		}
		if value > 140 {
			return VitalHigh
		}
	}
	return VitalNormal
}
