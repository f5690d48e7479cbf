package identity

// Patient statuses.
const (
	PatientActive   = "active"
	PatientInactive = "inactive"
	PatientCritical = "critical"
)

// Doctor statuses.
const (
	DoctorActive   = "active"
	DoctorInactive = "inactive"
	DoctorOnLeave  = "on-leave"
)

// Patient is a practice patient. AssignedDoctor is a display name, not a
// foreign key: owner-scoped views join on it by exact string match, so a
// mismatched name silently orphans the patient from that doctor's views.
type Patient struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender"`
	DateOfBirth      string   `json:"date_of_birth"`
	Address          string   `json:"address"`
	EmergencyContact string   `json:"emergency_contact"`
	BloodType        string   `json:"blood_type"`
	Allergies        []string `json:"allergies"`
	LastVisit        string   `json:"last_visit"`
	Status           string   `json:"status"`
	AssignedDoctor   string   `json:"assigned_doctor"`
}

// Doctor is a practicing physician. Patients is a stored display count and
// is not reconciled against actual patient rows.
type Doctor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Specialization  string   `json:"specialization"`
	Experience      int      `json:"experience"`
	Rating          float64  `json:"rating"`
	Patients        int      `json:"patients"`
	ConsultationFee float64  `json:"consultation_fee"`
	Availability    []string `json:"availability"`
	Status          string   `json:"status"`
	LicenseNumber   string   `json:"license_number"`
	Education       string   `json:"education"`
	JoinedDate      string   `json:"joined_date"`
}

// PatientPatch carries the fields an update may change. Nil means leave the
// stored value alone; updates shallow-merge, last writer wins.
type PatientPatch struct {
	Name             *string   `json:"name,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	Age              *int      `json:"age,omitempty"`
	Address          *string   `json:"address,omitempty"`
	EmergencyContact *string   `json:"emergency_contact,omitempty"`
	BloodType        *string   `json:"blood_type,omitempty"`
	Allergies        *[]string `json:"allergies,omitempty"`
	LastVisit        *string   `json:"last_visit,omitempty"`
	Status           *string   `json:"status,omitempty"`
	AssignedDoctor   *string   `json:"assigned_doctor,omitempty"`
}

// DoctorPatch carries the fields a doctor update may change.
type DoctorPatch struct {
	Name            *string   `json:"name,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	Specialization  *string   `json:"specialization,omitempty"`
	Experience      *int      `json:"experience,omitempty"`
	Rating          *float64  `json:"rating,omitempty"`
	Patients        *int      `json:"patients,omitempty"`
	ConsultationFee *float64  `json:"consultation_fee,omitempty"`
	Availability    *[]string `json:"availability,omitempty"`
	Status          *string   `json:"status,omitempty"`
	Education       *string   `json:"education,omitempty"`
}

func (p *Patient) apply(patch PatientPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.EmergencyContact != nil {
		p.EmergencyContact = *patch.EmergencyContact
	}
	if patch.BloodType != nil {
		p.BloodType = *patch.BloodType
	}
	if patch.Allergies != nil {
		p.Allergies = *patch.Allergies
	}
	if patch.LastVisit != nil {
		p.LastVisit = *patch.LastVisit
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.AssignedDoctor != nil {
		p.AssignedDoctor = *patch.AssignedDoctor
	}
}

func (d *Doctor) apply(patch DoctorPatch) {
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Phone != nil {
		d.Phone = *patch.Phone
	}
	if patch.Specialization != nil {
		d.Specialization = *patch.Specialization
	}
	if patch.Experience != nil {
		d.Experience = *patch.Experience
	}
	if patch.Rating != nil {
		d.Rating = *patch.Rating
	}
	if patch.Patients != nil {
		d.Patients = *patch.Patients
	}
	if patch.ConsultationFee != nil {
		d.ConsultationFee = *patch.ConsultationFee
	}
	if patch.Availability != nil {
		d.Availability = *patch.Availability
	}
	if patch.Status != nil {
		d.Status = *patch.Status
	}
	if patch.Education != nil {
		d.Education = *patch.Education
	}
}

var validPatientStatuses = map[string]bool{
	PatientActive: true, PatientInactive: true, PatientCritical: true,
}

var validDoctorStatuses = map[string]bool{
	DoctorActive: true, DoctorInactive: true, DoctorOnLeave: true,
}
