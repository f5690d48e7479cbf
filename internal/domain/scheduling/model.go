package scheduling

// Appointment types.
const (
	TypeConsultation = "consultation"
	TypeFollowup     = "followup"
	TypeEmergency    = "emergency"
	TypeVideo        = "video"
)

// Appointment statuses. Transitions: scheduled -> confirmed or cancelled,
// confirmed -> completed or cancelled. Completed and cancelled are terminal.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment statuses on an appointment: pending -> paid -> refunded.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Video call statuses. Transitions: scheduled -> in-progress, cancelled or
// missed; in-progress -> completed.
const (
	CallScheduled  = "scheduled"
	CallInProgress = "in-progress"
	CallCompleted  = "completed"
	CallCancelled  = "cancelled"
	CallMissed     = "missed"
)

// Appointment joins to its patient and doctor by display name, same as the
// rest of the store.
type Appointment struct {
	ID            string  `json:"id"`
	PatientName   string  `json:"patient_name"`
	DoctorName    string  `json:"doctor_name"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason"`
	Duration      int     `json:"duration"`
	Fee           float64 `json:"fee"`
	PaymentStatus string  `json:"payment_status"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// AppointmentPatch carries a partial update; nil fields keep stored values.
type AppointmentPatch struct {
	Date          *string  `json:"date,omitempty"`
	Time          *string  `json:"time,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Reason        *string  `json:"reason,omitempty"`
	Duration      *int     `json:"duration,omitempty"`
	Fee           *float64 `json:"fee,omitempty"`
	PaymentStatus *string  `json:"payment_status,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	TransactionID *string  `json:"transaction_id,omitempty"`
}

func (a *Appointment) apply(patch AppointmentPatch) {
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Time != nil {
		a.Time = *patch.Time
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Reason != nil {
		a.Reason = *patch.Reason
	}
	if patch.Duration != nil {
		a.Duration = *patch.Duration
	}
	if patch.Fee != nil {
		a.Fee = *patch.Fee
	}
	if patch.PaymentStatus != nil {
		a.PaymentStatus = *patch.PaymentStatus
	}
	if patch.PaymentMethod != nil {
		a.PaymentMethod = *patch.PaymentMethod
	}
	if patch.TransactionID != nil {
		a.TransactionID = *patch.TransactionID
	}
}

// VideoCall is a scheduled telemedicine session. The meeting link is a
// constructed URL; there is no signaling behind it.
type VideoCall struct {
	ID                 string `json:"id"`
	PatientName        string `json:"patient_name"`
	DoctorName         string `json:"doctor_name"`
	ScheduledTime      string `json:"scheduled_time"`
	Duration           int    `json:"duration"`
	Status             string `json:"status"`
	MeetingLink        string `json:"meeting_link"`
	RoomID             string `json:"room_id"`
	Notes              string `json:"notes,omitempty"`
	RecordingAvailable bool   `json:"recording_available"`
}

// VideoCallPatch carries a partial video call update.
type VideoCallPatch struct {
	ScheduledTime      *string `json:"scheduled_time,omitempty"`
	Duration           *int    `json:"duration,omitempty"`
	Status             *string `json:"status,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	RecordingAvailable *bool   `json:"recording_available,omitempty"`
}

func (v *VideoCall) apply(patch VideoCallPatch) {
	if patch.ScheduledTime != nil {
		v.ScheduledTime = *patch.ScheduledTime
	}
	if patch.Duration != nil {
		v.Duration = *patch.Duration
	}
	if patch.Status != nil {
		v.Status = *patch.Status
	}
	if patch.Notes != nil {
		v.Notes = *patch.Notes
	}
	if patch.RecordingAvailable != nil {
		v.RecordingAvailable = *patch.RecordingAvailable
	}
}

var validAppointmentTypes = map[string]bool{
	TypeConsultation: true, TypeFollowup: true, TypeEmergency: true, TypeVideo: true,
}

// appointmentTransitions maps a status to the statuses reachable from it.
var appointmentTransitions = map[string][]string{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// paymentTransitions: refunds only ever follow a successful payment.
var paymentTransitions = map[string][]string{
	PaymentPending:  {PaymentPaid},
	PaymentPaid:     {PaymentRefunded},
	PaymentRefunded: {},
}

var callTransitions = map[string][]string{
	CallScheduled:  {CallInProgress, CallCancelled, CallMissed},
	CallInProgress: {CallCompleted},
	CallCompleted:  {},
	CallCancelled:  {},
	CallMissed:     {},
}

func canTransition(table map[string][]string, from, to string) bool {
	next, ok := table[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
