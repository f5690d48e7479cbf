package billing

// Payment statuses. A settled payment is paid; refunds flip it to refunded.
// Pending and failed cover records imported from outside the appointment
// flow.
const (
	PaymentPaid     = "paid"
	PaymentPending  = "pending"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods accepted at the desk.
const (
	MethodCard         = "card"
	MethodCash         = "cash"
	MethodInsurance    = "insurance"
	MethodBankTransfer = "bank_transfer"
)

// Invoice statuses.
const (
	InvoiceDraft   = "draft"
	InvoiceSent    = "sent"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// TaxRate applied to every invoice subtotal.
const TaxRate = 0.10

// Payment is one money movement, usually tied to an appointment.
type Payment struct {
	ID            string  `json:"id"`
	PatientName   string  `json:"patient_name"`
	DoctorName    string  `json:"doctor_name"`
	AppointmentID string  `json:"appointment_id,omitempty"`
	InvoiceID     string  `json:"invoice_id,omitempty"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transaction_id"`
	Description   string  `json:"description,omitempty"`
}

// ServiceLine is one billed item on an invoice.
type ServiceLine struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Invoice totals are computed at generation time, never accepted from the
// caller.
type Invoice struct {
	ID          string        `json:"id"`
	PatientName string        `json:"patient_name"`
	DoctorName  string        `json:"doctor_name"`
	Date        string        `json:"date"`
	DueDate     string        `json:"due_date"`
	Services    []ServiceLine `json:"services"`
	Subtotal    float64       `json:"subtotal"`
	Tax         float64       `json:"tax"`
	Total       float64       `json:"total"`
	Status      string        `json:"status"`
}

var validPaymentStatuses = map[string]bool{
	PaymentPaid: true, PaymentPending: true, PaymentFailed: true, PaymentRefunded: true,
}

var validPaymentMethods = map[string]bool{
	MethodCard: true, MethodCash: true, MethodInsurance: true, MethodBankTransfer: true,
}
