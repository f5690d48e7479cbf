package notification

// Notification types.
const (
	TypeAppointment = "appointment"
	TypePayment     = "payment"
	TypeHealth      = "health"
	TypeSystem      = "system"
	TypeReminder    = "reminder"
)

// Priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification is an in-app message addressed to a user by display name.
type Notification struct {
	ID        string `json:"id"`
	Recipient string `json:"recipient"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
	Priority  string `json:"priority"`
	ActionURL string `json:"action_url,omitempty"`
}

var validTypes = map[string]bool{
	TypeAppointment: true, TypePayment: true, TypeHealth: true,
	TypeSystem: true, TypeReminder: true,
}

var validPriorities = map[string]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}
