package models

// DangerZoneEvent is the single-slot broadcast written when a danger zone
// is triggered. Receivers act on it only within the freshness window.
type DangerZoneEvent struct {
	PlayerName string `json:"playerName"`
	Timestamp  int64  `json:"timestamp"`
	EventID    string `json:"eventId"`
}

// DrinkAssignmentEvent is the single-slot broadcast written when a player
// spends drink credits to assign drinks to others.
type DrinkAssignmentEvent struct {
	Assignments map[string]int `json:"assignments"`
	TotalDrinks int            `json:"totalDrinks"`
	AssignedBy  string         `json:"assignedBy"`
	Message     string         `json:"message,omitempty"`
	Timestamp   int64          `json:"timestamp"`
	EventID     string         `json:"eventId"`
}

// DrinkAcknowledgment records that one recipient acknowledged a drink
// assignment. Keyed by eventId plus player name so each recipient leaves
// an independent audit trail.
type DrinkAcknowledgment struct {
	EventID        string `json:"eventId"`
	PlayerName     string `json:"playerName"`
	Role           string `json:"role"`
	AcknowledgedAt int64  `json:"acknowledgedAt"`
}

// Roles recorded on drink acknowledgments
const (
	AckRoleAssignee  = "assignee"
	AckRoleBystander = "bystander"
)

// ProofRequest asks a player to submit photographic proof of a drink. Its
// status is updated by field merge so concurrent writers cannot clobber
// sibling fields.
type ProofRequest struct {
	ID          string `json:"id"`
	PlayerName  string `json:"playerName"`
	RequestedBy string `json:"requestedBy"`
	Status      string `json:"status"`
	Timestamp   int64  `json:"timestamp"`
	ProofRef    string `json:"proofRef,omitempty"`
}

// Proof request statuses
const (
	ProofStatusPending   = "pending"
	ProofStatusSubmitted = "submitted"
)

// Notification is the plain payload handed to the delivery collaborator
// whenever a broadcastable event occurs.
type Notification struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Timestamp int64             `json:"timestamp"`
	Payload   map[string]string `json:"payload,omitempty"`
}
