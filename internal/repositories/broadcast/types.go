package broadcast

import "github.com/hogwash-crew/hogwash/internal/models"

// SaveDangerZoneInput contains parameters for writing a danger-zone event
type SaveDangerZoneInput struct {
	Event *models.DangerZoneEvent
}

// GetDangerZoneOutput contains the latest danger-zone event
type GetDangerZoneOutput struct {
	Event *models.DangerZoneEvent
}

// SaveDrinkAssignmentInput contains parameters for writing a drink-assignment event
type SaveDrinkAssignmentInput struct {
	Event *models.DrinkAssignmentEvent
}

// GetDrinkAssignmentOutput contains the latest drink-assignment event
type GetDrinkAssignmentOutput struct {
	Event *models.DrinkAssignmentEvent
}

// SaveAcknowledgmentInput contains parameters for writing an ack record
type SaveAcknowledgmentInput struct {
	Acknowledgment *models.DrinkAcknowledgment
}

// GetAcknowledgmentInput contains parameters for retrieving an ack record
type GetAcknowledgmentInput struct {
	EventID    string
	PlayerName string
}

// SaveProofRequestInput contains parameters for writing a proof request
type SaveProofRequestInput struct {
	Request *models.ProofRequest
}

// UpdateProofStatusInput contains parameters for a field-merge status update
type UpdateProofStatusInput struct {
	RequestID string
	Status    string

	// ProofRef optionally links the submitted proof image record
	ProofRef string
}

// GetProofRequestInput contains parameters for retrieving a proof request
type GetProofRequestInput struct {
	RequestID string
}

// SaveNotificationInput contains parameters for writing a notification record
type SaveNotificationInput struct {
	Notification *models.Notification
}
