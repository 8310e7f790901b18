package broadcast

import (
	"context"

	"github.com/hogwash-crew/hogwash/internal/models"
)

// Repository defines the interface for broadcast event persistence
type Repository interface {
	// SaveDangerZone overwrites the single-slot danger-zone event and
	// notifies subscribers
	SaveDangerZone(ctx context.Context, input *SaveDangerZoneInput) error

	// GetDangerZone retrieves the latest danger-zone event
	GetDangerZone(ctx context.Context) (*GetDangerZoneOutput, error)

	// WatchDangerZone subscribes to danger-zone events. The returned
	// channel fires immediately with the current slot value (when one
	// exists), then on every overwrite, until ctx is cancelled.
	WatchDangerZone(ctx context.Context) (<-chan *models.DangerZoneEvent, error)

	// SaveDrinkAssignment overwrites the single-slot drink-assignment
	// event and notifies subscribers
	SaveDrinkAssignment(ctx context.Context, input *SaveDrinkAssignmentInput) error

	// GetDrinkAssignment retrieves the latest drink-assignment event
	GetDrinkAssignment(ctx context.Context) (*GetDrinkAssignmentOutput, error)

	// WatchDrinkAssignments subscribes to drink-assignment events with the
	// same contract as WatchDangerZone
	WatchDrinkAssignments(ctx context.Context) (<-chan *models.DrinkAssignmentEvent, error)

	// SaveAcknowledgment writes a per-recipient ack record keyed by
	// eventId plus player name
	SaveAcknowledgment(ctx context.Context, input *SaveAcknowledgmentInput) error

	// GetAcknowledgment retrieves one ack record
	GetAcknowledgment(ctx context.Context, input *GetAcknowledgmentInput) (*models.DrinkAcknowledgment, error)

	// SaveProofRequest writes a durable proof-request record
	SaveProofRequest(ctx context.Context, input *SaveProofRequestInput) error

	// UpdateProofStatus updates only the status (and optional proof
	// reference) of a proof request, leaving sibling fields untouched
	UpdateProofStatus(ctx context.Context, input *UpdateProofStatusInput) error

	// GetProofRequest retrieves one proof request
	GetProofRequest(ctx context.Context, input *GetProofRequestInput) (*models.ProofRequest, error)

	// SaveNotification writes a durable notification record
	SaveNotification(ctx context.Context, input *SaveNotificationInput) error
}
