package broadcast

import (
	"context"

	"github.com/hogwash-crew/hogwash/internal/models"
)

// Service defines the interface for the broadcast event bus
type Service interface {
	// PublishDangerZone writes a danger-zone event to its single slot and
	// hands a notification to the delivery collaborator
	PublishDangerZone(ctx context.Context, input *PublishDangerZoneInput) (*PublishOutput, error)

	// PublishDrinkAssignment writes a drink-assignment event and notifies
	PublishDrinkAssignment(ctx context.Context, input *PublishDrinkAssignmentInput) (*PublishOutput, error)

	// PublishProofRequest writes a durable proof request
	PublishProofRequest(ctx context.Context, input *PublishProofRequestInput) (*PublishOutput, error)

	// SubmitProof marks a proof request submitted by field merge, leaving
	// sibling fields untouched
	SubmitProof(ctx context.Context, input *SubmitProofInput) error

	// Run subscribes to the event slots and dispatches fresh, unseen
	// events to the handler until ctx is cancelled
	Run(ctx context.Context) error
}

// Handler receives events the bus decided are actionable: fresh, not yet
// seen by this client, and not originated by its own identity.
type Handler interface {
	HandleDangerZone(ctx context.Context, event *models.DangerZoneEvent)

	// HandleDrinkAssignment carries the receiving player's role and, for
	// assignees, their drink count
	HandleDrinkAssignment(ctx context.Context, event *models.DrinkAssignmentEvent, role string, drinks int)
}

// Notifier is the delivery collaborator handed a plain payload whenever a
// broadcastable event occurs. Delivery (push, in-page, or both) is its
// problem.
type Notifier interface {
	Notify(ctx context.Context, notification *models.Notification) error
}
