package broadcast

import (
	"time"

	"github.com/hogwash-crew/hogwash/internal/common/clock"
	"github.com/hogwash-crew/hogwash/internal/common/uuid"
	broadcastRepo "github.com/hogwash-crew/hogwash/internal/repositories/broadcast"
)

// FreshnessWindow is the maximum event age, measured against the
// receiver's clock at notification time, for which a broadcast is still
// acted upon. Older events are replays seen by late or reconnecting
// subscribers and are ignored.
const FreshnessWindow = 10 * time.Second

// Config holds configuration for the broadcast service
type Config struct {
	// Repo is the broadcast event repository
	Repo broadcastRepo.Repository

	// Clock supplies the current time
	Clock clock.Clock

	// UUIDGenerator supplies event ids
	UUIDGenerator uuid.UUID

	// Identity returns the player name this client is authenticated as,
	// or empty for an anonymous session. Used for self-suppression and
	// acknowledgment records.
	Identity func() string

	// Handler receives actionable events. Optional; without one the bus
	// still maintains freshness and dedup state.
	Handler Handler

	// Notifier is handed a payload per published event. Optional.
	Notifier Notifier
}

// PublishDangerZoneInput contains parameters for a danger-zone broadcast
type PublishDangerZoneInput struct {
	PlayerName string
}

// PublishDrinkAssignmentInput contains parameters for a drink assignment
type PublishDrinkAssignmentInput struct {
	Assignments map[string]int
	AssignedBy  string
	Message     string
}

// PublishProofRequestInput contains parameters for a proof request
type PublishProofRequestInput struct {
	PlayerName  string
	RequestedBy string
}

// SubmitProofInput contains parameters for marking a proof submitted
type SubmitProofInput struct {
	RequestID string
	ProofRef  string
}

// PublishOutput contains the id of the published event
type PublishOutput struct {
	EventID string
}
