package activity

import (
	"context"
)

// Repository defines the interface for activity feed persistence
type Repository interface {
	// AppendActivity writes one entry to the append-only collection.
	// Entries are never updated or deleted.
	AppendActivity(ctx context.Context, input *AppendActivityInput) error

	// GetActivities retrieves every stored entry, unordered
	GetActivities(ctx context.Context) (*GetActivitiesOutput, error)
}
