package activity

import "context"

// Service defines the interface for the activity feed
type Service interface {
	// Append writes one entry, once. There is no retry: a failed write is
	// surfaced so the UI can tell the user the feed missed an event.
	Append(ctx context.Context, input *AppendInput) (*AppendOutput, error)

	// LoadRecent returns the newest entries, timestamp descending
	LoadRecent(ctx context.Context, input *LoadRecentInput) (*LoadRecentOutput, error)
}
