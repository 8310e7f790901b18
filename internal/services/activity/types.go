package activity

import (
	"github.com/hogwash-crew/hogwash/internal/common/clock"
	"github.com/hogwash-crew/hogwash/internal/common/uuid"
	"github.com/hogwash-crew/hogwash/internal/models"
	activityRepo "github.com/hogwash-crew/hogwash/internal/repositories/activity"
)

// DefaultRecentLimit is how many entries the feed shows by default
const DefaultRecentLimit = 20

// Config holds configuration for the activity service
type Config struct {
	// Repo is the activity repository
	Repo activityRepo.Repository

	// Clock supplies entry timestamps
	Clock clock.Clock

	// UUIDGenerator supplies the random suffix of entry ids
	UUIDGenerator uuid.UUID
}

// AppendInput contains parameters for appending an entry
type AppendInput struct {
	Category string
	Icon     string
	Message  string
	Extra    map[string]string
}

// AppendOutput contains the id of the written entry
type AppendOutput struct {
	EntryID string
}

// LoadRecentInput contains parameters for loading the feed
type LoadRecentInput struct {
	// Limit caps the returned entries; zero means DefaultRecentLimit
	Limit int
}

// LoadRecentOutput contains the newest entries, timestamp descending
type LoadRecentOutput struct {
	Entries []*models.ActivityEntry
}
