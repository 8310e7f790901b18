package activity

import "github.com/hogwash-crew/hogwash/internal/models"

// AppendActivityInput contains parameters for appending an entry
type AppendActivityInput struct {
	Entry *models.ActivityEntry
}

// GetActivitiesOutput contains every stored activity entry
type GetActivitiesOutput struct {
	Entries []*models.ActivityEntry
}
