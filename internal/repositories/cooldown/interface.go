package cooldown

import (
	"context"
)

// Repository defines the interface for cooldown record persistence
type Repository interface {
	// GetCooldowns retrieves the full cooldown document
	GetCooldowns(ctx context.Context) (*GetCooldownsOutput, error)

	// SaveCooldowns replaces the entire cooldown document
	SaveCooldowns(ctx context.Context, input *SaveCooldownsInput) error
}
