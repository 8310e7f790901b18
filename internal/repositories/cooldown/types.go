package cooldown

import "github.com/hogwash-crew/hogwash/internal/models"

// GetCooldownsOutput contains the result of retrieving the cooldown document
type GetCooldownsOutput struct {
	Cooldowns models.Cooldowns
}

// SaveCooldownsInput contains parameters for replacing the cooldown document
type SaveCooldownsInput struct {
	Cooldowns models.Cooldowns
}
