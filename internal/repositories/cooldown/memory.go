package cooldown

import (
	"context"
	"errors"
	"sync"

	"github.com/hogwash-crew/hogwash/internal/models"
)

// memoryRepository is the local fallback cache for cooldowns. It keeps a
// device honest about its own recent attempts while the remote store is
// unreachable.
type memoryRepository struct {
	mu        sync.RWMutex
	cooldowns models.Cooldowns
}

// NewMemory creates an in-memory cooldown repository
func NewMemory() *memoryRepository {
	return &memoryRepository{}
}

// GetCooldowns returns the cached cooldown document
func (r *memoryRepository) GetCooldowns(ctx context.Context) (*GetCooldownsOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cooldowns == nil {
		return nil, ErrCooldownsNotFound
	}

	copied := make(models.Cooldowns, len(r.cooldowns))
	for name, ts := range r.cooldowns {
		copied[name] = ts
	}

	return &GetCooldownsOutput{
		Cooldowns: copied,
	}, nil
}

// SaveCooldowns replaces the cached cooldown document
func (r *memoryRepository) SaveCooldowns(ctx context.Context, input *SaveCooldownsInput) error {
	if input == nil || input.Cooldowns == nil {
		return errors.New("input and cooldowns cannot be nil")
	}

	copied := make(models.Cooldowns, len(input.Cooldowns))
	for name, ts := range input.Cooldowns {
		copied[name] = ts
	}

	r.mu.Lock()
	r.cooldowns = copied
	r.mu.Unlock()

	return nil
}
