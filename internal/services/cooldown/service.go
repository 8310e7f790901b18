package cooldown

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hogwash-crew/hogwash/internal/common/clock"
	"github.com/hogwash-crew/hogwash/internal/models"
	cooldownRepo "github.com/hogwash-crew/hogwash/internal/repositories/cooldown"
)

// service implements the Service interface
type service struct {
	repo  cooldownRepo.Repository
	local cooldownRepo.Repository
	clock clock.Clock
}

// NewService creates a new cooldown service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repo == nil {
		return nil, ErrNilRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		repo:  cfg.Repo,
		local: cfg.Local,
		clock: cfg.Clock,
	}, nil
}

// load merges the local cache and the remote snapshot, preferring remote
// values per player. When the remote store is unreachable the local cache
// carries the check on its own (read-through fallback).
func (s *service) load(ctx context.Context) (models.Cooldowns, error) {
	merged := models.Cooldowns{}

	if s.local != nil {
		if out, err := s.local.GetCooldowns(ctx); err == nil {
			merged = out.Cooldowns
		}
	}

	out, err := s.repo.GetCooldowns(ctx)
	if err != nil {
		if errors.Is(err, cooldownRepo.ErrCooldownsNotFound) {
			return merged, nil
		}
		if len(merged) > 0 {
			log.Printf("cooldown remote read failed, using local cache: %v", err)
			return merged, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return merged.Merge(out.Cooldowns), nil
}

// IsOnCooldown reports whether a player is inside the rolling window
func (s *service) IsOnCooldown(ctx context.Context, input *IsOnCooldownInput) (*IsOnCooldownOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	cooldowns, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	lastAction, ok := cooldowns[input.Name]
	if !ok {
		// Absent record means the player never gambled
		return &IsOnCooldownOutput{}, nil
	}

	elapsed := s.clock.Now().UnixMilli() - lastAction
	if elapsed >= Window.Milliseconds() {
		return &IsOnCooldownOutput{}, nil
	}

	return &IsOnCooldownOutput{
		OnCooldown: true,
		Remaining:  Window - msToDuration(elapsed),
	}, nil
}

// Remaining returns how long until a player may gamble again
func (s *service) Remaining(ctx context.Context, input *RemainingInput) (*RemainingOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	out, err := s.IsOnCooldown(ctx, &IsOnCooldownInput{Name: input.Name})
	if err != nil {
		return nil, err
	}

	return &RemainingOutput{Remaining: out.Remaining}, nil
}

// RecordAttempt stamps a player's last-action time in both the remote
// store and the local cache. The stamp precedes outcome resolution, which
// closes most of the double-spend window even though the two writes are
// not atomic.
func (s *service) RecordAttempt(ctx context.Context, input *RecordAttemptInput) error {
	if input == nil || input.Name == "" {
		return errors.New("input and name cannot be empty")
	}

	cooldowns, err := s.load(ctx)
	if err != nil {
		return err
	}

	cooldowns[input.Name] = s.clock.Now().UnixMilli()

	if s.local != nil {
		if err := s.local.SaveCooldowns(ctx, &cooldownRepo.SaveCooldownsInput{
			Cooldowns: cooldowns,
		}); err != nil {
			log.Printf("cooldown local save failed: %v", err)
		}
	}

	if err := s.repo.SaveCooldowns(ctx, &cooldownRepo.SaveCooldownsInput{
		Cooldowns: cooldowns,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// ValidateAttempt rejects attempts that violate the cooldown or identity
// preconditions. Anonymous sessions may gamble under any selected name.
func (s *service) ValidateAttempt(ctx context.Context, input *ValidateAttemptInput) error {
	if input == nil || input.SelectedName == "" {
		return errors.New("input and selected name cannot be empty")
	}

	if input.SessionIdentity != "" && input.SessionIdentity != input.SelectedName {
		return ErrWrongPlayer
	}

	out, err := s.IsOnCooldown(ctx, &IsOnCooldownInput{Name: input.SelectedName})
	if err != nil {
		return err
	}

	if out.OnCooldown {
		return ErrOnCooldown
	}

	return nil
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
