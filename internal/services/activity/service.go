package activity

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hogwash-crew/hogwash/internal/common/clock"
	"github.com/hogwash-crew/hogwash/internal/common/uuid"
	"github.com/hogwash-crew/hogwash/internal/models"
	activityRepo "github.com/hogwash-crew/hogwash/internal/repositories/activity"
)

// service implements the Service interface
type service struct {
	repo  activityRepo.Repository
	clock clock.Clock
	uuid  uuid.UUID
}

// NewService creates a new activity service
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

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		repo:  cfg.Repo,
		clock: cfg.Clock,
		uuid:  cfg.UUIDGenerator,
	}, nil
}

// Append writes one entry with a time-plus-random id
func (s *service) Append(ctx context.Context, input *AppendInput) (*AppendOutput, error) {
	if input == nil || input.Message == "" {
		return nil, errors.New("input and message cannot be empty")
	}

	now := s.clock.Now().UnixMilli()

	suffix := s.uuid.NewUUID()
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}

	entry := &models.ActivityEntry{
		ID:        fmt.Sprintf("%d_%s", now, suffix),
		Category:  input.Category,
		Icon:      input.Icon,
		Message:   input.Message,
		Timestamp: now,
		Extra:     input.Extra,
	}

	if err := s.repo.AppendActivity(ctx, &activityRepo.AppendActivityInput{
		Entry: entry,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &AppendOutput{EntryID: entry.ID}, nil
}

// LoadRecent returns the newest entries. The full history stays in the
// store; only the returned slice is truncated.
func (s *service) LoadRecent(ctx context.Context, input *LoadRecentInput) (*LoadRecentOutput, error) {
	limit := DefaultRecentLimit
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	out, err := s.repo.GetActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	entries := out.Entries
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Timestamp != entries[j].Timestamp {
			return entries[i].Timestamp > entries[j].Timestamp
		}
		return entries[i].ID > entries[j].ID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return &LoadRecentOutput{Entries: entries}, nil
}
