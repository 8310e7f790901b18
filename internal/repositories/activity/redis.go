package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hogwash-crew/hogwash/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// activitiesKey is the hash holding the append-only feed, one field
	// per entry id
	activitiesKey = "activities"
)

// Config holds configuration for the Redis activity repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed activity repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// AppendActivity writes one entry keyed by its id
func (r *redisRepository) AppendActivity(ctx context.Context, input *AppendActivityInput) error {
	if input == nil || input.Entry == nil {
		return errors.New("input and entry cannot be nil")
	}

	if input.Entry.ID == "" {
		return errors.New("entry ID cannot be empty")
	}

	entryJSON, err := json.Marshal(input.Entry)
	if err != nil {
		return fmt.Errorf("failed to marshal activity entry: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, activitiesKey, input.Entry.ID, entryJSON)
	pipe.Publish(ctx, activitiesKey, entryJSON)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}

	return nil
}

// GetActivities retrieves every stored entry
func (r *redisRepository) GetActivities(ctx context.Context) (*GetActivitiesOutput, error) {
	fields, err := r.client.HGetAll(ctx, activitiesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}

	entries := make([]*models.ActivityEntry, 0, len(fields))
	for id, raw := range fields {
		var entry models.ActivityEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity %s: %w", id, err)
		}
		entries = append(entries, &entry)
	}

	return &GetActivitiesOutput{
		Entries: entries,
	}, nil
}
