package cooldown

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hogwash-crew/hogwash/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// cooldownsKey is the well-known document key for gambling cooldowns
	cooldownsKey = "hogwashCooldowns"
)

// ErrCooldownsNotFound is returned when no cooldown document has been written yet
var ErrCooldownsNotFound = errors.New("cooldowns not found")

// Config holds configuration for the Redis cooldown repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed cooldown repository
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

// GetCooldowns retrieves the cooldown document from Redis
func (r *redisRepository) GetCooldowns(ctx context.Context) (*GetCooldownsOutput, error) {
	raw, err := r.client.Get(ctx, cooldownsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCooldownsNotFound
		}
		return nil, fmt.Errorf("failed to get cooldowns: %w", err)
	}

	var cooldowns models.Cooldowns
	if err := json.Unmarshal(raw, &cooldowns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cooldowns: %w", err)
	}

	return &GetCooldownsOutput{
		Cooldowns: cooldowns,
	}, nil
}

// SaveCooldowns replaces the cooldown document
func (r *redisRepository) SaveCooldowns(ctx context.Context, input *SaveCooldownsInput) error {
	if input == nil || input.Cooldowns == nil {
		return errors.New("input and cooldowns cannot be nil")
	}

	cooldownsJSON, err := json.Marshal(input.Cooldowns)
	if err != nil {
		return fmt.Errorf("failed to marshal cooldowns: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, cooldownsKey, cooldownsJSON, 0)
	pipe.Publish(ctx, cooldownsKey, cooldownsJSON)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save cooldowns: %w", err)
	}

	return nil
}
