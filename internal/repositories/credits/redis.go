package credits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hogwash-crew/hogwash/internal/models"
	"github.com/redis/go-redis/v9"
)

// Well-known credit system document keys
const (
	// DrinkSystemKey holds the drink-assignment credit balance
	DrinkSystemKey = "alexDrinkSystem"

	// DangerZoneSystemKey holds the danger-zone credit balance
	DangerZoneSystemKey = "alexDangerZoneSystem"
)

// ErrCreditsNotFound is returned when no balance has been written yet
var ErrCreditsNotFound = errors.New("credits not found")

// Config holds configuration for the Redis credits repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Key is the document key for this credit system instance
	Key string
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	key    string
}

// NewRedis creates a new Redis-backed credits repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.Key == "" {
		return nil, errors.New("key cannot be empty")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
		key:    cfg.Key,
	}, nil
}

// GetCredits retrieves the credit balance from Redis
func (r *redisRepository) GetCredits(ctx context.Context) (*GetCreditsOutput, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCreditsNotFound
		}
		return nil, fmt.Errorf("failed to get credits: %w", err)
	}

	var balance models.CreditBalance
	if err := json.Unmarshal(raw, &balance); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credits: %w", err)
	}

	return &GetCreditsOutput{
		Balance: &balance,
	}, nil
}

// SaveCredits replaces the credit balance document
func (r *redisRepository) SaveCredits(ctx context.Context, input *SaveCreditsInput) error {
	if input == nil || input.Balance == nil {
		return errors.New("input and balance cannot be nil")
	}

	balanceJSON, err := json.Marshal(input.Balance)
	if err != nil {
		return fmt.Errorf("failed to marshal credits: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key, balanceJSON, 0)
	pipe.Publish(ctx, r.key, balanceJSON)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save credits: %w", err)
	}

	return nil
}
