package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hogwash-crew/hogwash/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// playersKey is the well-known document key for the ledger snapshot.
	// Change notifications are published on a channel of the same name.
	playersKey = "players"
)

// ErrLedgerNotFound is returned when no ledger document has been written yet
var ErrLedgerNotFound = errors.New("ledger not found")

// Config holds configuration for the Redis ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed ledger repository
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

// GetLedger retrieves the full ledger snapshot from Redis. Legacy scalar
// records and records with missing power-up sub-fields decode into the
// canonical shape; Normalized reports whether that happened.
func (r *redisRepository) GetLedger(ctx context.Context) (*GetLedgerOutput, error) {
	raw, err := r.client.Get(ctx, playersKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrLedgerNotFound
		}
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	var rawPlayers map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rawPlayers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger: %w", err)
	}

	ledger := make(models.Ledger, len(rawPlayers))
	normalized := false

	for name, rawPlayer := range rawPlayers {
		var player models.Player
		if err := json.Unmarshal(rawPlayer, &player); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player %s: %w", name, err)
		}

		ledger[name] = &player

		// A record already in canonical form round-trips byte for byte.
		canonical, err := json.Marshal(&player)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal player %s: %w", name, err)
		}

		var compacted bytes.Buffer
		if err := json.Compact(&compacted, rawPlayer); err != nil {
			return nil, fmt.Errorf("failed to compact player %s: %w", name, err)
		}

		if !bytes.Equal(canonical, compacted.Bytes()) {
			normalized = true
		}
	}

	return &GetLedgerOutput{
		Ledger:     ledger,
		Normalized: normalized,
	}, nil
}

// SaveLedger replaces the ledger document and publishes the new snapshot
// to subscribers. Last physical write wins in full; there is no version
// check.
func (r *redisRepository) SaveLedger(ctx context.Context, input *SaveLedgerInput) error {
	if input == nil || input.Ledger == nil {
		return errors.New("input and ledger cannot be nil")
	}

	ledgerJSON, err := json.Marshal(input.Ledger)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, playersKey, ledgerJSON, 0)
	pipe.Publish(ctx, playersKey, ledgerJSON)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	return nil
}

// WatchLedger subscribes to ledger change notifications
func (r *redisRepository) WatchLedger(ctx context.Context) (<-chan models.Ledger, error) {
	sub := r.client.Subscribe(ctx, playersKey)

	// Confirm the subscription before reading the current value so no
	// update between the two is lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to ledger: %w", err)
	}

	ch := make(chan models.Ledger, 1)

	// Fire immediately with the current snapshot, if one exists
	if out, err := r.GetLedger(ctx); err == nil {
		ch <- out.Ledger
	}

	go func() {
		defer close(ch)
		defer func() { _ = sub.Close() }()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var ledger models.Ledger
				if err := json.Unmarshal([]byte(msg.Payload), &ledger); err != nil {
					continue
				}

				select {
				case <-ctx.Done():
					return
				case ch <- ledger:
				}
			}
		}
	}()

	return ch, nil
}
