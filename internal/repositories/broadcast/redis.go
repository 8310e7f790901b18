package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/hogwash-crew/hogwash/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// dangerZoneKey is the single-slot key for the latest danger-zone event
	dangerZoneKey = "dangerZone"

	// drinkAssignmentsKey is the single-slot key for the latest drink assignment
	drinkAssignmentsKey = "drinkAssignments"

	// Key prefixes for durable per-event records
	acknowledgmentKeyPrefix = "drinkAcknowledgments:"
	proofRequestKeyPrefix   = "proofRequests:"
	notificationKeyPrefix   = "notifications:"
)

// Sentinel errors for missing records
var (
	ErrEventNotFound          = errors.New("broadcast event not found")
	ErrAcknowledgmentNotFound = errors.New("acknowledgment not found")
	ErrProofRequestNotFound   = errors.New("proof request not found")
)

// Config holds configuration for the Redis broadcast repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed broadcast repository
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

// SaveDangerZone overwrites the danger-zone slot and publishes the event
func (r *redisRepository) SaveDangerZone(ctx context.Context, input *SaveDangerZoneInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}

	return r.saveSlot(ctx, dangerZoneKey, input.Event)
}

// GetDangerZone retrieves the latest danger-zone event
func (r *redisRepository) GetDangerZone(ctx context.Context) (*GetDangerZoneOutput, error) {
	var event models.DangerZoneEvent
	if err := r.getSlot(ctx, dangerZoneKey, &event); err != nil {
		return nil, err
	}

	return &GetDangerZoneOutput{Event: &event}, nil
}

// WatchDangerZone subscribes to danger-zone slot overwrites
func (r *redisRepository) WatchDangerZone(ctx context.Context) (<-chan *models.DangerZoneEvent, error) {
	raw, err := r.watchSlot(ctx, dangerZoneKey)
	if err != nil {
		return nil, err
	}

	ch := make(chan *models.DangerZoneEvent, 1)

	go func() {
		defer close(ch)
		for payload := range raw {
			var event models.DangerZoneEvent
			if err := json.Unmarshal(payload, &event); err != nil {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case ch <- &event:
			}
		}
	}()

	return ch, nil
}

// SaveDrinkAssignment overwrites the drink-assignment slot and publishes the event
func (r *redisRepository) SaveDrinkAssignment(ctx context.Context, input *SaveDrinkAssignmentInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}

	return r.saveSlot(ctx, drinkAssignmentsKey, input.Event)
}

// GetDrinkAssignment retrieves the latest drink-assignment event
func (r *redisRepository) GetDrinkAssignment(ctx context.Context) (*GetDrinkAssignmentOutput, error) {
	var event models.DrinkAssignmentEvent
	if err := r.getSlot(ctx, drinkAssignmentsKey, &event); err != nil {
		return nil, err
	}

	return &GetDrinkAssignmentOutput{Event: &event}, nil
}

// WatchDrinkAssignments subscribes to drink-assignment slot overwrites
func (r *redisRepository) WatchDrinkAssignments(ctx context.Context) (<-chan *models.DrinkAssignmentEvent, error) {
	raw, err := r.watchSlot(ctx, drinkAssignmentsKey)
	if err != nil {
		return nil, err
	}

	ch := make(chan *models.DrinkAssignmentEvent, 1)

	go func() {
		defer close(ch)
		for payload := range raw {
			var event models.DrinkAssignmentEvent
			if err := json.Unmarshal(payload, &event); err != nil {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case ch <- &event:
			}
		}
	}()

	return ch, nil
}

// SaveAcknowledgment writes a per-recipient ack record
func (r *redisRepository) SaveAcknowledgment(ctx context.Context, input *SaveAcknowledgmentInput) error {
	if input == nil || input.Acknowledgment == nil {
		return errors.New("input and acknowledgment cannot be nil")
	}

	ack := input.Acknowledgment
	if ack.EventID == "" || ack.PlayerName == "" {
		return errors.New("event ID and player name cannot be empty")
	}

	ackJSON, err := json.Marshal(ack)
	if err != nil {
		return fmt.Errorf("failed to marshal acknowledgment: %w", err)
	}

	key := fmt.Sprintf("%s%s_%s", acknowledgmentKeyPrefix, ack.EventID, ack.PlayerName)
	if err := r.client.Set(ctx, key, ackJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save acknowledgment: %w", err)
	}

	return nil
}

// GetAcknowledgment retrieves one ack record
func (r *redisRepository) GetAcknowledgment(ctx context.Context, input *GetAcknowledgmentInput) (*models.DrinkAcknowledgment, error) {
	if input == nil || input.EventID == "" || input.PlayerName == "" {
		return nil, errors.New("input, event ID and player name cannot be empty")
	}

	key := fmt.Sprintf("%s%s_%s", acknowledgmentKeyPrefix, input.EventID, input.PlayerName)
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrAcknowledgmentNotFound
		}
		return nil, fmt.Errorf("failed to get acknowledgment: %w", err)
	}

	var ack models.DrinkAcknowledgment
	if err := json.Unmarshal(raw, &ack); err != nil {
		return nil, fmt.Errorf("failed to unmarshal acknowledgment: %w", err)
	}

	return &ack, nil
}

// SaveProofRequest writes a proof request as a hash so its status can later
// be updated by field merge without touching sibling fields
func (r *redisRepository) SaveProofRequest(ctx context.Context, input *SaveProofRequestInput) error {
	if input == nil || input.Request == nil {
		return errors.New("input and request cannot be nil")
	}

	req := input.Request
	if req.ID == "" {
		return errors.New("request ID cannot be empty")
	}

	key := proofRequestKeyPrefix + req.ID
	fields := map[string]interface{}{
		"id":          req.ID,
		"playerName":  req.PlayerName,
		"requestedBy": req.RequestedBy,
		"status":      req.Status,
		"timestamp":   req.Timestamp,
		"proofRef":    req.ProofRef,
	}

	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("failed to save proof request: %w", err)
	}

	return nil
}

// UpdateProofStatus updates only the status field (and the proof reference
// when provided) of an existing proof request
func (r *redisRepository) UpdateProofStatus(ctx context.Context, input *UpdateProofStatusInput) error {
	if input == nil || input.RequestID == "" || input.Status == "" {
		return errors.New("input, request ID and status cannot be empty")
	}

	key := proofRequestKeyPrefix + input.RequestID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check proof request: %w", err)
	}
	if exists == 0 {
		return ErrProofRequestNotFound
	}

	fields := map[string]interface{}{
		"status": input.Status,
	}
	if input.ProofRef != "" {
		fields["proofRef"] = input.ProofRef
	}

	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("failed to update proof status: %w", err)
	}

	return nil
}

// GetProofRequest retrieves one proof request
func (r *redisRepository) GetProofRequest(ctx context.Context, input *GetProofRequestInput) (*models.ProofRequest, error) {
	if input == nil || input.RequestID == "" {
		return nil, errors.New("input and request ID cannot be empty")
	}

	key := proofRequestKeyPrefix + input.RequestID
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get proof request: %w", err)
	}

	if len(fields) == 0 {
		return nil, ErrProofRequestNotFound
	}

	timestamp, err := strconv.ParseInt(fields["timestamp"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proof request timestamp: %w", err)
	}

	return &models.ProofRequest{
		ID:          fields["id"],
		PlayerName:  fields["playerName"],
		RequestedBy: fields["requestedBy"],
		Status:      fields["status"],
		Timestamp:   timestamp,
		ProofRef:    fields["proofRef"],
	}, nil
}

// SaveNotification writes a durable notification record
func (r *redisRepository) SaveNotification(ctx context.Context, input *SaveNotificationInput) error {
	if input == nil || input.Notification == nil {
		return errors.New("input and notification cannot be nil")
	}

	if input.Notification.ID == "" {
		return errors.New("notification ID cannot be empty")
	}

	notificationJSON, err := json.Marshal(input.Notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := notificationKeyPrefix + input.Notification.ID
	if err := r.client.Set(ctx, key, notificationJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	return nil
}

// saveSlot overwrites a single-slot event document and publishes the new value
func (r *redisRepository) saveSlot(ctx context.Context, key string, event interface{}) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, key, eventJSON, 0)
	pipe.Publish(ctx, key, eventJSON)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}

// getSlot reads a single-slot event document into dst
func (r *redisRepository) getSlot(ctx context.Context, key string, dst interface{}) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return nil
}

// watchSlot subscribes to a single-slot key's change channel. It emits the
// current value first (when one exists), then every published overwrite.
func (r *redisRepository) watchSlot(ctx context.Context, key string) (<-chan json.RawMessage, error) {
	sub := r.client.Subscribe(ctx, key)

	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", key, err)
	}

	ch := make(chan json.RawMessage, 1)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		ch <- raw
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

				select {
				case <-ctx.Done():
					return
				case ch <- json.RawMessage(msg.Payload):
				}
			}
		}
	}()

	return ch, nil
}
