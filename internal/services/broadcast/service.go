package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hogwash-crew/hogwash/internal/common/clock"
	"github.com/hogwash-crew/hogwash/internal/common/uuid"
	"github.com/hogwash-crew/hogwash/internal/models"
	broadcastRepo "github.com/hogwash-crew/hogwash/internal/repositories/broadcast"
)

// Event slot names used for dedup bookkeeping
const (
	slotDangerZone       = "dangerZone"
	slotDrinkAssignments = "drinkAssignments"
)

// service implements the Service interface
type service struct {
	repo     broadcastRepo.Repository
	clock    clock.Clock
	uuid     uuid.UUID
	identity func() string
	handler  Handler
	notifier Notifier

	// lastSeen holds the most recent handled event id per slot. A
	// single-slot memory, not a full history: the slots themselves are
	// single-slot, so one id per kind is all dedup needs.
	mu       sync.Mutex
	lastSeen map[string]string
}

// NewService creates a new broadcast service
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

	identity := cfg.Identity
	if identity == nil {
		identity = func() string { return "" }
	}

	return &service{
		repo:     cfg.Repo,
		clock:    cfg.Clock,
		uuid:     cfg.UUIDGenerator,
		identity: identity,
		handler:  cfg.Handler,
		notifier: cfg.Notifier,
		lastSeen: make(map[string]string),
	}, nil
}

// SetHandler installs the actionable-event receiver. Call before Run.
func (s *service) SetHandler(h Handler) {
	s.handler = h
}

// SetNotifier installs the delivery collaborator. Call before Run.
func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

// PublishDangerZone writes a danger-zone event to its single slot
func (s *service) PublishDangerZone(ctx context.Context, input *PublishDangerZoneInput) (*PublishOutput, error) {
	if input == nil || input.PlayerName == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	event := &models.DangerZoneEvent{
		PlayerName: input.PlayerName,
		Timestamp:  s.clock.Now().UnixMilli(),
		EventID:    s.uuid.NewUUID(),
	}

	if err := s.repo.SaveDangerZone(ctx, &broadcastRepo.SaveDangerZoneInput{
		Event: event,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.notify(ctx, &models.Notification{
		ID:        s.uuid.NewUUID(),
		Type:      "danger_zone",
		Title:     "DANGER ZONE",
		Body:      fmt.Sprintf("%s has entered the danger zone!", input.PlayerName),
		Timestamp: event.Timestamp,
		Payload: map[string]string{
			"playerName": input.PlayerName,
			"eventId":    event.EventID,
		},
	})

	return &PublishOutput{EventID: event.EventID}, nil
}

// PublishDrinkAssignment writes a drink-assignment event to its single slot
func (s *service) PublishDrinkAssignment(ctx context.Context, input *PublishDrinkAssignmentInput) (*PublishOutput, error) {
	if input == nil || input.AssignedBy == "" {
		return nil, errors.New("input and assigner cannot be empty")
	}

	if len(input.Assignments) == 0 {
		return nil, ErrEmptyAssignments
	}

	total := 0
	for name, count := range input.Assignments {
		if name == "" || count <= 0 {
			return nil, ErrEmptyAssignments
		}
		total += count
	}

	event := &models.DrinkAssignmentEvent{
		Assignments: input.Assignments,
		TotalDrinks: total,
		AssignedBy:  input.AssignedBy,
		Message:     input.Message,
		Timestamp:   s.clock.Now().UnixMilli(),
		EventID:     s.uuid.NewUUID(),
	}

	if err := s.repo.SaveDrinkAssignment(ctx, &broadcastRepo.SaveDrinkAssignmentInput{
		Event: event,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.notify(ctx, &models.Notification{
		ID:        s.uuid.NewUUID(),
		Type:      "drink_assignment",
		Title:     "Drinks incoming",
		Body:      fmt.Sprintf("%s assigned %d drinks", input.AssignedBy, total),
		Timestamp: event.Timestamp,
		Payload: map[string]string{
			"assignedBy": input.AssignedBy,
			"eventId":    event.EventID,
		},
	})

	return &PublishOutput{EventID: event.EventID}, nil
}

// PublishProofRequest writes a durable proof request record
func (s *service) PublishProofRequest(ctx context.Context, input *PublishProofRequestInput) (*PublishOutput, error) {
	if input == nil || input.PlayerName == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	request := &models.ProofRequest{
		ID:          s.uuid.NewUUID(),
		PlayerName:  input.PlayerName,
		RequestedBy: input.RequestedBy,
		Status:      models.ProofStatusPending,
		Timestamp:   s.clock.Now().UnixMilli(),
	}

	if err := s.repo.SaveProofRequest(ctx, &broadcastRepo.SaveProofRequestInput{
		Request: request,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &PublishOutput{EventID: request.ID}, nil
}

// SubmitProof marks a proof request submitted without touching its other fields
func (s *service) SubmitProof(ctx context.Context, input *SubmitProofInput) error {
	if input == nil || input.RequestID == "" {
		return errors.New("input and request ID cannot be empty")
	}

	if err := s.repo.UpdateProofStatus(ctx, &broadcastRepo.UpdateProofStatusInput{
		RequestID: input.RequestID,
		Status:    models.ProofStatusSubmitted,
		ProofRef:  input.ProofRef,
	}); err != nil {
		if errors.Is(err, broadcastRepo.ErrProofRequestNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Run subscribes to the event slots and dispatches until ctx is cancelled
func (s *service) Run(ctx context.Context) error {
	dangerEvents, err := s.repo.WatchDangerZone(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	drinkEvents, err := s.repo.WatchDrinkAssignments(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	go func() {
		for event := range dangerEvents {
			s.handleDangerZone(ctx, event)
		}
	}()

	go func() {
		for event := range drinkEvents {
			s.handleDrinkAssignment(ctx, event)
		}
	}()

	return nil
}

// handleDangerZone applies the receive-side rules to one danger-zone event
func (s *service) handleDangerZone(ctx context.Context, event *models.DangerZoneEvent) {
	if event == nil {
		return
	}

	if !s.accept(slotDangerZone, event.EventID, event.Timestamp) {
		return
	}

	// Self-notifications are not shown to the sender
	if s.identity() == event.PlayerName {
		return
	}

	if s.handler != nil {
		s.handler.HandleDangerZone(ctx, event)
	}
}

// handleDrinkAssignment applies the receive-side rules to one drink event
func (s *service) handleDrinkAssignment(ctx context.Context, event *models.DrinkAssignmentEvent) {
	if event == nil {
		return
	}

	if !s.accept(slotDrinkAssignments, event.EventID, event.Timestamp) {
		return
	}

	me := s.identity()
	if me == event.AssignedBy {
		return
	}

	role := models.AckRoleBystander
	drinks := 0
	if count, ok := event.Assignments[me]; ok && me != "" {
		role = models.AckRoleAssignee
		drinks = count
	}

	if s.handler != nil {
		s.handler.HandleDrinkAssignment(ctx, event, role, drinks)
	}

	// Acknowledgment writes are fire-and-forget; gameplay never waits on
	// the audit trail.
	if me != "" {
		ack := &models.DrinkAcknowledgment{
			EventID:        event.EventID,
			PlayerName:     me,
			Role:           role,
			AcknowledgedAt: s.clock.Now().UnixMilli(),
		}

		go func() {
			if err := s.repo.SaveAcknowledgment(context.Background(), &broadcastRepo.SaveAcknowledgmentInput{
				Acknowledgment: ack,
			}); err != nil {
				log.Printf("drink acknowledgment write failed: %v", err)
			}
		}()
	}
}

// accept runs the freshness and dedup checks shared by every event kind.
// It records the event id as seen when the event is accepted.
func (s *service) accept(slot, eventID string, timestamp int64) bool {
	if eventID == "" {
		return false
	}

	age := s.clock.Now().UnixMilli() - timestamp
	if age >= FreshnessWindow.Milliseconds() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastSeen[slot] == eventID {
		return false
	}

	s.lastSeen[slot] = eventID
	return true
}

// notify records the notification and hands it to the delivery
// collaborator. Failures are logged, never surfaced to gameplay.
func (s *service) notify(ctx context.Context, notification *models.Notification) {
	if err := s.repo.SaveNotification(ctx, &broadcastRepo.SaveNotificationInput{
		Notification: notification,
	}); err != nil {
		log.Printf("notification record write failed: %v", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, notification); err != nil {
			log.Printf("notification delivery failed: %v", err)
		}
	}
}
