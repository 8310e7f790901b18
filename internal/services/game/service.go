package game

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"

	"github.com/hogwash-crew/hogwash/internal/models"
	activitySvc "github.com/hogwash-crew/hogwash/internal/services/activity"
	broadcastSvc "github.com/hogwash-crew/hogwash/internal/services/broadcast"
	cooldownSvc "github.com/hogwash-crew/hogwash/internal/services/cooldown"
	creditsSvc "github.com/hogwash-crew/hogwash/internal/services/credits"
	ledgerSvc "github.com/hogwash-crew/hogwash/internal/services/ledger"
	messagingSvc "github.com/hogwash-crew/hogwash/internal/services/messaging"
	outcomeSvc "github.com/hogwash-crew/hogwash/internal/services/outcome"
)

// service implements the Service interface
type service struct {
	ledger    ledgerSvc.Service
	cooldown  cooldownSvc.Service
	drinks    creditsSvc.Service
	danger    creditsSvc.Service
	outcome   outcomeSvc.Service
	broadcast broadcastSvc.Service
	activity  activitySvc.Service
	messaging messagingSvc.Service

	mu         sync.RWMutex
	identity   string
	isOperator bool
}

// NewService creates a new game service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.LedgerService == nil {
		return nil, ErrNilLedgerService
	}

	if cfg.CooldownService == nil {
		return nil, ErrNilCooldown
	}

	if cfg.DrinkCredits == nil || cfg.DangerCredits == nil {
		return nil, ErrNilCredits
	}

	if cfg.OutcomeService == nil {
		return nil, ErrNilOutcome
	}

	if cfg.BroadcastService == nil {
		return nil, ErrNilBroadcast
	}

	if cfg.ActivityService == nil {
		return nil, ErrNilActivity
	}

	if cfg.MessagingService == nil {
		return nil, ErrNilMessaging
	}

	return &service{
		ledger:    cfg.LedgerService,
		cooldown:  cfg.CooldownService,
		drinks:    cfg.DrinkCredits,
		danger:    cfg.DangerCredits,
		outcome:   cfg.OutcomeService,
		broadcast: cfg.BroadcastService,
		activity:  cfg.ActivityService,
		messaging: cfg.MessagingService,
	}, nil
}

// OnIdentityChange records the session identity supplied by the
// authentication layer
func (s *service) OnIdentityChange(name string, isOperator bool) {
	s.mu.Lock()
	s.identity = name
	s.isOperator = isOperator
	s.mu.Unlock()
}

// Identity returns the current session identity
func (s *service) Identity() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.isOperator
}

// Gamble runs one HOGWASH attempt
func (s *service) Gamble(ctx context.Context, input *GambleInput) (*GambleOutput, error) {
	if input == nil || input.PlayerName == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	if input.PlayerName == models.HouseAccount {
		return nil, ErrHouseCannotGamble
	}

	if !models.IsRosterMember(input.PlayerName) {
		return nil, ErrUnknownPlayer
	}

	identity, _ := s.Identity()
	if err := s.cooldown.ValidateAttempt(ctx, &cooldownSvc.ValidateAttemptInput{
		SelectedName:    input.PlayerName,
		SessionIdentity: identity,
	}); err != nil {
		return nil, err
	}

	// The stamp lands before the outcome resolves, closing most of the
	// double-spend window even though the two writes are not atomic
	if err := s.cooldown.RecordAttempt(ctx, &cooldownSvc.RecordAttemptInput{
		Name: input.PlayerName,
	}); err != nil {
		return nil, err
	}

	resolved, err := s.outcome.Resolve(ctx, &outcomeSvc.ResolveInput{
		Forced: input.Forced,
	})
	if err != nil {
		return nil, err
	}

	effect, err := s.outcome.ComputeEffect(ctx, &outcomeSvc.ComputeEffectInput{
		Kind:       resolved.Kind,
		PlayerName: input.PlayerName,
	})
	if err != nil {
		return nil, err
	}

	output := &GambleOutput{
		Kind:        effect.Kind,
		PointsDelta: effect.PointsDelta,
		DrinkCount:  effect.DrinkCount,
		FinishDrink: effect.FinishDrink,
		PowerUp:     effect.PowerUp,
		PowerUpGain: effect.PowerUpDelta,
	}

	if effect.PointsDelta != 0 || effect.HouseDelta != 0 {
		adjusted, err := s.ledger.AdjustPoints(ctx, &ledgerSvc.AdjustPointsInput{
			Deltas: map[string]int{
				input.PlayerName:    effect.PointsDelta,
				models.HouseAccount: effect.HouseDelta,
			},
		})
		if err != nil {
			return nil, err
		}
		output.NewPoints = adjusted.Ledger[input.PlayerName].Points
	}

	if effect.PowerUpDelta > 0 {
		if err := s.ledger.AddPowerUp(ctx, &ledgerSvc.AddPowerUpInput{
			Name:  input.PlayerName,
			Kind:  effect.PowerUp,
			Count: effect.PowerUpDelta,
		}); err != nil {
			return nil, err
		}
	}

	if effect.Broadcast {
		if _, err := s.broadcast.PublishDangerZone(ctx, &broadcastSvc.PublishDangerZoneInput{
			PlayerName: input.PlayerName,
		}); err != nil {
			return nil, err
		}
	}

	output.Message = s.logOutcome(ctx, effect)

	return output, nil
}

// Transfer moves points between two players
func (s *service) Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	out, err := s.ledger.Transfer(ctx, &ledgerSvc.TransferInput{
		From:   input.From,
		To:     input.To,
		Amount: input.Amount,
	})
	if err != nil {
		return nil, err
	}

	message := ""
	if msg, err := s.messaging.GetTransferMessage(ctx, &messagingSvc.GetTransferMessageInput{
		From:   input.From,
		To:     input.To,
		Amount: input.Amount,
	}); err == nil {
		message = msg.Message
		s.appendActivity(ctx, "transfer", msg.Icon, msg.Message, nil)
	}

	return &TransferOutput{
		FromPoints: out.FromPoints,
		ToPoints:   out.ToPoints,
		Message:    message,
	}, nil
}

// AssignDrinks spends drink credits and broadcasts the assignment
func (s *service) AssignDrinks(ctx context.Context, input *AssignDrinksInput) (*AssignDrinksOutput, error) {
	if input == nil || len(input.Assignments) == 0 {
		return nil, errors.New("input and assignments cannot be empty")
	}

	assigner := input.AssignedBy
	if identity, _ := s.Identity(); identity != "" {
		assigner = identity
	}
	if assigner == "" {
		return nil, errors.New("assigner cannot be empty")
	}

	total := 0
	for _, count := range input.Assignments {
		total += count
	}

	// The spend authorizes the broadcast; both or neither, as far as the
	// client-side check can guarantee
	spent, err := s.drinks.Spend(ctx, &creditsSvc.SpendInput{Amount: total})
	if err != nil {
		return nil, err
	}

	published, err := s.broadcast.PublishDrinkAssignment(ctx, &broadcastSvc.PublishDrinkAssignmentInput{
		Assignments: input.Assignments,
		AssignedBy:  assigner,
		Message:     input.Message,
	})
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, "drinks", "🍻",
		assigner+" assigned "+strconv.Itoa(total)+" drinks", nil)

	return &AssignDrinksOutput{
		EventID:          published.EventID,
		TotalDrinks:      total,
		RemainingCredits: spent.Credits,
	}, nil
}

// InitiateDangerZone spends a danger-zone credit and broadcasts the alert
func (s *service) InitiateDangerZone(ctx context.Context, input *InitiateDangerZoneInput) (*InitiateDangerZoneOutput, error) {
	player := ""
	if input != nil {
		player = input.PlayerName
	}
	if identity, _ := s.Identity(); identity != "" {
		player = identity
	}
	if player == "" {
		return nil, errors.New("player name cannot be empty")
	}

	spent, err := s.danger.Spend(ctx, &creditsSvc.SpendInput{Amount: 1})
	if err != nil {
		return nil, err
	}

	published, err := s.broadcast.PublishDangerZone(ctx, &broadcastSvc.PublishDangerZoneInput{
		PlayerName: player,
	})
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, "danger", "🚨", player+" initiated a danger zone", nil)

	return &InitiateDangerZoneOutput{
		EventID:          published.EventID,
		RemainingCredits: spent.Credits,
	}, nil
}

// RequestProof opens a durable proof request against a player
func (s *service) RequestProof(ctx context.Context, input *RequestProofInput) (*RequestProofOutput, error) {
	if input == nil || input.PlayerName == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	requestedBy := input.RequestedBy
	if identity, _ := s.Identity(); identity != "" {
		requestedBy = identity
	}

	published, err := s.broadcast.PublishProofRequest(ctx, &broadcastSvc.PublishProofRequestInput{
		PlayerName:  input.PlayerName,
		RequestedBy: requestedBy,
	})
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, "proof", "📸",
		requestedBy+" demands proof from "+input.PlayerName, map[string]string{
			"requestId": published.EventID,
		})

	return &RequestProofOutput{RequestID: published.EventID}, nil
}

// SubmitProof marks a proof request fulfilled
func (s *service) SubmitProof(ctx context.Context, input *SubmitProofInput) error {
	if input == nil || input.RequestID == "" {
		return errors.New("input and request ID cannot be empty")
	}

	if err := s.broadcast.SubmitProof(ctx, &broadcastSvc.SubmitProofInput{
		RequestID: input.RequestID,
		ProofRef:  input.ProofRef,
	}); err != nil {
		return err
	}

	s.appendActivity(ctx, "proof", "✅", "proof submitted", map[string]string{
		"requestId": input.RequestID,
		"proofRef":  input.ProofRef,
	})

	return nil
}

// UsePowerUp consumes one held power-up
func (s *service) UsePowerUp(ctx context.Context, input *UsePowerUpInput) error {
	if input == nil || input.Name == "" {
		return errors.New("input and name cannot be empty")
	}

	if err := s.ledger.SpendPowerUp(ctx, &ledgerSvc.SpendPowerUpInput{
		Name: input.Name,
		Kind: input.Kind,
	}); err != nil {
		return err
	}

	s.appendActivity(ctx, "powerup", "✨",
		input.Name+" used a "+string(input.Kind), nil)

	return nil
}

// SetScore overwrites a player's balance (operator only)
func (s *service) SetScore(ctx context.Context, input *SetScoreInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if _, operator := s.Identity(); !operator {
		return ErrNotAuthorized
	}

	if err := s.ledger.SetScore(ctx, &ledgerSvc.SetScoreInput{
		Name:   input.Name,
		Points: input.Points,
	}); err != nil {
		return err
	}

	s.appendActivity(ctx, "admin", "🛠️",
		input.Name+"'s score was set to "+strconv.Itoa(input.Points), nil)

	return nil
}

// ResetScores returns every roster member to defaults (operator only)
func (s *service) ResetScores(ctx context.Context) error {
	if _, operator := s.Identity(); !operator {
		return ErrNotAuthorized
	}

	if err := s.ledger.ResetScores(ctx); err != nil {
		return err
	}

	s.appendActivity(ctx, "admin", "🧹", "the scoreboard was reset", nil)

	return nil
}

// ForceNextOutcome arms a one-shot draw override (operator only)
func (s *service) ForceNextOutcome(ctx context.Context, input *ForceNextOutcomeInput) error {
	if input == nil || input.Kind == "" {
		return errors.New("input and kind cannot be empty")
	}

	if _, operator := s.Identity(); !operator {
		return ErrNotAuthorized
	}

	s.outcome.ForceNext(input.Kind)
	return nil
}

// Leaderboard returns the current standings
func (s *service) Leaderboard(ctx context.Context) (*LeaderboardOutput, error) {
	out, err := s.ledger.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	return &LeaderboardOutput{Entries: out.Entries}, nil
}

// logOutcome appends the activity entry for a resolved gamble and returns
// the announcement line. The ledger write already happened; a failed feed
// write is reported to the user by the caller's UI layer, not retried.
func (s *service) logOutcome(ctx context.Context, effect *outcomeSvc.Effect) string {
	amount := 0
	switch effect.Kind {
	case outcomeSvc.KindWin:
		amount = effect.PointsDelta
	case outcomeSvc.KindLose:
		amount = -effect.PointsDelta
	case outcomeSvc.KindDrink:
		amount = effect.DrinkCount
	case outcomeSvc.KindGiveDrinks:
		amount = effect.PowerUpDelta
	}

	msg, err := s.messaging.GetOutcomeMessage(ctx, &messagingSvc.GetOutcomeMessageInput{
		Kind:        effect.Kind,
		PlayerName:  effect.PlayerName,
		Amount:      amount,
		FinishDrink: effect.FinishDrink,
	})
	if err != nil {
		log.Printf("outcome message lookup failed: %v", err)
		return ""
	}

	s.appendActivity(ctx, "hogwash", msg.Icon, msg.Message, nil)
	return msg.Message
}

// appendActivity writes a feed entry, logging failures instead of
// unwinding the mutation that preceded them
func (s *service) appendActivity(ctx context.Context, category, icon, message string, extra map[string]string) {
	if _, err := s.activity.Append(ctx, &activitySvc.AppendInput{
		Category: category,
		Icon:     icon,
		Message:  message,
		Extra:    extra,
	}); err != nil {
		log.Printf("activity append failed: %v", err)
	}
}

