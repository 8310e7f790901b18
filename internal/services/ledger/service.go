package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hogwash-crew/hogwash/internal/models"
	ledgerRepo "github.com/hogwash-crew/hogwash/internal/repositories/ledger"
)

// service implements the Service interface
type service struct {
	repo     ledgerRepo.Repository
	fallback ledgerRepo.Repository
}

// NewService creates a new ledger service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repo == nil {
		return nil, ErrNilRepo
	}

	return &service{
		repo:     cfg.Repo,
		fallback: cfg.Fallback,
	}, nil
}

// Load fetches and normalizes the current ledger snapshot
func (s *service) Load(ctx context.Context) (*LoadOutput, error) {
	ledger := models.Ledger{}
	changed := false

	out, err := s.repo.GetLedger(ctx)
	if err != nil {
		if !errors.Is(err, ledgerRepo.ErrLedgerNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		// Never initialized; the whole document gets synthesized
		changed = true
	} else {
		ledger = out.Ledger
		changed = out.Normalized
	}

	for _, name := range models.AllPlayers() {
		if _, ok := ledger[name]; !ok {
			ledger[name] = models.NewDefaultPlayer(name)
			changed = true
		}
	}

	if changed {
		// Self-healing write-back so every client converges on the
		// canonical shape. Failure is not fatal here: the next load
		// retries the same normalization.
		if err := s.Save(ctx, &SaveInput{Ledger: ledger}); err != nil {
			log.Printf("ledger normalization write-back failed: %v", err)
		}
	}

	return &LoadOutput{Ledger: ledger}, nil
}

// Save replaces the remote ledger document. When the remote store is
// unreachable, the snapshot is persisted to the local fallback and the
// condition is surfaced to the caller. No automatic resync happens.
func (s *service) Save(ctx context.Context, input *SaveInput) error {
	if input == nil || input.Ledger == nil {
		return errors.New("input and ledger cannot be nil")
	}

	err := s.repo.SaveLedger(ctx, &ledgerRepo.SaveLedgerInput{
		Ledger: input.Ledger,
	})
	if err == nil {
		return nil
	}

	if s.fallback != nil {
		if fbErr := s.fallback.SaveLedger(ctx, &ledgerRepo.SaveLedgerInput{
			Ledger: input.Ledger,
		}); fbErr != nil {
			log.Printf("ledger fallback save failed: %v", fbErr)
		}
	}

	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// Transfer moves points between two players
func (s *service) Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.From == input.To {
		return nil, ErrInvalidTarget
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if !models.IsRosterMember(input.From) || !models.IsRosterMember(input.To) {
		return nil, ErrUnknownPlayer
	}

	out, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	ledger := out.Ledger
	if ledger[input.From].Points < input.Amount {
		return nil, ErrInsufficientFunds
	}

	ledger[input.From].Points -= input.Amount
	ledger[input.To].Points += input.Amount

	if err := s.Save(ctx, &SaveInput{Ledger: ledger}); err != nil {
		return nil, err
	}

	return &TransferOutput{
		FromPoints: ledger[input.From].Points,
		ToPoints:   ledger[input.To].Points,
	}, nil
}

// AdjustPoints applies unconditional deltas in one read-modify-write. A
// gambling step passes the player and the house together so the pair it
// touches stays conserved within a single document write.
func (s *service) AdjustPoints(ctx context.Context, input *AdjustPointsInput) (*AdjustPointsOutput, error) {
	if input == nil || len(input.Deltas) == 0 {
		return nil, errors.New("input and deltas cannot be empty")
	}

	for name := range input.Deltas {
		if !models.IsRosterMember(name) {
			return nil, ErrUnknownPlayer
		}
	}

	out, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	ledger := out.Ledger
	for name, delta := range input.Deltas {
		// No floor: balances can go negative
		ledger[name].Points += delta
	}

	if err := s.Save(ctx, &SaveInput{Ledger: ledger}); err != nil {
		return nil, err
	}

	return &AdjustPointsOutput{Ledger: ledger}, nil
}

// AddPowerUp grants power-ups to a player
func (s *service) AddPowerUp(ctx context.Context, input *AddPowerUpInput) error {
	if input == nil || input.Count <= 0 {
		return errors.New("input and count cannot be empty")
	}

	if !models.IsRosterMember(input.Name) {
		return ErrUnknownPlayer
	}

	out, err := s.Load(ctx)
	if err != nil {
		return err
	}

	ledger := out.Ledger
	ledger[input.Name].PowerUps.Add(input.Kind, input.Count)

	return s.Save(ctx, &SaveInput{Ledger: ledger})
}

// SpendPowerUp consumes one held power-up
func (s *service) SpendPowerUp(ctx context.Context, input *SpendPowerUpInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if !models.IsRosterMember(input.Name) {
		return ErrUnknownPlayer
	}

	out, err := s.Load(ctx)
	if err != nil {
		return err
	}

	ledger := out.Ledger
	if ledger[input.Name].PowerUps.Count(input.Kind) < 1 {
		return ErrInsufficientPowerUps
	}

	ledger[input.Name].PowerUps.Add(input.Kind, -1)

	return s.Save(ctx, &SaveInput{Ledger: ledger})
}

// SetScore overwrites a player's balance
func (s *service) SetScore(ctx context.Context, input *SetScoreInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if !models.IsRosterMember(input.Name) {
		return ErrUnknownPlayer
	}

	out, err := s.Load(ctx)
	if err != nil {
		return err
	}

	ledger := out.Ledger
	ledger[input.Name].Points = input.Points

	return s.Save(ctx, &SaveInput{Ledger: ledger})
}

// ResetScores returns every roster member to defaults
func (s *service) ResetScores(ctx context.Context) error {
	return s.Save(ctx, &SaveInput{Ledger: models.NewDefaultLedger()})
}

// Leaderboard returns the current standings
func (s *service) Leaderboard(ctx context.Context) (*LeaderboardOutput, error) {
	out, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &LeaderboardOutput{
		Entries: out.Ledger.Leaderboard(),
	}, nil
}
