package credits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hogwash-crew/hogwash/internal/common/clock"
	"github.com/hogwash-crew/hogwash/internal/models"
	creditsRepo "github.com/hogwash-crew/hogwash/internal/repositories/credits"
)

// service implements the Service interface
type service struct {
	repo            creditsRepo.Repository
	clock           clock.Clock
	refillInterval  time.Duration
	cap             int
	grant           int
	windowStartHour int
	windowEndHour   int
}

// NewService creates a new credit system instance
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

	if cfg.RefillInterval <= 0 {
		return nil, ErrInvalidInterval
	}

	return &service{
		repo:            cfg.Repo,
		clock:           cfg.Clock,
		refillInterval:  cfg.RefillInterval,
		cap:             cfg.Cap,
		grant:           cfg.Grant,
		windowStartHour: cfg.WindowStartHour,
		windowEndHour:   cfg.WindowEndHour,
	}, nil
}

// Interval returns the refill interval
func (s *service) Interval() time.Duration {
	return s.refillInterval
}

// Load reads the balance, initializing to the cap on first read
func (s *service) Load(ctx context.Context) (*LoadOutput, error) {
	balance, err := s.loadBalance(ctx)
	if err != nil {
		return nil, err
	}

	return &LoadOutput{
		Credits:    balance.Credits,
		LastRefill: balance.LastRefill,
	}, nil
}

// Tick evaluates a refill. When the interval has elapsed, it grants up to
// the cap and resets lastRefill to now — even when the grant is zero
// because the holder is already at cap. A stuck lastRefill would otherwise
// cause the very next tick to re-grant the instant the holder drops below
// cap.
func (s *service) Tick(ctx context.Context) (*TickOutput, error) {
	balance, err := s.loadBalance(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UnixMilli()
	elapsed := now - balance.LastRefill
	if elapsed < s.refillInterval.Milliseconds() {
		return &TickOutput{Credits: balance.Credits}, nil
	}

	grant := s.grant
	if balance.Credits+grant > s.cap {
		grant = s.cap - balance.Credits
	}
	if grant < 0 {
		grant = 0
	}

	balance.Credits += grant
	balance.LastRefill = now

	if err := s.save(ctx, balance); err != nil {
		return nil, err
	}

	return &TickOutput{
		Granted: grant > 0,
		Credits: balance.Credits,
	}, nil
}

// Spend decrements credits after checking preconditions
func (s *service) Spend(ctx context.Context, input *SpendInput) (*SpendOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if !s.inWindow() {
		return nil, ErrOutsideWindow
	}

	balance, err := s.loadBalance(ctx)
	if err != nil {
		return nil, err
	}

	if input.Amount > balance.Credits {
		return nil, ErrInsufficientCredits
	}

	balance.Credits -= input.Amount

	if err := s.save(ctx, balance); err != nil {
		return nil, err
	}

	return &SpendOutput{Credits: balance.Credits}, nil
}

// inWindow reports whether the current local time falls inside the daily
// spend window. A zero-valued window disables the gate.
func (s *service) inWindow() bool {
	if s.windowStartHour == 0 && s.windowEndHour == 0 {
		return true
	}

	hour := s.clock.Now().Hour()
	return hour >= s.windowStartHour && hour <= s.windowEndHour
}

func (s *service) loadBalance(ctx context.Context) (*models.CreditBalance, error) {
	out, err := s.repo.GetCredits(ctx)
	if err == nil {
		return out.Balance, nil
	}

	if !errors.Is(err, creditsRepo.ErrCreditsNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// First read: start at the cap
	balance := &models.CreditBalance{
		Credits:    s.cap,
		LastRefill: s.clock.Now().UnixMilli(),
	}

	if err := s.save(ctx, balance); err != nil {
		return nil, err
	}

	return balance, nil
}

func (s *service) save(ctx context.Context, balance *models.CreditBalance) error {
	if err := s.repo.SaveCredits(ctx, &creditsRepo.SaveCreditsInput{
		Balance: balance,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}
