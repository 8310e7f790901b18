package outcome

import (
	"context"
	"errors"
	"sync"

	"github.com/hogwash-crew/hogwash/internal/dice"
	"github.com/hogwash-crew/hogwash/internal/models"
)

// service implements the Service interface
type service struct {
	roller dice.Roller

	mu     sync.Mutex
	forced Kind
}

// NewService creates a new outcome service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Roller == nil {
		return nil, ErrNilRoller
	}

	return &service{
		roller: cfg.Roller,
	}, nil
}

// ForceNext arms a one-shot override. The next Resolve call returns the
// given kind unconditionally, then reverts to weighted draws.
func (s *service) ForceNext(kind Kind) {
	s.mu.Lock()
	s.forced = kind
	s.mu.Unlock()
}

// Resolve draws one outcome kind
func (s *service) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input != nil && input.Forced != "" {
		return &ResolveOutput{Kind: input.Forced}, nil
	}

	s.mu.Lock()
	if s.forced != "" {
		kind := s.forced
		s.forced = ""
		s.mu.Unlock()
		return &ResolveOutput{Kind: kind}, nil
	}
	s.mu.Unlock()

	// Alias-free weighted draw: r uniform over [0, totalWeight), walk the
	// table accumulating weights.
	r := s.roller.Roll(totalWeight) - 1

	cumulative := 0
	for _, entry := range outcomeTable {
		cumulative += entry.weight
		if r < cumulative {
			return &ResolveOutput{Kind: entry.kind}, nil
		}
	}

	// Unreachable while the table weights sum to totalWeight
	return &ResolveOutput{Kind: outcomeTable[len(outcomeTable)-1].kind}, nil
}

// ComputeEffect maps a kind to its mutation and display effect
func (s *service) ComputeEffect(ctx context.Context, input *ComputeEffectInput) (*Effect, error) {
	if input == nil || input.PlayerName == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	effect := &Effect{
		Kind:       input.Kind,
		PlayerName: input.PlayerName,
	}

	switch input.Kind {
	case KindDrink:
		if s.roller.Roll(100) <= 15 {
			effect.FinishDrink = true
		} else {
			effect.DrinkCount = s.roller.Roll(5)
		}

	case KindWin:
		n := s.roller.Roll(4)
		effect.PointsDelta = n
		effect.HouseDelta = -n

	case KindLose:
		n := s.roller.Roll(5)
		effect.PointsDelta = -n
		effect.HouseDelta = n

	case KindGiveDrinks:
		effect.PowerUp = models.PowerUpGiveDrinks
		effect.PowerUpDelta = s.roller.Roll(5)

	case KindDanger:
		effect.Broadcast = true

	case KindMulligan:
		effect.PowerUp = models.PowerUpMulligan
		effect.PowerUpDelta = 1

	case KindReverseMulligan:
		effect.PowerUp = models.PowerUpReverseMulligan
		effect.PowerUpDelta = 1

	default:
		return nil, ErrUnknownKind
	}

	return effect, nil
}
