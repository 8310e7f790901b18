package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hogwash-crew/hogwash/internal/services/outcome"
)

// service implements the Service interface
type service struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// GetOutcomeMessage returns an announcement line for a gambling outcome
func (s *service) GetOutcomeMessage(ctx context.Context, input *GetOutcomeMessageInput) (*GetOutcomeMessageOutput, error) {
	if input == nil || input.PlayerName == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	var templates []string
	var icon string

	switch input.Kind {
	case outcome.KindDrink:
		icon = "🍺"
		if input.FinishDrink {
			templates = []string{
				"%[1]s spun the wheel and must FINISH THEIR DRINK!",
				"Brutal. %[1]s has to finish their drink.",
				"The wheel shows no mercy: %[1]s, finish it. Bottoms up!",
			}
		} else {
			templates = []string{
				"%[1]s spun the wheel and drinks %[2]d!",
				"The wheel says %[2]d drinks for %[1]s.",
				"%[1]s owes the wheel %[2]d drinks. Pay up!",
			}
		}

	case outcome.KindWin:
		icon = "💰"
		templates = []string{
			"%[1]s beat the house for %[2]d points!",
			"Cha-ching! %[1]s takes %[2]d points off the house.",
			"%[1]s is up %[2]d points. The house weeps.",
		}

	case outcome.KindLose:
		icon = "📉"
		templates = []string{
			"%[1]s lost %[2]d points to the house.",
			"The house always wins: %[1]s drops %[2]d points.",
			"Ouch. %[1]s hands %[2]d points to the house.",
		}

	case outcome.KindGiveDrinks:
		icon = "🎁"
		templates = []string{
			"%[1]s banked %[2]d drinks to give out!",
			"%[1]s now holds %[2]d drinks to distribute. Fear them.",
			"The wheel grants %[1]s %[2]d drinks to assign.",
		}

	case outcome.KindDanger:
		icon = "🚨"
		templates = []string{
			"%[1]s triggered the DANGER ZONE!",
			"Sirens on: %[1]s sent everyone into the danger zone!",
			"%[1]s pulled the danger lever. Brace yourselves.",
		}

	case outcome.KindMulligan:
		icon = "🔄"
		templates = []string{
			"%[1]s picked up a mulligan!",
			"%[1]s earned a do-over. Mulligan banked.",
		}

	case outcome.KindReverseMulligan:
		icon = "↩️"
		templates = []string{
			"%[1]s picked up a reverse mulligan!",
			"%[1]s can now undo somebody's good fortune. Reverse mulligan banked.",
		}

	default:
		return nil, fmt.Errorf("no messages for outcome kind %q", input.Kind)
	}

	return &GetOutcomeMessageOutput{
		Message: fmt.Sprintf(s.pick(templates), input.PlayerName, input.Amount),
		Icon:    icon,
	}, nil
}

// GetTransferMessage returns an announcement line for a point transfer
func (s *service) GetTransferMessage(ctx context.Context, input *GetTransferMessageInput) (*GetTransferMessageOutput, error) {
	if input == nil || input.From == "" || input.To == "" {
		return nil, errors.New("input, from and to cannot be empty")
	}

	templates := []string{
		"%[1]s sent %[3]d points to %[2]s.",
		"%[1]s slides %[3]d points over to %[2]s.",
		"Generous! %[1]s gives %[2]s %[3]d points.",
	}

	return &GetTransferMessageOutput{
		Message: fmt.Sprintf(s.pick(templates), input.From, input.To, input.Amount),
		Icon:    "💸",
	}, nil
}

// pick selects one template at random
func (s *service) pick(templates []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return templates[s.rand.Intn(len(templates))]
}
