package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/hogwash-crew/hogwash/internal/dice Roller

// Roller provides the random rolls behind gambling outcomes
type Roller interface {
	// Roll returns a uniform value in [1, sides]
	Roll(sides int) int
}

// Config for the default roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// DefaultRoller implements Roller with a seeded math/rand source
type DefaultRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new roller
func New(cfg *Config) *DefaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &DefaultRoller{
		random: rand.New(source),
	}
}

// Roll generates a random roll with the specified number of sides
func (r *DefaultRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 6
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}
