package credits

import (
	"time"

	"github.com/hogwash-crew/hogwash/internal/common/clock"
	creditsRepo "github.com/hogwash-crew/hogwash/internal/repositories/credits"
)

// Default constants for the two deployed credit systems
const (
	DrinkRefillInterval = time.Hour
	DrinkCap            = 20
	DrinkGrant          = 10

	DangerRefillInterval = 2 * time.Hour
	DangerCap            = 3
	DangerGrant          = 1

	// Danger-zone spends are gated to a daily clock window
	DangerWindowStartHour = 10
	DangerWindowEndHour   = 23
)

// Config holds configuration for one credit system instance
type Config struct {
	// Repo is the credit balance repository
	Repo creditsRepo.Repository

	// Clock supplies the current time
	Clock clock.Clock

	// RefillInterval is how often a grant becomes available
	RefillInterval time.Duration

	// Cap is the maximum held credits
	Cap int

	// Grant is the amount added per elapsed interval
	Grant int

	// WindowStartHour/WindowEndHour gate spends to a daily clock window
	// (inclusive hours, local time). Both zero disables the gate.
	WindowStartHour int
	WindowEndHour   int
}

// LoadOutput contains the current balance
type LoadOutput struct {
	Credits    int
	LastRefill int64
}

// TickOutput contains the result of a refill evaluation
type TickOutput struct {
	Granted bool
	Credits int
}

// SpendInput contains parameters for spending credits
type SpendInput struct {
	Amount int
}

// SpendOutput contains the post-spend balance
type SpendOutput struct {
	Credits int
}
