package credits

import (
	"context"
	"time"
)

// Service defines the interface for one credit system instance
type Service interface {
	// Load reads the balance, initializing it to the cap on first read
	Load(ctx context.Context) (*LoadOutput, error)

	// Tick grants the refill amount once the interval has elapsed,
	// capping accumulation. It runs on a recurring timer equal to the
	// refill interval.
	Tick(ctx context.Context) (*TickOutput, error)

	// Spend decrements credits after checking preconditions
	Spend(ctx context.Context, input *SpendInput) (*SpendOutput, error)

	// Interval returns the refill interval, for scheduler wiring
	Interval() time.Duration
}
