package cooldown

import "context"

// Service defines the interface for cooldown tracking
type Service interface {
	// IsOnCooldown reports whether a player's last accepted attempt is
	// still inside the rolling window
	IsOnCooldown(ctx context.Context, input *IsOnCooldownInput) (*IsOnCooldownOutput, error)

	// Remaining returns how long until a player may gamble again
	Remaining(ctx context.Context, input *RemainingInput) (*RemainingOutput, error)

	// RecordAttempt stamps a player's last-action time. It is written the
	// moment an attempt is accepted, before the outcome resolves.
	RecordAttempt(ctx context.Context, input *RecordAttemptInput) error

	// ValidateAttempt rejects attempts by players on cooldown or by a
	// session authenticated as somebody else
	ValidateAttempt(ctx context.Context, input *ValidateAttemptInput) error
}
