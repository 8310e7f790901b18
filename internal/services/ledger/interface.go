package ledger

import "context"

// Service defines the interface for ledger operations
type Service interface {
	// Load fetches the current snapshot, synthesizing defaults for absent
	// roster members and upgrading legacy records, with a self-healing
	// write-back when anything changed
	Load(ctx context.Context) (*LoadOutput, error)

	// Save replaces the entire remote ledger document. Callers must have
	// read-modify-written the full structure.
	Save(ctx context.Context, input *SaveInput) error

	// Transfer moves points between two players, conserving their pair total
	Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error)

	// AdjustPoints applies unconditional deltas to one or more players in
	// a single read-modify-write
	AdjustPoints(ctx context.Context, input *AdjustPointsInput) (*AdjustPointsOutput, error)

	// AddPowerUp grants power-ups to a player
	AddPowerUp(ctx context.Context, input *AddPowerUpInput) error

	// SpendPowerUp consumes one held power-up
	SpendPowerUp(ctx context.Context, input *SpendPowerUpInput) error

	// SetScore overwrites a player's balance (privileged operation; the
	// authorization check lives with the caller)
	SetScore(ctx context.Context, input *SetScoreInput) error

	// ResetScores returns every roster member to defaults
	ResetScores(ctx context.Context) error

	// Leaderboard returns the current standings, points descending
	Leaderboard(ctx context.Context) (*LeaderboardOutput, error)
}
