package game

import "context"

// Service defines the interface for game operations
type Service interface {
	// OnIdentityChange is the consumption point for the authentication
	// layer: the resolved player name (or empty for anonymous) and
	// whether the identity carries operator privilege
	OnIdentityChange(name string, isOperator bool)

	// Identity returns the current session identity
	Identity() (string, bool)

	// Gamble runs one HOGWASH attempt for a player: validation, cooldown
	// stamp, weighted draw, effect application, activity entry
	Gamble(ctx context.Context, input *GambleInput) (*GambleOutput, error)

	// Transfer moves points between two players
	Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error)

	// AssignDrinks spends drink credits and broadcasts the assignment
	AssignDrinks(ctx context.Context, input *AssignDrinksInput) (*AssignDrinksOutput, error)

	// InitiateDangerZone spends a danger-zone credit and broadcasts the alert
	InitiateDangerZone(ctx context.Context, input *InitiateDangerZoneInput) (*InitiateDangerZoneOutput, error)

	// RequestProof opens a durable proof request against a player
	RequestProof(ctx context.Context, input *RequestProofInput) (*RequestProofOutput, error)

	// SubmitProof marks a proof request fulfilled
	SubmitProof(ctx context.Context, input *SubmitProofInput) error

	// UsePowerUp consumes one held power-up
	UsePowerUp(ctx context.Context, input *UsePowerUpInput) error

	// SetScore overwrites a player's balance (operator only)
	SetScore(ctx context.Context, input *SetScoreInput) error

	// ResetScores returns every roster member to defaults (operator only)
	ResetScores(ctx context.Context) error

	// ForceNextOutcome arms a one-shot draw override (operator only)
	ForceNextOutcome(ctx context.Context, input *ForceNextOutcomeInput) error

	// Leaderboard returns the current standings
	Leaderboard(ctx context.Context) (*LeaderboardOutput, error)
}
