package ledger

import (
	"github.com/hogwash-crew/hogwash/internal/models"
	ledgerRepo "github.com/hogwash-crew/hogwash/internal/repositories/ledger"
)

// Config holds configuration for the ledger service
type Config struct {
	// Repo is the remote ledger repository
	Repo ledgerRepo.Repository

	// Fallback is an optional local-only repository written when the
	// remote store cannot be reached
	Fallback ledgerRepo.Repository
}

// LoadOutput contains the fully-normalized ledger
type LoadOutput struct {
	Ledger models.Ledger
}

// SaveInput contains parameters for replacing the ledger
type SaveInput struct {
	Ledger models.Ledger
}

// TransferInput contains parameters for a point transfer
type TransferInput struct {
	From   string
	To     string
	Amount int
}

// TransferOutput contains the post-transfer balances of the pair
type TransferOutput struct {
	FromPoints int
	ToPoints   int
}

// AdjustPointsInput contains per-player deltas applied in one write
type AdjustPointsInput struct {
	Deltas map[string]int
}

// AdjustPointsOutput contains the ledger after adjustment
type AdjustPointsOutput struct {
	Ledger models.Ledger
}

// AddPowerUpInput contains parameters for granting power-ups
type AddPowerUpInput struct {
	Name  string
	Kind  models.PowerUpKind
	Count int
}

// SpendPowerUpInput contains parameters for consuming one power-up
type SpendPowerUpInput struct {
	Name string
	Kind models.PowerUpKind
}

// SetScoreInput contains parameters for a privileged balance overwrite
type SetScoreInput struct {
	Name   string
	Points int
}

// LeaderboardOutput contains the current standings
type LeaderboardOutput struct {
	Entries []models.LeaderboardEntry
}
