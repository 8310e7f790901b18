package game

import (
	"github.com/hogwash-crew/hogwash/internal/models"
	activitySvc "github.com/hogwash-crew/hogwash/internal/services/activity"
	broadcastSvc "github.com/hogwash-crew/hogwash/internal/services/broadcast"
	cooldownSvc "github.com/hogwash-crew/hogwash/internal/services/cooldown"
	creditsSvc "github.com/hogwash-crew/hogwash/internal/services/credits"
	ledgerSvc "github.com/hogwash-crew/hogwash/internal/services/ledger"
	messagingSvc "github.com/hogwash-crew/hogwash/internal/services/messaging"
	outcomeSvc "github.com/hogwash-crew/hogwash/internal/services/outcome"
)

// Config holds configuration for the game service
type Config struct {
	// Service dependencies
	LedgerService    ledgerSvc.Service
	CooldownService  cooldownSvc.Service
	DrinkCredits     creditsSvc.Service
	DangerCredits    creditsSvc.Service
	OutcomeService   outcomeSvc.Service
	BroadcastService broadcastSvc.Service
	ActivityService  activitySvc.Service
	MessagingService messagingSvc.Service
}

// GambleInput contains parameters for one HOGWASH attempt
type GambleInput struct {
	// PlayerName is the player the attempt is made for
	PlayerName string

	// Forced bypasses the weighted draw (operator and test tooling)
	Forced outcomeSvc.Kind
}

// GambleOutput contains the resolved outcome and its consequences
type GambleOutput struct {
	Kind        outcomeSvc.Kind
	Message     string
	PointsDelta int
	NewPoints   int
	DrinkCount  int
	FinishDrink bool
	PowerUp     models.PowerUpKind
	PowerUpGain int
}

// TransferInput contains parameters for a point transfer
type TransferInput struct {
	From   string
	To     string
	Amount int
}

// TransferOutput contains the post-transfer balances
type TransferOutput struct {
	FromPoints int
	ToPoints   int
	Message    string
}

// AssignDrinksInput contains parameters for a drink assignment
type AssignDrinksInput struct {
	// Assignments maps recipient name to drink count
	Assignments map[string]int

	// AssignedBy identifies the assigner for anonymous sessions; an
	// authenticated identity takes precedence
	AssignedBy string

	Message string
}

// AssignDrinksOutput contains the published event and remaining credits
type AssignDrinksOutput struct {
	EventID          string
	TotalDrinks      int
	RemainingCredits int
}

// InitiateDangerZoneInput contains parameters for a danger-zone broadcast
type InitiateDangerZoneInput struct {
	// PlayerName identifies the initiator for anonymous sessions; an
	// authenticated identity takes precedence
	PlayerName string
}

// InitiateDangerZoneOutput contains the published event and remaining credits
type InitiateDangerZoneOutput struct {
	EventID          string
	RemainingCredits int
}

// RequestProofInput contains parameters for opening a proof request
type RequestProofInput struct {
	PlayerName  string
	RequestedBy string
}

// RequestProofOutput contains the opened request id
type RequestProofOutput struct {
	RequestID string
}

// SubmitProofInput contains parameters for fulfilling a proof request
type SubmitProofInput struct {
	RequestID string
	ProofRef  string
}

// UsePowerUpInput contains parameters for consuming a power-up
type UsePowerUpInput struct {
	Name string
	Kind models.PowerUpKind
}

// SetScoreInput contains parameters for a privileged balance overwrite
type SetScoreInput struct {
	Name   string
	Points int
}

// ForceNextOutcomeInput contains parameters for arming a draw override
type ForceNextOutcomeInput struct {
	Kind outcomeSvc.Kind
}

// LeaderboardOutput contains the current standings
type LeaderboardOutput struct {
	Entries []models.LeaderboardEntry
}
