package cooldown

import (
	"time"

	"github.com/hogwash-crew/hogwash/internal/common/clock"
	cooldownRepo "github.com/hogwash-crew/hogwash/internal/repositories/cooldown"
)

// Window is the rolling duration during which a player may not repeat the
// gambling action.
const Window = time.Hour

// Config holds configuration for the cooldown service
type Config struct {
	// Repo is the remote cooldown repository
	Repo cooldownRepo.Repository

	// Local is an optional fallback cache used for offline continuity
	Local cooldownRepo.Repository

	// Clock supplies the current time
	Clock clock.Clock
}

// IsOnCooldownInput contains parameters for a cooldown check
type IsOnCooldownInput struct {
	Name string
}

// IsOnCooldownOutput contains the result of a cooldown check
type IsOnCooldownOutput struct {
	OnCooldown bool
	Remaining  time.Duration
}

// RemainingInput contains parameters for a remaining-time query
type RemainingInput struct {
	Name string
}

// RemainingOutput contains the remaining cooldown duration
type RemainingOutput struct {
	Remaining time.Duration
}

// RecordAttemptInput contains parameters for stamping an attempt
type RecordAttemptInput struct {
	Name string
}

// ValidateAttemptInput contains parameters for validating an attempt
type ValidateAttemptInput struct {
	// SelectedName is the player the attempt is being made for
	SelectedName string

	// SessionIdentity is the authenticated player name, or empty for an
	// anonymous session. Anonymous sessions are exempt from the
	// same-player check.
	SessionIdentity string
}
