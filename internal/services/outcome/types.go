package outcome

import (
	"github.com/hogwash-crew/hogwash/internal/dice"
	"github.com/hogwash-crew/hogwash/internal/models"
)

// Kind is one of the fixed weighted categories a gambling draw can produce
type Kind string

const (
	KindDrink           Kind = "drink"
	KindWin             Kind = "win"
	KindLose            Kind = "lose"
	KindGiveDrinks      Kind = "give_drinks"
	KindDanger          Kind = "danger"
	KindMulligan        Kind = "mulligan"
	KindReverseMulligan Kind = "reverse_mulligan"
)

// weightedKind pairs an outcome kind with its draw weight
type weightedKind struct {
	kind   Kind
	weight int
}

// The outcome table. Weights are disjoint integer ranges over [0, 20).
var outcomeTable = []weightedKind{
	{KindDrink, 4},
	{KindWin, 4},
	{KindLose, 4},
	{KindGiveDrinks, 4},
	{KindDanger, 2},
	{KindMulligan, 1},
	{KindReverseMulligan, 1},
}

// totalWeight is the sum of all table weights
const totalWeight = 20

// Config holds configuration for the outcome service
type Config struct {
	// Roller supplies the random draws
	Roller dice.Roller
}

// ResolveInput contains parameters for one draw
type ResolveInput struct {
	// Forced, when set, bypasses the weighted draw entirely
	Forced Kind
}

// ResolveOutput contains the drawn kind
type ResolveOutput struct {
	Kind Kind
}

// ComputeEffectInput contains parameters for computing an outcome's effect
type ComputeEffectInput struct {
	Kind       Kind
	PlayerName string
}

// Effect describes the mutation and display consequences of one outcome.
// It is a plain value; the caller applies it to the ledger and the
// broadcast bus.
type Effect struct {
	Kind       Kind
	PlayerName string

	// PointsDelta / HouseDelta are a conserved pair for win and lose
	PointsDelta int
	HouseDelta  int

	// DrinkCount is the display-only drink assignment for the drink kind
	DrinkCount int

	// FinishDrink replaces DrinkCount 15% of the time
	FinishDrink bool

	// PowerUp / PowerUpDelta describe an inventory grant
	PowerUp      models.PowerUpKind
	PowerUpDelta int

	// Broadcast marks outcomes that trigger a danger-zone event
	Broadcast bool
}
