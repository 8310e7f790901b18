package models

import (
	"encoding/json"
)

// HouseAccount is the privileged synthetic player that bankrolls gambling
// outcomes. It is part of the roster but never shown on the leaderboard.
const HouseAccount = "House"

// Roster is the fixed, closed set of regular players. Every roster member
// (plus the house account) has a ledger record at all times; missing records
// are synthesized with defaults on load.
var Roster = []string{"Alex", "Evan", "Ian", "Tyler", "Marissa", "Dutch"}

const (
	// DefaultPoints is the starting balance for a regular player
	DefaultPoints = 100

	// DefaultHousePoints is the starting balance for the house account
	DefaultHousePoints = 1000
)

// PowerUps is a player's inventory of single-use abilities
type PowerUps struct {
	Mulligans        int `json:"mulligans"`
	ReverseMulligans int `json:"reverseMulligans"`
	GiveDrinks       int `json:"giveDrinks"`
}

// Player holds one roster member's point balance and power-up inventory
type Player struct {
	Points   int      `json:"points"`
	PowerUps PowerUps `json:"powerUps"`
}

// UnmarshalJSON accepts both the current structured shape and the legacy
// scalar shape, where a player record was a bare point count. The union is
// resolved here at the decode boundary and never carried further.
func (p *Player) UnmarshalJSON(data []byte) error {
	var legacy int
	if err := json.Unmarshal(data, &legacy); err == nil {
		p.Points = legacy
		p.PowerUps = PowerUps{}
		return nil
	}

	type current Player
	var cur current
	if err := json.Unmarshal(data, &cur); err != nil {
		return err
	}

	*p = Player(cur)
	return nil
}

// NewDefaultPlayer synthesizes the record a never-initialized roster member
// is entitled to.
func NewDefaultPlayer(name string) *Player {
	points := DefaultPoints
	if name == HouseAccount {
		points = DefaultHousePoints
	}

	return &Player{
		Points:   points,
		PowerUps: PowerUps{},
	}
}

// AllPlayers returns the roster plus the house account
func AllPlayers() []string {
	all := make([]string, 0, len(Roster)+1)
	all = append(all, Roster...)
	all = append(all, HouseAccount)
	return all
}

// IsRosterMember reports whether name is a regular player or the house account
func IsRosterMember(name string) bool {
	for _, n := range AllPlayers() {
		if n == name {
			return true
		}
	}
	return false
}
