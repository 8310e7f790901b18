package models

import (
	"sort"
)

// Ledger is the full mapping of player name to record. It is stored and
// transmitted as one document; the remote store owns it, every client holds
// a transient copy that is stale the instant a newer snapshot arrives.
type Ledger map[string]*Player

// Clone returns a deep copy of the ledger
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for name, player := range l {
		copied := *player
		out[name] = &copied
	}
	return out
}

// LeaderboardEntry is one row of the points-descending standings
type LeaderboardEntry struct {
	Name     string   `json:"name"`
	Points   int      `json:"points"`
	PowerUps PowerUps `json:"powerUps"`
}

// Leaderboard returns the regular players ordered by points descending,
// name ascending on ties. The house account is excluded.
func (l Ledger) Leaderboard() []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(l))
	for name, player := range l {
		if name == HouseAccount {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Name:     name,
			Points:   player.Points,
			PowerUps: player.PowerUps,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})

	return entries
}

// NewDefaultLedger builds the ledger every roster member starts with
func NewDefaultLedger() Ledger {
	ledger := make(Ledger, len(Roster)+1)
	for _, name := range AllPlayers() {
		ledger[name] = NewDefaultPlayer(name)
	}
	return ledger
}
