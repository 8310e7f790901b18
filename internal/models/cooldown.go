package models

// Cooldowns maps player name to the epoch-millisecond timestamp of their
// last accepted gambling attempt.
type Cooldowns map[string]int64

// Merge overlays remote values on top of the local cache. The remote store
// is the arbiter of truth across devices; the local cache exists only for
// offline continuity, so remote wins per player.
func (c Cooldowns) Merge(remote Cooldowns) Cooldowns {
	merged := make(Cooldowns, len(c)+len(remote))
	for name, ts := range c {
		merged[name] = ts
	}
	for name, ts := range remote {
		merged[name] = ts
	}
	return merged
}
