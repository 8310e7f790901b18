package models

// ActivityEntry is one row of the append-only activity feed. Entries are
// written once and never updated or deleted.
type ActivityEntry struct {
	ID        string            `json:"id"`
	Category  string            `json:"category"`
	Icon      string            `json:"icon"`
	Message   string            `json:"message"`
	Timestamp int64             `json:"timestamp"`
	Extra     map[string]string `json:"extra,omitempty"`
}
