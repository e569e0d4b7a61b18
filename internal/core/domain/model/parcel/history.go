package parcel

import "time"

// HistoryEntry records one status the parcel held and when it entered it.
type HistoryEntry struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
}

// History is the append-only timeline of a parcel's statuses. Entries are
// never edited, removed or reordered; the type exposes no API to do so.
type History struct {
	entries []HistoryEntry
}

// NewHistory returns an empty history.
func NewHistory() History {
	return History{}
}

// RestoreHistory rebuilds a history from persisted entries.
func RestoreHistory(entries []HistoryEntry) History {
	copied := make([]HistoryEntry, len(entries))
	copy(copied, entries)
	return History{entries: copied}
}

// Append adds one entry to the end of the timeline.
func (h *History) Append(status Status, at time.Time) {
	h.entries = append(h.entries, HistoryEntry{Status: status, At: at})
}

// Entries returns a copy of the timeline in chronological order.
func (h History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded entries.
func (h History) Len() int {
	return len(h.entries)
}
