package storage

import (
	"sync"

	"snapbuy/internal/models"
)

const timelineCap = 1000

// Timeline keeps a bounded in-memory history of state machine activity
// for the debug view. Oldest entries are dropped once the cap is hit.
type Timeline struct {
	mu      sync.Mutex
	entries []models.DebugLogEntry
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

func (t *Timeline) Append(entry models.DebugLogEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	if len(t.entries) > timelineCap {
		t.entries = t.entries[len(t.entries)-timelineCap:]
	}
}

// Entries returns a snapshot in insertion order.
func (t *Timeline) Entries() []models.DebugLogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.DebugLogEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Timeline) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}
