package extract

import (
	"sync"
	"time"
)

// RSVPCooldownWindow is how long an RSVP response suppresses the follow-up
// update the groupware fires for the same calendar entry.
const RSVPCooldownWindow = 1000 * time.Millisecond

type cooldownEntry struct {
	userID int
	at     time.Time
}

// CooldownTracker keeps per-calendar-entry suppression state for
// RSVP-triggered updates. At most one entry is active per calendar entry;
// expired entries are purged lazily before each lookup, so no background
// sweeper is needed.
type CooldownTracker struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[int]cooldownEntry
}

// NewCooldownTracker creates a tracker with the given expiry window.
func NewCooldownTracker(window time.Duration) *CooldownTracker {
	return &CooldownTracker{
		window:  window,
		entries: make(map[int]cooldownEntry),
	}
}

// RecordResponse starts or refreshes the cooldown for a calendar entry,
// overwriting any previous responder.
func (t *CooldownTracker) RecordResponse(entryID, userID int, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[entryID] = cooldownEntry{userID: userID, at: now}
}

// IsSuppressedUpdate purges expired cooldowns and then reports whether an
// active cooldown exists for the entry with the same responding user. Entries
// recorded exactly at the expiry threshold are kept.
func (t *CooldownTracker) IsSuppressedUpdate(entryID, userID int, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	threshold := now.Add(-t.window)
	for id, entry := range t.entries {
		if entry.at.Before(threshold) {
			delete(t.entries, id)
		}
	}

	entry, ok := t.entries[entryID]
	return ok && entry.userID == userID
}
