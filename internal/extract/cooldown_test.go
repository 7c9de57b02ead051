package extract

import (
	"testing"
	"time"
)

func TestCooldownSuppressesSameUserWithinWindow(t *testing.T) {
	tracker := NewCooldownTracker(RSVPCooldownWindow)
	base := time.UnixMilli(1000)

	tracker.RecordResponse(42, 7, base)

	if !tracker.IsSuppressedUpdate(42, 7, base.Add(500*time.Millisecond)) {
		t.Error("update from responding user within window should be suppressed")
	}
}

func TestCooldownIgnoresOtherUsers(t *testing.T) {
	tracker := NewCooldownTracker(RSVPCooldownWindow)
	base := time.UnixMilli(1000)

	tracker.RecordResponse(42, 7, base)

	if tracker.IsSuppressedUpdate(42, 8, base.Add(500*time.Millisecond)) {
		t.Error("update from a different user should not be suppressed")
	}
}

func TestCooldownIgnoresOtherEntries(t *testing.T) {
	tracker := NewCooldownTracker(RSVPCooldownWindow)
	base := time.UnixMilli(1000)

	tracker.RecordResponse(42, 7, base)

	if tracker.IsSuppressedUpdate(43, 7, base.Add(500*time.Millisecond)) {
		t.Error("update for a different entry should not be suppressed")
	}
}

func TestCooldownExpires(t *testing.T) {
	tracker := NewCooldownTracker(RSVPCooldownWindow)
	base := time.UnixMilli(1000)

	tracker.RecordResponse(42, 7, base)

	if tracker.IsSuppressedUpdate(42, 7, base.Add(1001*time.Millisecond)) {
		t.Error("update outside the window should not be suppressed")
	}
}

func TestCooldownKeptExactlyAtThreshold(t *testing.T) {
	tracker := NewCooldownTracker(RSVPCooldownWindow)
	base := time.UnixMilli(1000)

	tracker.RecordResponse(42, 7, base)

	// Entries exactly at now-window are not strictly older and survive.
	if !tracker.IsSuppressedUpdate(42, 7, base.Add(RSVPCooldownWindow)) {
		t.Error("entry exactly at the threshold should still be active")
	}
}

func TestCooldownPurgeIdempotent(t *testing.T) {
	tracker := NewCooldownTracker(RSVPCooldownWindow)
	base := time.UnixMilli(1000)

	tracker.RecordResponse(42, 7, base)
	tracker.RecordResponse(43, 8, base.Add(2*time.Second))

	// Repeated lookups at the same instant purge only entries strictly
	// older than the threshold and never a just-inserted one.
	now := base.Add(2 * time.Second)
	for i := 0; i < 3; i++ {
		if tracker.IsSuppressedUpdate(42, 7, now) {
			t.Fatal("expired entry should be purged")
		}
		if !tracker.IsSuppressedUpdate(43, 8, now) {
			t.Fatal("fresh entry should survive repeated purges")
		}
	}
}

func TestCooldownOverwritesPreviousResponder(t *testing.T) {
	tracker := NewCooldownTracker(RSVPCooldownWindow)
	base := time.UnixMilli(1000)

	tracker.RecordResponse(42, 7, base)
	tracker.RecordResponse(42, 9, base.Add(100*time.Millisecond))

	now := base.Add(200 * time.Millisecond)
	if tracker.IsSuppressedUpdate(42, 7, now) {
		t.Error("previous responder should no longer be suppressed")
	}
	if !tracker.IsSuppressedUpdate(42, 9, now) {
		t.Error("latest responder should be suppressed")
	}
}
