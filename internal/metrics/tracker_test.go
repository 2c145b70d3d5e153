package metrics

import (
	"testing"
	"time"
)

func TestTrackerSnapshot(t *testing.T) {
	tracker := NewTracker()

	tracker.RecordCycle(120, 45*time.Second)
	for i := 0; i < 3; i++ {
		tracker.RecordEvaluated()
	}
	tracker.RecordSkip("LOW_VOLUME")
	tracker.RecordSkip("LOW_VOLUME")
	tracker.RecordSkip("HAS_BIDS")
	tracker.RecordDecision()
	tracker.SetChannelBuffer(2, 100)

	snap := tracker.Snapshot()
	if snap.CyclesCompleted != 1 || snap.ListingsSeen != 120 {
		t.Errorf("cycle counters = %d/%d, want 1/120", snap.CyclesCompleted, snap.ListingsSeen)
	}
	if snap.ListingsEvaluated != 3 {
		t.Errorf("ListingsEvaluated = %d, want 3", snap.ListingsEvaluated)
	}
	if snap.SkipsByReason["LOW_VOLUME"] != 2 || snap.SkipsByReason["HAS_BIDS"] != 1 {
		t.Errorf("SkipsByReason = %v", snap.SkipsByReason)
	}
	if snap.Decisions != 1 {
		t.Errorf("Decisions = %d, want 1", snap.Decisions)
	}
	if snap.LastCycleDuration != 45*time.Second {
		t.Errorf("LastCycleDuration = %v", snap.LastCycleDuration)
	}
	if snap.ChannelBufferUsed != 2 || snap.ChannelBufferCap != 100 {
		t.Errorf("channel buffer = %d/%d", snap.ChannelBufferUsed, snap.ChannelBufferCap)
	}

	// The snapshot map is a copy; mutating it must not touch the tracker.
	snap.SkipsByReason["LOW_VOLUME"] = 99
	if tracker.Snapshot().SkipsByReason["LOW_VOLUME"] != 2 {
		t.Error("snapshot map should be independent of the tracker")
	}
}
