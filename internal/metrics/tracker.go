// Package metrics provides real-time diagnostic counters for the scanner.
package metrics

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time view of the scanner counters.
type Snapshot struct {
	CyclesCompleted   int64
	ListingsSeen      int64
	ListingsEvaluated int64
	SkipsByReason     map[string]int64
	Decisions         int64
	LastCycleDuration time.Duration
	LastCycleAt       time.Time
	Uptime            time.Duration
	ChannelBufferUsed int
	ChannelBufferCap  int
}

// Tracker provides thread-safe counters shared between the scanner and the
// dashboard.
type Tracker struct {
	mu                sync.RWMutex
	cyclesCompleted   int64
	listingsSeen      int64
	listingsEvaluated int64
	skipsByReason     map[string]int64
	decisions         int64
	lastCycleDuration time.Duration
	lastCycleAt       time.Time
	startTime         time.Time
	channelBufferUsed int
	channelBufferCap  int
}

// NewTracker creates a Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		skipsByReason: make(map[string]int64),
		startTime:     time.Now(),
	}
}

// RecordCycle records a completed scan cycle and how many listings it saw.
func (t *Tracker) RecordCycle(listings int, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cyclesCompleted++
	t.listingsSeen += int64(listings)
	t.lastCycleDuration = duration
	t.lastCycleAt = time.Now()
}

// RecordEvaluated increments the evaluated-listing counter.
func (t *Tracker) RecordEvaluated() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listingsEvaluated++
}

// RecordSkip increments the counter for a skip reason.
func (t *Tracker) RecordSkip(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.skipsByReason[reason]++
}

// RecordDecision increments the emitted-decision counter.
func (t *Tracker) RecordDecision() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.decisions++
}

// SetChannelBuffer records the decision channel buffer usage.
func (t *Tracker) SetChannelBuffer(used, capacity int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.channelBufferUsed = used
	t.channelBufferCap = capacity
}

// Snapshot returns a copy of the current counters.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	skipsCopy := make(map[string]int64, len(t.skipsByReason))
	for k, v := range t.skipsByReason {
		skipsCopy[k] = v
	}

	return Snapshot{
		CyclesCompleted:   t.cyclesCompleted,
		ListingsSeen:      t.listingsSeen,
		ListingsEvaluated: t.listingsEvaluated,
		SkipsByReason:     skipsCopy,
		Decisions:         t.decisions,
		LastCycleDuration: t.lastCycleDuration,
		LastCycleAt:       t.lastCycleAt,
		Uptime:            time.Since(t.startTime),
		ChannelBufferUsed: t.channelBufferUsed,
		ChannelBufferCap:  t.channelBufferCap,
	}
}
