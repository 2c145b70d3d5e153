package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/skyflipper/engine/internal/catalog"
	"github.com/skyflipper/engine/internal/config"
	"github.com/skyflipper/engine/internal/evaluator"
	"github.com/skyflipper/engine/internal/metrics"
	"github.com/skyflipper/engine/internal/store"
)

// fakeFetcher serves canned responses and optionally blocks on price
// history until the cycle context expires.
type fakeFetcher struct {
	listings     []store.Listing
	history      []store.PriceSample
	lowest       []store.PriceSample
	sold         []store.SoldRecord
	blockHistory bool
}

func (f *fakeFetcher) FetchActiveAuctions(ctx context.Context) ([]store.Listing, error) {
	return f.listings, nil
}

func (f *fakeFetcher) FetchAuctionByUUID(ctx context.Context, uuid string) (store.SoldRecord, error) {
	return store.SoldRecord{UUID: uuid}, nil
}

func (f *fakeFetcher) FetchLowestDirectBuyListings(ctx context.Context, tag string, filter store.Filter) ([]store.PriceSample, error) {
	return f.lowest, nil
}

func (f *fakeFetcher) FetchPriceHistory(ctx context.Context, tag, window string, filter store.Filter) ([]store.PriceSample, error) {
	if f.blockHistory {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.history, nil
}

func (f *fakeFetcher) FetchSoldHistory(ctx context.Context, tag string, page, pageSize int) ([]store.SoldRecord, error) {
	return f.sold, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ProfitThreshold: 300000,
		TrimFraction:    0.4,
		PriceWindow:     "week",
		DeltaPolicy:     config.DeltaPolicyAny,
		MinDayVolume:    500,
		MinDayVolumeAvg: 5,
		SoldPageSize:    100,
		CycleBudget:     5 * time.Second,
		WorkerCount:     2,
	}
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{Name: "Aspect of the Dragons", ID: "ASPECT_OF_THE_DRAGONS", Tier: "LEGENDARY"},
	})
}

func profitableInputs() (history, lowest []store.PriceSample, sold []store.SoldRecord) {
	history = []store.PriceSample{{Volume: 300}, {Volume: 300}}
	lowest = []store.PriceSample{{Price: 1400000, DirectBuy: true}}
	for i := 0; i < 5; i++ {
		sold = append(sold, store.SoldRecord{
			ItemName:    "Aspect of the Dragons",
			Tier:        "LEGENDARY",
			StartingBid: 2000000,
			DirectBuy:   true,
		})
	}
	return history, lowest, sold
}

func TestScanOnce(t *testing.T) {
	history, lowest, sold := profitableInputs()
	fetcher := &fakeFetcher{
		listings: []store.Listing{
			{UUID: "flip-1", ItemName: "Aspect of the Dragons", Tier: "LEGENDARY", StartingBid: 1000000, DirectBuy: true},
			{UUID: "skip-1", ItemName: "Mystery Trinket", Tier: "RARE", StartingBid: 100, DirectBuy: true},
		},
		history: history,
		lowest:  lowest,
		sold:    sold,
	}

	cfg := testConfig()
	tracker := metrics.NewTracker()
	decisions := make(chan store.FlipDecision, 10)
	events := make(chan store.ScanEvent, 10)

	s := New(cfg, fetcher, evaluator.New(cfg, testCatalog()), tracker, decisions, events)
	if err := s.ScanOnce(context.Background()); err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}

	if len(decisions) != 1 {
		t.Fatalf("got %d decisions, want 1", len(decisions))
	}
	decision := <-decisions
	if decision.UUID != "flip-1" || decision.Margin != 1000000 {
		t.Errorf("unexpected decision: %+v", decision)
	}

	snap := tracker.Snapshot()
	if snap.CyclesCompleted != 1 || snap.ListingsSeen != 2 {
		t.Errorf("cycle counters = %d/%d, want 1/2", snap.CyclesCompleted, snap.ListingsSeen)
	}
	if snap.SkipsByReason[store.SkipNoItemID] != 1 {
		t.Errorf("SkipsByReason = %v, want one %s", snap.SkipsByReason, store.SkipNoItemID)
	}
	if snap.Decisions != 1 {
		t.Errorf("Decisions = %d, want 1", snap.Decisions)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
}

func TestScanOnceAbandonsOnBudget(t *testing.T) {
	listings := make([]store.Listing, 20)
	for i := range listings {
		listings[i] = store.Listing{
			UUID: "u", ItemName: "Aspect of the Dragons", Tier: "LEGENDARY",
			StartingBid: 1000000, DirectBuy: true,
		}
	}
	fetcher := &fakeFetcher{listings: listings, blockHistory: true}

	cfg := testConfig()
	cfg.CycleBudget = 50 * time.Millisecond
	tracker := metrics.NewTracker()
	decisions := make(chan store.FlipDecision, 10)

	s := New(cfg, fetcher, evaluator.New(cfg, testCatalog()), tracker, decisions, nil)

	done := make(chan error, 1)
	go func() { done <- s.ScanOnce(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ScanOnce: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ScanOnce did not return after the cycle budget expired")
	}

	if len(decisions) != 0 {
		t.Errorf("got %d decisions, want 0 when every fetch stalls", len(decisions))
	}
	if tracker.Snapshot().CyclesCompleted != 1 {
		t.Error("expected the cycle to be recorded even when abandoned")
	}
}
