// Package scanner owns the polling loop: it fetches the live auction list,
// runs each listing through the evaluator on a bounded worker pool and emits
// decisions and scan events on channels.
package scanner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/skyflipper/engine/internal/config"
	"github.com/skyflipper/engine/internal/evaluator"
	"github.com/skyflipper/engine/internal/metrics"
	"github.com/skyflipper/engine/internal/store"
)

// Fetcher is the transport contract the scanner depends on.
type Fetcher interface {
	FetchActiveAuctions(ctx context.Context) ([]store.Listing, error)
	FetchAuctionByUUID(ctx context.Context, uuid string) (store.SoldRecord, error)
	FetchLowestDirectBuyListings(ctx context.Context, tag string, filter store.Filter) ([]store.PriceSample, error)
	FetchPriceHistory(ctx context.Context, tag, window string, filter store.Filter) ([]store.PriceSample, error)
	FetchSoldHistory(ctx context.Context, tag string, page, pageSize int) ([]store.SoldRecord, error)
}

// Scanner drives repeated scan cycles over the live auction list.
type Scanner struct {
	cfg       *config.Config
	fetcher   Fetcher
	eval      *evaluator.Evaluator
	tracker   *metrics.Tracker
	decisions chan<- store.FlipDecision
	events    chan<- store.ScanEvent
}

// New creates a Scanner.
func New(cfg *config.Config, fetcher Fetcher, eval *evaluator.Evaluator, tracker *metrics.Tracker,
	decisions chan<- store.FlipDecision, events chan<- store.ScanEvent) *Scanner {
	return &Scanner{
		cfg:       cfg,
		fetcher:   fetcher,
		eval:      eval,
		tracker:   tracker,
		decisions: decisions,
		events:    events,
	}
}

// Run executes scan cycles until the context is cancelled. A new cycle starts
// as soon as the previous one finishes.
func (s *Scanner) Run(ctx context.Context) {
	slog.Info("scanner_started", "workers", s.cfg.WorkerCount, "cycle_budget", s.cfg.CycleBudget)

	for {
		select {
		case <-ctx.Done():
			slog.Info("scanner_stopped")
			return
		default:
		}

		if err := s.ScanOnce(ctx); err != nil {
			slog.Warn("scan_cycle_failed", "error", err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}
}

// ScanOnce runs a single scan cycle under the configured budget. Listings not
// processed before the budget expires are abandoned; the next cycle sees
// fresh data anyway.
func (s *Scanner) ScanOnce(ctx context.Context) error {
	start := time.Now()

	cctx, cancel := context.WithTimeout(ctx, s.cfg.CycleBudget)
	defer cancel()

	listings, err := s.fetcher.FetchActiveAuctions(cctx)
	if err != nil {
		return err
	}
	slog.Debug("cycle_started", "listings", len(listings))

	jobs := make(chan store.Listing)

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for l := range jobs {
				s.process(cctx, l)
			}
		}()
	}

feed:
	for _, l := range listings {
		select {
		case <-cctx.Done():
			slog.Debug("cycle_budget_exhausted", "remaining", len(listings))
			break feed
		case jobs <- l:
		}
	}
	close(jobs)
	wg.Wait()

	s.tracker.RecordCycle(len(listings), time.Since(start))
	slog.Debug("cycle_finished", "duration", time.Since(start))
	return nil
}

// process evaluates one listing. Fetch failures degrade to empty inputs; the
// evaluator's own gates then decide the skip reason.
func (s *Scanner) process(ctx context.Context, l store.Listing) {
	if ctx.Err() != nil {
		return
	}

	target, ok := s.eval.Resolve(l)
	if !ok {
		s.tracker.RecordSkip(store.SkipNoItemID)
		s.emitEvent(l, "", store.SkipNoItemID, false)
		return
	}

	if detail, err := s.fetcher.FetchAuctionByUUID(ctx, l.UUID); err != nil {
		slog.Debug("auction_detail_fetch_failed", "uuid", l.UUID, "error", err)
	} else {
		l.Metadata = detail.Metadata
	}

	history, err := s.fetcher.FetchPriceHistory(ctx, target.ItemID, s.cfg.PriceWindow, target.Filter)
	if err != nil {
		slog.Debug("price_history_fetch_failed", "tag", target.ItemID, "error", err)
	}

	lowest, err := s.fetcher.FetchLowestDirectBuyListings(ctx, target.ItemID, target.Filter)
	if err != nil {
		slog.Debug("lowest_bin_fetch_failed", "tag", target.ItemID, "error", err)
	}

	sold, err := s.fetcher.FetchSoldHistory(ctx, target.ItemID, 0, s.cfg.SoldPageSize)
	if err != nil {
		slog.Debug("sold_history_fetch_failed", "tag", target.ItemID, "error", err)
	}

	if ctx.Err() != nil {
		return
	}

	s.tracker.RecordEvaluated()

	decision, reason := s.eval.Evaluate(target, l, history, lowest, sold)
	if decision == nil {
		s.tracker.RecordSkip(reason)
		s.emitEvent(l, target.ItemID, reason, false)
		return
	}

	s.tracker.RecordDecision()
	s.emitEvent(l, target.ItemID, "", true)

	select {
	case s.decisions <- *decision:
		s.tracker.SetChannelBuffer(len(s.decisions), cap(s.decisions))
	default:
		slog.Warn("decision_channel_full", "dropped_uuid", decision.UUID)
	}
}

// emitEvent publishes a scan event without blocking; the feed view is
// best-effort.
func (s *Scanner) emitEvent(l store.Listing, itemID, reason string, flip bool) {
	if s.events == nil {
		return
	}

	event := store.ScanEvent{
		UUID:     l.UUID,
		ItemName: l.ItemName,
		Tier:     l.Tier,
		ItemID:   itemID,
		Reason:   reason,
		Flip:     flip,
		At:       time.Now(),
	}

	select {
	case s.events <- event:
	default:
	}
}
