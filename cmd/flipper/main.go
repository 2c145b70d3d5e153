// Package main is the entry point for the auction flip scanner.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/skyflipper/engine/internal/catalog"
	"github.com/skyflipper/engine/internal/config"
	"github.com/skyflipper/engine/internal/evaluator"
	"github.com/skyflipper/engine/internal/ingest"
	"github.com/skyflipper/engine/internal/metrics"
	"github.com/skyflipper/engine/internal/notify"
	"github.com/skyflipper/engine/internal/scanner"
	"github.com/skyflipper/engine/internal/store"
	"github.com/skyflipper/engine/internal/ui"
)

const (
	// DecisionChannelBuffer is the size of the buffered decision channel
	DecisionChannelBuffer = 100
	// EventChannelBuffer is the size of the buffered scan event channel
	EventChannelBuffer = 256
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize structured logger
	logger := setupLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	slog.Info("flipper starting",
		"version", "1.0.0",
	)

	slog.Info("config_loaded",
		"hypixel_base_url", cfg.HypixelBaseURL,
		"coflnet_base_url", cfg.CoflnetBaseURL,
		"hypixel_api_key", cfg.MaskedAPIKey(),
		"catalog_path", cfg.CatalogPath,
		"profit_threshold", cfg.ProfitThreshold,
		"trim_fraction", cfg.TrimFraction,
		"price_window", cfg.PriceWindow,
		"delta_policy", cfg.DeltaPolicy,
		"cycle_budget", cfg.CycleBudget,
		"worker_count", cfg.WorkerCount,
		"feed_listen_addr", cfg.FeedListenAddr,
		"enable_tui", cfg.EnableTUI,
	)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Create channels
	decisionChan := make(chan store.FlipDecision, DecisionChannelBuffer)
	eventChan := make(chan store.ScanEvent, EventChannelBuffer)

	// Initialize metrics tracker
	tracker := metrics.NewTracker()

	// Initialize transport client
	client := ingest.NewClient(cfg)

	// Load the item reference dataset
	cat, err := loadCatalog(ctx, cfg, client)
	if err != nil {
		slog.Error("failed to load item catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("catalog_loaded", "items", cat.Size())

	// Initialize evaluator and scanner
	eval := evaluator.New(cfg, cat)
	scan := scanner.New(cfg, client, eval, tracker, decisionChan, eventChan)
	go scan.Run(ctx)

	// Initialize notification sinks
	sinks := []notify.Sink{notify.NewLogSink()}

	var feed *notify.WebsocketSink
	if cfg.FeedListenAddr != "" {
		feed = notify.NewWebsocketSink(cfg.FeedListenAddr)
		if err := feed.Start(); err != nil {
			slog.Error("failed to start feed sink", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, feed)
	}

	// Fan decisions out to the sinks, forwarding a copy to the TUI
	uiDecisions := make(chan store.FlipDecision, DecisionChannelBuffer)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case decision, ok := <-decisionChan:
				if !ok {
					return
				}

				notify.Fanout(sinks, decision)

				if cfg.EnableTUI {
					select {
					case uiDecisions <- decision:
					default:
						slog.Warn("ui_decision_dropped", "uuid", decision.UUID)
					}
				}
			}
		}
	}()

	slog.Info("scanner_running",
		"status", "scanning auctions",
		"workers", cfg.WorkerCount,
		"tui_enabled", cfg.EnableTUI,
	)

	// Start TUI or run in background mode
	if cfg.EnableTUI {
		slog.Info("starting_tui")
		app := ui.NewApp(uiDecisions, eventChan, tracker, cfg.UIRefreshRate)

		// Start TUI in goroutine so we can still handle signals
		go func() {
			if err := app.Run(); err != nil {
				slog.Error("tui_error", "error", err)
				cancel()
			}
		}()

		// Wait for shutdown signal or context cancellation
		select {
		case sig := <-sigChan:
			slog.Info("shutdown_signal_received", "signal", sig.String())
			app.Stop()
		case <-ctx.Done():
			app.Stop()
		}
	} else {
		// Background mode - just wait for signal
		sig := <-sigChan
		slog.Info("shutdown_signal_received", "signal", sig.String())
	}

	cancel()

	// Graceful shutdown
	slog.Info("shutting_down")

	if feed != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := feed.Stop(shutdownCtx); err != nil {
			slog.Warn("feed_shutdown_failed", "error", err)
		}
		shutdownCancel()
	}

	// Drain remaining decisions
	drainDecisions(decisionChan)

	slog.Info("shutdown_complete")
}

// loadCatalog loads the item reference dataset from the configured file,
// falling back to the marketplace items endpoint.
func loadCatalog(ctx context.Context, cfg *config.Config, client *ingest.Client) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err == nil {
		return cat, nil
	}
	slog.Warn("catalog_file_unavailable", "path", cfg.CatalogPath, "error", err)

	items, err := client.FetchItemCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(items), nil
}

// drainDecisions processes remaining decisions in the channel during shutdown.
func drainDecisions(decisionChan <-chan store.FlipDecision) {
	timeout := time.After(5 * time.Second)
	drained := 0

	for {
		select {
		case <-decisionChan:
			drained++
		case <-timeout:
			if drained > 0 {
				slog.Info("decisions_drained", "count", drained)
			}
			return
		default:
			if drained > 0 {
				slog.Info("decisions_drained", "count", drained)
			}
			return
		}
	}
}

// setupLogger creates a structured logger with the specified level.
// Format: 2025-01-04 14:32:01 [INFO]  message key=value
func setupLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("2006-01-02 15:04:05"))
				}
			}
			return a
		},
	}

	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}
