package notify

import (
	"log/slog"

	"github.com/skyflipper/engine/internal/store"
)

// LogSink writes each flip to the structured log, including the command
// string for acting on it manually.
type LogSink struct{}

// NewLogSink creates a LogSink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Notify logs the decision.
func (s *LogSink) Notify(d store.FlipDecision) error {
	slog.Info("flip_found",
		"item", d.ItemName,
		"tier", d.Tier,
		"ask", d.StartingBid,
		"fair", d.FairPrice,
		"margin", d.Margin,
		"comparables", d.ComparableCount,
		"command", d.ViewCommand(),
	)
	return nil
}
