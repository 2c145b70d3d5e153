// Package notify delivers flip decisions to their output surfaces: the
// console log and an optional websocket feed for overlay clients.
package notify

import (
	"log/slog"

	"github.com/skyflipper/engine/internal/store"
)

// Sink receives flip decisions that cleared the profitability rules.
type Sink interface {
	Notify(decision store.FlipDecision) error
}

// Fanout delivers a decision to every sink. Decisions whose display filter
// suppressed them are dropped here; sink errors are logged and do not stop
// delivery to the remaining sinks.
func Fanout(sinks []Sink, decision store.FlipDecision) {
	if !decision.Notify {
		slog.Debug("flip_notification_suppressed", "uuid", decision.UUID, "tier", decision.Tier)
		return
	}

	for _, s := range sinks {
		if err := s.Notify(decision); err != nil {
			slog.Warn("sink_notify_failed", "error", err, "uuid", decision.UUID)
		}
	}
}
