package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/skyflipper/engine/internal/metrics"
	"github.com/skyflipper/engine/internal/store"
)

// StatsDashboardView displays scanner health and throughput counters.
type StatsDashboardView struct {
	textView *tview.TextView
}

// NewStatsDashboardView creates a new stats dashboard view.
func NewStatsDashboardView() *StatsDashboardView {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)

	textView.SetTitle(" Stats Dashboard ").SetBorder(true)

	return &StatsDashboardView{
		textView: textView,
	}
}

// Widget returns the tview primitive.
func (v *StatsDashboardView) Widget() tview.Primitive {
	return v.textView
}

// Update refreshes the stats display.
func (v *StatsDashboardView) Update(snapshot metrics.Snapshot) {
	v.textView.Clear()

	uptime := formatDuration(snapshot.Uptime)

	lastCycle := "never"
	if !snapshot.LastCycleAt.IsZero() {
		lastCycle = formatTimeAgo(snapshot.LastCycleAt)
	}

	bufferPct := 0.0
	if snapshot.ChannelBufferCap > 0 {
		bufferPct = (float64(snapshot.ChannelBufferUsed) / float64(snapshot.ChannelBufferCap)) * 100
	}

	text := fmt.Sprintf(`[yellow]Scanner[-]
Uptime: %s
Cycles: %d
Last Cycle: %s (%s)

[yellow]Listings[-]
Seen: %d
Evaluated: %d
Flips: %d

[yellow]Skips[-]
No Item ID: %d
Illiquid: %d
No Direct Buy: %d
Below Threshold: %d
Has Bids: %d

[yellow]Performance[-]
Channel Buffer: %d/%d (%.1f%%)
`,
		uptime,
		snapshot.CyclesCompleted,
		lastCycle,
		formatDuration(snapshot.LastCycleDuration),
		snapshot.ListingsSeen,
		snapshot.ListingsEvaluated,
		snapshot.Decisions,
		snapshot.SkipsByReason[store.SkipNoItemID],
		snapshot.SkipsByReason[store.SkipLowVolume],
		snapshot.SkipsByReason[store.SkipNoDirectBuy],
		snapshot.SkipsByReason[store.SkipUnprofitable],
		snapshot.SkipsByReason[store.SkipHasBids],
		snapshot.ChannelBufferUsed,
		snapshot.ChannelBufferCap,
		bufferPct,
	)

	fmt.Fprint(v.textView, text)
}

// formatDuration formats a duration in human-readable form.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// formatTimeAgo formats a time as "X ago".
func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	elapsed := time.Since(t)

	if elapsed < time.Minute {
		return fmt.Sprintf("%.0fs ago", elapsed.Seconds())
	}
	if elapsed < time.Hour {
		return fmt.Sprintf("%.0fm ago", elapsed.Minutes())
	}
	return fmt.Sprintf("%.0fh ago", elapsed.Hours())
}
