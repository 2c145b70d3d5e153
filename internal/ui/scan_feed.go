package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/skyflipper/engine/internal/store"
)

// ScanFeedView displays recent listing evaluations as a rolling feed.
type ScanFeedView struct {
	textView *tview.TextView
	events   []store.ScanEvent
	maxItems int
}

// NewScanFeedView creates a new scan feed view.
func NewScanFeedView() *ScanFeedView {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)

	textView.SetTitle(" Scan Feed ").SetBorder(true)

	return &ScanFeedView{
		textView: textView,
		events:   make([]store.ScanEvent, 0, 100),
		maxItems: 100,
	}
}

// Widget returns the tview primitive.
func (v *ScanFeedView) Widget() tview.Primitive {
	return v.textView
}

// AddEvent adds an evaluation to the feed.
func (v *ScanFeedView) AddEvent(event store.ScanEvent) {
	v.events = append([]store.ScanEvent{event}, v.events...)
	if len(v.events) > v.maxItems {
		v.events = v.events[:v.maxItems]
	}

	v.Refresh()
}

// Refresh redraws the feed.
func (v *ScanFeedView) Refresh() {
	v.textView.Clear()

	for _, event := range v.events {
		fmt.Fprintln(v.textView, formatEvent(event))
	}
}

// formatEvent formats one feed line.
func formatEvent(e store.ScanEvent) string {
	timeStr := e.At.Format("15:04:05")

	name := e.ItemName
	if len(name) > 40 {
		name = name[:37] + "..."
	}

	if e.Flip {
		return fmt.Sprintf("[green]%s FLIP  %s [%s][-]", timeStr, name, e.Tier)
	}
	return fmt.Sprintf("[gray]%s %-15s %s [%s][-]", timeStr, e.Reason, name, e.Tier)
}
