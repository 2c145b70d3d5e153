package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/skyflipper/engine/internal/store"
)

// FlipAlertsView displays flip decisions as they are found.
type FlipAlertsView struct {
	list     *tview.List
	flips    []store.FlipDecision
	maxItems int
}

// NewFlipAlertsView creates a new flip alerts view.
func NewFlipAlertsView() *FlipAlertsView {
	list := tview.NewList().
		ShowSecondaryText(true)

	list.SetTitle(" 💰 Flip Alerts ").SetBorder(true)
	list.SetMainTextColor(tcell.ColorWhite)

	return &FlipAlertsView{
		list:     list,
		flips:    make([]store.FlipDecision, 0, 50),
		maxItems: 50,
	}
}

// Widget returns the tview primitive.
func (v *FlipAlertsView) Widget() tview.Primitive {
	return v.list
}

// AddFlip adds a new decision to the alerts list.
func (v *FlipAlertsView) AddFlip(decision store.FlipDecision) {
	// Add to front of list
	v.flips = append([]store.FlipDecision{decision}, v.flips...)

	// Trim to max items
	if len(v.flips) > v.maxItems {
		v.flips = v.flips[:v.maxItems]
	}

	v.rebuildList()
}

// Refresh redraws the list.
func (v *FlipAlertsView) Refresh() {
	v.rebuildList()
}

// rebuildList rebuilds the entire list from decisions.
func (v *FlipAlertsView) rebuildList() {
	v.list.Clear()

	if len(v.flips) == 0 {
		v.list.AddItem("No flips found yet", "", 0, nil)
		return
	}

	for _, flip := range v.flips {
		mainText, secondaryText := formatFlip(flip)
		v.list.AddItem(mainText, secondaryText, 0, nil)
	}

	// Update title with count
	v.list.SetTitle(fmt.Sprintf(" 💰 Flip Alerts (%d) ", len(v.flips)))
}

// formatFlip formats a decision for display.
func formatFlip(d store.FlipDecision) (string, string) {
	timeStr := d.EvaluatedAt.Format("15:04:05")

	name := d.ItemName
	if len(name) > 32 {
		name = name[:29] + "..."
	}

	// Main text: Time + Item + Margin
	mainText := fmt.Sprintf("%s %s [%s] +%s", timeStr, name, d.Tier, formatCoins(d.Margin))

	// Secondary text: ask/fair, comparables and the action command
	secondaryText := fmt.Sprintf("ask %s | fair %s | %d comps | %s",
		formatCoins(d.StartingBid), formatCoins(d.FairPrice), d.ComparableCount, d.ViewCommand())

	return mainText, secondaryText
}

// formatCoins renders a coin amount compactly (1.2m, 450k).
func formatCoins(v float64) string {
	switch {
	case v >= 1000000:
		return fmt.Sprintf("%.1fm", v/1000000)
	case v >= 1000:
		return fmt.Sprintf("%.0fk", v/1000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
