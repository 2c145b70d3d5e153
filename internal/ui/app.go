// Package ui provides terminal user interface components.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/skyflipper/engine/internal/metrics"
	"github.com/skyflipper/engine/internal/store"
)

// App is the main TUI application.
type App struct {
	app    *tview.Application
	layout *tview.Flex

	// Views
	flipAlerts     *FlipAlertsView
	scanFeed       *ScanFeedView
	statsDashboard *StatsDashboardView

	// Data channels
	decisionChan <-chan store.FlipDecision
	eventChan    <-chan store.ScanEvent
	tracker      *metrics.Tracker

	refreshRate time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates a new TUI application.
func NewApp(decisionChan <-chan store.FlipDecision, eventChan <-chan store.ScanEvent,
	tracker *metrics.Tracker, refreshRate time.Duration) *App {
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		app:          tview.NewApplication(),
		decisionChan: decisionChan,
		eventChan:    eventChan,
		tracker:      tracker,
		refreshRate:  refreshRate,
		ctx:          ctx,
		cancel:       cancel,
	}

	// Initialize views
	app.flipAlerts = NewFlipAlertsView()
	app.scanFeed = NewScanFeedView()
	app.statsDashboard = NewStatsDashboardView()

	// Setup layout
	app.setupLayout()

	// Setup keyboard shortcuts
	app.setupKeyboard()

	return app
}

// setupLayout creates the 3-panel layout.
func (a *App) setupLayout() {
	// Top row: Flip Alerts (left) | Stats Dashboard (right)
	topRow := tview.NewFlex().
		AddItem(a.flipAlerts.Widget(), 0, 2, false).
		AddItem(a.statsDashboard.Widget(), 0, 1, false)

	// Bottom row: Scan Feed (full width)
	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 3, false).
		AddItem(a.scanFeed.Widget(), 0, 2, false)

	a.app.SetRoot(a.layout, true)
}

// setupKeyboard configures keyboard shortcuts.
func (a *App) setupKeyboard() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			a.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q', 'Q':
				a.Stop()
				return nil
			case 'r', 'R':
				a.refresh()
				return nil
			}
		}
		return event
	})
}

// Run starts the TUI application (blocking).
func (a *App) Run() error {
	// Start data processing goroutines
	go a.processDecisions()
	go a.processEvents()
	go a.updateLoop()

	// Run the TUI (blocking)
	if err := a.app.Run(); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

// Stop gracefully stops the application.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

// processDecisions reads from the decision channel and updates the alerts view.
func (a *App) processDecisions() {
	for {
		select {
		case <-a.ctx.Done():
			return
		case decision, ok := <-a.decisionChan:
			if !ok {
				return
			}

			a.app.QueueUpdateDraw(func() {
				a.flipAlerts.AddFlip(decision)
			})
		}
	}
}

// processEvents reads from the scan event channel and updates the feed view.
func (a *App) processEvents() {
	for {
		select {
		case <-a.ctx.Done():
			return
		case event, ok := <-a.eventChan:
			if !ok {
				return
			}

			a.app.QueueUpdateDraw(func() {
				a.scanFeed.AddEvent(event)
			})
		}
	}
}

// updateLoop periodically refreshes the dashboard with tracker data.
func (a *App) updateLoop() {
	ticker := time.NewTicker(a.refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			snapshot := a.tracker.Snapshot()

			a.app.QueueUpdateDraw(func() {
				a.statsDashboard.Update(snapshot)
			})
		}
	}
}

// refresh manually refreshes all views.
func (a *App) refresh() {
	snapshot := a.tracker.Snapshot()

	a.app.QueueUpdateDraw(func() {
		a.flipAlerts.Refresh()
		a.scanFeed.Refresh()
		a.statsDashboard.Update(snapshot)
	})
}
