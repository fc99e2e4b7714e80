package app

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"snapbuy/internal/storage"
	"snapbuy/pkg/logger"
)

// DebugPanel shows the automation timeline: every state transition,
// click, and read in emission order.
type DebugPanel struct {
	window   fyne.Window
	textArea *widget.TextGrid
	timeline *storage.Timeline
	logger   *logger.Logger

	mu        sync.Mutex
	isVisible bool
}

func NewDebugPanel(timeline *storage.Timeline, log *logger.Logger) *DebugPanel {
	dp := &DebugPanel{
		timeline: timeline,
		logger:   log,
	}

	dp.window = fyne.CurrentApp().NewWindow("Timeline")
	dp.textArea = widget.NewTextGrid()

	clearBtn := widget.NewButton("Clear", func() {
		dp.timeline.Clear()
		dp.Refresh()
	})

	content := container.NewBorder(
		container.NewHBox(clearBtn),
		nil,
		nil,
		nil,
		container.NewScroll(dp.textArea),
	)

	dp.window.SetContent(content)
	dp.window.Resize(fyne.NewSize(800, 600))

	dp.window.SetCloseIntercept(func() {
		dp.Hide()
	})

	return dp
}

// Refresh redraws the panel from the timeline. Cheap enough to call on
// every worker event; skipped while hidden.
func (dp *DebugPanel) Refresh() {
	dp.mu.Lock()
	visible := dp.isVisible
	dp.mu.Unlock()
	if !visible {
		return
	}

	entries := dp.timeline.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s  %-14s %s",
			e.Timestamp.Format("15:04:05.000"), e.State, e.Message))
	}
	dp.textArea.SetText(strings.Join(lines, "\n"))
	dp.window.Canvas().Refresh(dp.textArea)
}

func (dp *DebugPanel) Show() {
	dp.mu.Lock()
	dp.isVisible = true
	dp.mu.Unlock()
	dp.Refresh()
	dp.window.Show()
}

func (dp *DebugPanel) Hide() {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.isVisible = false
	dp.window.Hide()
}
