package worker

import "snapbuy/internal/models"

// EventKind classifies worker events delivered to the interactive layer.
type EventKind int

const (
	// EventState reports a state machine transition.
	EventState EventKind = iota
	// EventStatus carries a human-readable status line.
	EventStatus
	// EventBalance reports a freshly polled balance value.
	EventBalance
	// EventTrade reports one completed buy.
	EventTrade
	// EventFatal reports the error that stopped automation.
	EventFatal
	// EventDone signals that the worker has exited.
	EventDone
)

// Event is the one-directional message from the worker to the UI. The
// worker never blocks on delivery; a slow consumer drops events rather
// than stalling the automation loop.
type Event struct {
	Kind    EventKind
	State   State
	Message string
	Balance float64
	Trade   models.TradeLogEntry
}
