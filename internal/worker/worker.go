package worker

import (
	"fmt"
	"sync"
	"time"

	"snapbuy/internal/guard"
	"snapbuy/internal/models"
	"snapbuy/pkg/logger"
)

const (
	// pollTick bounds abort latency inside any wait.
	pollTick = 10 * time.Millisecond

	focusPollInterval   = 100 * time.Millisecond
	balancePollInterval = time.Second

	priceAttempts   = 3
	balanceAttempts = 1
)

// Config supplies the settings snapshot the worker reads each cycle.
type Config interface {
	Guard() models.GuardConfig
	Delays() models.DelayConfig
	ROI(name string) (models.ROI, bool)
	TargetWindow() string
}

// Reader produces a numeric value from a screen region.
type Reader interface {
	Read(roi models.ROI, attempts int) models.PriceReading
}

// Clicker performs synthetic pointer actions inside a region.
type Clicker interface {
	Click(name string, roi models.ROI, randomize bool) error
	// Move parks the pointer at the region center without clicking.
	Move(name string, roi models.ROI)
}

// FocusMonitor reports whether the target window has input focus.
type FocusMonitor interface {
	IsFocused(target string) bool
}

// Failsafe reports whether the abort gesture is active.
type Failsafe interface {
	Triggered() bool
}

// TradeLog persists completed buys.
type TradeLog interface {
	Append(models.TradeLogEntry) error
}

// Timeline receives debug entries in strict emission order.
type Timeline interface {
	Append(models.DebugLogEntry)
}

// Worker runs one automation session. Create with New, launch Run on its
// own goroutine, signal Stop from anywhere.
type Worker struct {
	cfg      Config
	reader   Reader
	clicker  Clicker
	focus    FocusMonitor
	failsafe Failsafe
	trades   TradeLog
	timeline Timeline
	log      *logger.Logger

	session *Session
	events  chan Event

	stopOnce sync.Once
	stopped  chan struct{}
}

func New(cfg Config, reader Reader, clicker Clicker, focus FocusMonitor, failsafe Failsafe, trades TradeLog, timeline Timeline, log *logger.Logger) *Worker {
	return &Worker{
		cfg:      cfg,
		reader:   reader,
		clicker:  clicker,
		focus:    focus,
		failsafe: failsafe,
		trades:   trades,
		timeline: timeline,
		log:      log,
		session:  NewSession(cfg.TargetWindow(), cfg.Guard().CurrentBalance),
		events:   make(chan Event, 256),
		stopped:  make(chan struct{}),
	}
}

// Events returns the worker-to-UI event stream.
func (w *Worker) Events() <-chan Event {
	return w.events
}

// Session returns the run state for status queries.
func (w *Worker) Session() *Session {
	return w.session
}

// Stop requests an unconditional return to IDLE. Safe to call repeatedly
// and from any goroutine.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopped)
	})
}

func (w *Worker) stopRequested() bool {
	select {
	case <-w.stopped:
		return true
	default:
		return w.failsafe.Triggered()
	}
}

// Run drives the state machine until Stop, the failsafe, or a fatal error.
// It blocks, so callers launch it on a dedicated goroutine.
func (w *Worker) Run() {
	pollerDone := make(chan struct{})
	go w.pollBalance(pollerDone)

	w.log.Info("Automation started",
		"session", w.session.ID,
		"method", string(w.cfg.Guard().BuyMethod),
		"target", w.session.Target)

	switch w.cfg.Guard().BuyMethod {
	case models.MethodBulk:
		w.runBulk()
	default:
		w.runSimple()
	}

	w.Stop()
	<-pollerDone
	w.session.finish()
	w.record(StateIdle, "automation stopped")
	w.emit(Event{Kind: EventDone, State: StateIdle})
	w.log.Info("Automation finished", "session", w.session.ID)
}

func (w *Worker) runSimple() {
	if !w.waitForFocus() {
		return
	}

	state := StateClickItem
	var unitPrice, totalPrice float64

	for {
		if w.stopRequested() {
			return
		}

		switch state {
		case StateClickItem:
			w.transition(StateClickItem, "clicking item")
			if !w.gatedClick("item") {
				return
			}
			if !w.sleep(w.cfg.Delays().ItemOpen) {
				return
			}
			state = StateCheckPrice

		case StateCheckPrice:
			w.transition(StateCheckPrice, "reading unit price")
			reading := w.readPrice("price", priceAttempts)
			if !reading.Success {
				w.fatal("price unreadable after repeated attempts")
				return
			}
			unitPrice = reading.Value
			if d := w.evaluate(unitPrice); !d.Continue {
				w.record(StateCheckPrice, fmt.Sprintf("out of range: %s (price %.2f)", d.Reason, unitPrice))
				state = StateCloseAndWait
				continue
			}
			w.record(StateCheckPrice, fmt.Sprintf("price %.2f in range", unitPrice))
			state = StateMax

		case StateMax:
			w.transition(StateMax, "clicking max")
			if !w.gatedClick("max") {
				return
			}
			totalPrice = unitPrice
			if roi, ok := w.cfg.ROI("total"); ok {
				if total := w.reader.Read(roi, balanceAttempts); total.Success {
					totalPrice = total.Value
				}
			}
			state = StateBuy

		case StateBuy:
			w.transition(StateBuy, "executing buy")
			g := w.cfg.Guard()
			if !g.SkipBuyClick {
				if !w.gatedClick("buy") {
					return
				}
			}
			if !w.sleep(w.cfg.Delays().OverlayDismissClick) {
				return
			}
			if !w.sleep(w.cfg.Delays().PostOverlayWait) {
				return
			}
			balanceAfter := w.session.Deduct(totalPrice)
			w.logTrade(unitPrice, totalPrice, balanceAfter)
			state = StateRecheck

		case StateRecheck:
			w.transition(StateRecheck, "rechecking price after buy")
			reading := w.readPrice("price", priceAttempts)
			if !reading.Success {
				w.fatal("price unreadable after repeated attempts")
				return
			}
			unitPrice = reading.Value
			if d := w.evaluate(unitPrice); !d.Continue {
				w.record(StateRecheck, fmt.Sprintf("stopping chain: %s", d.Reason))
				state = StateCloseAndWait
				continue
			}
			w.record(StateRecheck, "guardrails still satisfied, chaining buy")
			state = StateMax

		case StateCloseAndWait:
			w.transition(StateCloseAndWait, "closing item view")
			if !w.gatedClick("close") {
				return
			}
			if !w.sleep(w.cfg.Delays().CloseToItem) {
				return
			}
			state = StateClickItem
		}
	}
}

// evaluate takes a fresh balance snapshot so post-buy rechecks never act
// on a stale value.
func (w *Worker) evaluate(price float64) guard.Decision {
	g := w.cfg.Guard()
	return guard.Evaluate(price, w.session.Balance(), g.MaxPrice, g.BalanceFloor)
}

func (w *Worker) readPrice(roiName string, attempts int) models.PriceReading {
	roi, ok := w.cfg.ROI(roiName)
	if !ok {
		return models.PriceReading{}
	}
	return w.reader.Read(roi, attempts)
}

// gatedClick performs a focus-checked click on a named region. Focus loss
// or a failed click pauses, waits for focus, and retries exactly once.
// Repeated failure is logged and tolerated; only Stop/failsafe aborts,
// reported by the false return.
func (w *Worker) gatedClick(roiName string) bool {
	roi, ok := w.cfg.ROI(roiName)
	if !ok {
		w.fatal(fmt.Sprintf("region %q is not configured", roiName))
		return false
	}
	randomize := w.cfg.Guard().RandomizeClicks

	if w.focus.IsFocused(w.session.Target) {
		err := w.clicker.Click(roiName, roi, randomize)
		if err == nil {
			return true
		}
		w.record(w.session.State(), fmt.Sprintf("click on %q failed, retrying: %v", roiName, err))
	} else {
		w.record(w.session.State(), fmt.Sprintf("focus lost before clicking %q, waiting", roiName))
	}

	if !w.waitForFocus() {
		return false
	}
	if err := w.clicker.Click(roiName, roi, randomize); err != nil {
		w.record(w.session.State(), fmt.Sprintf("click on %q failed after retry: %v", roiName, err))
		w.emit(Event{Kind: EventStatus, State: w.session.State(),
			Message: fmt.Sprintf("click on %q keeps failing", roiName)})
	}
	return true
}

// waitForFocus blocks until the target window regains focus. Returns
// false if Stop or the failsafe fires first.
func (w *Worker) waitForFocus() bool {
	for !w.focus.IsFocused(w.session.Target) {
		if !w.sleep(focusPollInterval) {
			return false
		}
	}
	return !w.stopRequested()
}

// sleep waits d while polling for Stop and the failsafe, so abort latency
// never exceeds pollTick. Returns false when aborted.
func (w *Worker) sleep(d time.Duration) bool {
	deadline := time.Now().Add(d)
	for {
		if w.stopRequested() {
			return false
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		if remaining > pollTick {
			remaining = pollTick
		}
		time.Sleep(remaining)
	}
}

// pollBalance refreshes the session balance on a fixed cadence,
// independent of the state machine's position.
func (w *Worker) pollBalance(done chan<- struct{}) {
	defer close(done)

	roi, ok := w.cfg.ROI("balance")
	if !ok {
		<-w.stopped
		return
	}

	for {
		select {
		case <-w.stopped:
			return
		default:
		}
		if reading := w.reader.Read(roi, balanceAttempts); reading.Success {
			w.session.SetBalance(reading.Value)
			w.emit(Event{Kind: EventBalance, State: w.session.State(), Balance: reading.Value})
		}
		select {
		case <-w.stopped:
			return
		case <-time.After(balancePollInterval):
		}
	}
}

func (w *Worker) logTrade(unitPrice, totalPrice, balanceAfter float64) {
	entry := models.TradeLogEntry{
		Timestamp:    time.Now(),
		UnitPrice:    unitPrice,
		TotalPrice:   totalPrice,
		BalanceAfter: balanceAfter,
	}
	if err := w.trades.Append(entry); err != nil {
		w.log.Error("Failed to persist trade", err)
	}
	w.record(StateBuy, fmt.Sprintf("bought at %.2f (spent %.2f, balance %.2f)",
		unitPrice, totalPrice, balanceAfter))
	w.emit(Event{Kind: EventTrade, State: w.session.State(), Trade: entry, Balance: balanceAfter})
}

// transition records the upcoming state before its action runs, so the
// timeline reflects intent even when the action fails.
func (w *Worker) transition(next State, msg string) {
	w.session.setState(next)
	w.record(next, msg)
	w.emit(Event{Kind: EventState, State: next, Message: msg})
}

func (w *Worker) record(state State, msg string) {
	w.timeline.Append(models.DebugLogEntry{
		Timestamp: time.Now(),
		State:     string(state),
		Message:   msg,
	})
	w.log.Debug("Worker", "state", string(state), "msg", msg)
}

func (w *Worker) fatal(msg string) {
	w.record(w.session.State(), "fatal: "+msg)
	w.emit(Event{Kind: EventFatal, State: StateIdle, Message: msg})
	w.log.Error("Automation stopped", fmt.Errorf("%s", msg), "session", w.session.ID)
}

func (w *Worker) emit(ev Event) {
	select {
	case w.events <- ev:
	default:
	}
}
