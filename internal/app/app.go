package app

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"snapbuy/internal/input"
	"snapbuy/internal/models"
	"snapbuy/internal/ocr"
	"snapbuy/internal/screen"
	"snapbuy/internal/storage"
	"snapbuy/internal/wm"
	"snapbuy/internal/worker"
	"snapbuy/pkg/config"
	"snapbuy/pkg/global"
	"snapbuy/pkg/logger"
	"snapbuy/pkg/notify"
)

// SnapBuy is the interactive half of the application: the control panel
// window, the socket command surface, and the lifecycle of the automation
// worker. The worker never blocks this layer; everything arrives through
// its event channel.
type SnapBuy struct {
	cfg      *config.Store
	log      *logger.Logger
	manager  *wm.Manager
	focus    *wm.Focus
	trades   *storage.TradeDB
	timeline *storage.Timeline

	window     fyne.Window
	debugPanel *DebugPanel
	debugMode  bool

	status       *widget.Label
	balanceLabel *widget.Label
	windowSelect *widget.Select
	startBtn     *widget.Button
	stopBtn      *widget.Button

	mu     sync.Mutex
	worker *worker.Worker
}

func NewSnapBuy(cfg *config.Store, log *logger.Logger, debug bool) (*SnapBuy, error) {
	log.Debug("Initializing application", "debug_mode", debug)

	manager, err := wm.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize window manager: %w", err)
	}

	trades, err := storage.NewTradeDB("")
	if err != nil {
		return nil, fmt.Errorf("failed to open trade database: %w", err)
	}

	return &SnapBuy{
		cfg:       cfg,
		log:       log,
		manager:   manager,
		focus:     wm.NewFocus(manager),
		trades:    trades,
		timeline:  storage.NewTimeline(),
		debugMode: debug,
	}, nil
}

// Run builds the control panel and blocks until the window closes.
func (s *SnapBuy) Run() error {
	s.log.Info("Starting control panel")

	a := fyneapp.New()
	s.window = a.NewWindow("Snapbuy")

	s.buildUI()

	s.window.SetCloseIntercept(func() {
		s.StopAutomation()
		s.window.Close()
	})

	s.window.ShowAndRun()
	return nil
}

func (s *SnapBuy) buildUI() {
	s.status = widget.NewLabel("Idle")
	s.balanceLabel = widget.NewLabel(fmt.Sprintf("Balance: %.2f", s.cfg.Guard().CurrentBalance))

	s.windowSelect = widget.NewSelect([]string{}, func(title string) {
		s.cfg.SetTargetWindow(title)
		if err := s.cfg.Save(); err != nil {
			s.log.Error("Failed to save settings", err)
		}
	})
	s.windowSelect.PlaceHolder = "Target window"
	refreshBtn := widget.NewButton("Refresh", func() {
		s.refreshWindowList()
	})
	s.refreshWindowList()
	if target := s.cfg.TargetWindow(); target != "" {
		s.windowSelect.SetSelected(target)
	}

	methodSelect := widget.NewSelect(
		[]string{string(models.MethodSimple), string(models.MethodBulk)},
		func(method string) {
			s.cfg.SetBuyMethod(models.BuyMethod(method))
			if err := s.cfg.Save(); err != nil {
				s.log.Error("Failed to save settings", err)
			}
		})
	methodSelect.SetSelected(string(s.cfg.BuyMethod()))

	s.startBtn = widget.NewButton("Start", func() {
		if err := s.StartAutomation(); err != nil {
			s.status.SetText("Start failed: " + err.Error())
			global.GetNotifier().Show(err.Error(), notify.Error)
		}
	})
	s.stopBtn = widget.NewButton("Stop", func() {
		s.StopAutomation()
	})
	s.stopBtn.Disable()

	if s.debugMode {
		s.debugPanel = NewDebugPanel(s.timeline, s.log)
	}

	buttons := container.NewHBox(s.startBtn, s.stopBtn)
	if s.debugMode {
		buttons.Add(widget.NewButton("Timeline", func() {
			s.debugPanel.Show()
		}))
	}

	content := container.NewVBox(
		s.status,
		s.balanceLabel,
		container.NewBorder(nil, nil, nil, refreshBtn, s.windowSelect),
		methodSelect,
		buttons,
	)

	s.window.SetContent(content)
	s.window.Resize(fyne.NewSize(360, 240))
}

func (s *SnapBuy) refreshWindowList() {
	titles, err := s.Windows()
	if err != nil {
		s.log.Error("Failed to list windows", err)
		return
	}
	s.windowSelect.Options = titles
	s.windowSelect.Refresh()
}

// StartAutomation validates the settings, wires up a fresh worker, and
// launches it. Fails if a session is already running or the active
// method's regions are incomplete.
func (s *SnapBuy) StartAutomation() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.worker != nil && s.worker.Session().Running() {
		return fmt.Errorf("automation already running")
	}

	if err := s.cfg.Validate(); err != nil {
		return err
	}

	reader := ocr.NewReader(screen.NewGrabber(), ocr.NewTesseractBackend(), s.log)
	clicker := input.NewClicker(s.log, s.cfg.Delays().Click)

	w := worker.New(s.cfg, reader, clicker, s.focus, input.NewFailsafe(),
		s.trades, s.timeline, s.log)
	s.worker = w

	go w.Run()
	go s.consumeEvents(w)

	s.status.SetText("Running")
	s.startBtn.Disable()
	s.stopBtn.Enable()
	return nil
}

// StopAutomation is idempotent; stopping an idle application is a no-op.
func (s *SnapBuy) StopAutomation() {
	s.mu.Lock()
	w := s.worker
	s.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

// Status reports the current state and balance for the socket interface.
func (s *SnapBuy) Status() (string, float64) {
	s.mu.Lock()
	w := s.worker
	s.mu.Unlock()
	if w == nil || !w.Session().Running() {
		return string(worker.StateIdle), s.cfg.Guard().CurrentBalance
	}
	return string(w.Session().State()), w.Session().Balance()
}

// Windows returns the titles of all visible windows.
func (s *SnapBuy) Windows() ([]string, error) {
	windows, err := s.manager.ListWindows()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(windows))
	for _, w := range windows {
		if w.Title != "" {
			titles = append(titles, w.Title)
		}
	}
	return titles, nil
}

func (s *SnapBuy) consumeEvents(w *worker.Worker) {
	for ev := range w.Events() {
		s.applyEvent(ev)
		if ev.Kind == worker.EventDone {
			return
		}
	}
}

func (s *SnapBuy) applyEvent(ev worker.Event) {
	switch ev.Kind {
	case worker.EventState:
		s.status.SetText(fmt.Sprintf("Running: %s", ev.State))
	case worker.EventStatus:
		s.status.SetText(ev.Message)
	case worker.EventBalance:
		s.balanceLabel.SetText(fmt.Sprintf("Balance: %.2f", ev.Balance))
	case worker.EventTrade:
		s.log.Info("Trade recorded",
			"price", ev.Trade.UnitPrice,
			"spent", ev.Trade.TotalPrice,
			"balance_after", ev.Trade.BalanceAfter)
		s.balanceLabel.SetText(fmt.Sprintf("Balance: %.2f", ev.Balance))
	case worker.EventFatal:
		global.GetNotifier().Show(ev.Message, notify.Error)
		s.status.SetText("Stopped: " + ev.Message)
	case worker.EventDone:
		s.status.SetText("Idle")
		s.startBtn.Enable()
		s.stopBtn.Disable()
	}
	if s.debugPanel != nil {
		s.debugPanel.Refresh()
	}
}

// Cleanup releases the worker and storage before shutdown.
func (s *SnapBuy) Cleanup() {
	s.log.Info("Cleaning up")
	s.StopAutomation()

	// give the worker a moment to unwind its poller
	time.Sleep(50 * time.Millisecond)

	if err := s.trades.Close(); err != nil {
		s.log.Error("Failed to close trade database", err)
	}
}
