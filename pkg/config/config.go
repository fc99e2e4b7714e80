package config

import (
	"sync"

	"snapbuy/internal/models"
	"snapbuy/pkg/logger"
)

// Store holds the application settings. All reads go through snapshot
// accessors so a running session never observes a half-applied edit.
type Store struct {
	mu   sync.RWMutex
	path string
	log  *logger.Logger

	targetWindow    string
	buyMethod       models.BuyMethod
	randomizeClicks bool
	skipBuyClick    bool

	maxPrice       float64
	currentBalance float64
	balanceFloor   float64
	bulkMaxPrice   float64
	bulkBuyAmount  int

	delays models.DelayConfig

	// per-method ROI groups, keyed by ROI name
	rois map[models.BuyMethod]map[string]models.ROI
}

// New creates an empty Store bound to a settings path.
func New(path string, log *logger.Logger) *Store {
	return &Store{
		path: path,
		log:  log,
		rois: map[models.BuyMethod]map[string]models.ROI{
			models.MethodSimple: {},
			models.MethodBulk:   {},
		},
	}
}

// Guard returns a snapshot of the guardrail settings.
func (s *Store) Guard() models.GuardConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.GuardConfig{
		MaxPrice:        s.maxPrice,
		CurrentBalance:  s.currentBalance,
		BalanceFloor:    s.balanceFloor,
		BuyMethod:       s.buyMethod,
		BulkMaxPrice:    s.bulkMaxPrice,
		BulkBuyAmount:   s.bulkBuyAmount,
		RandomizeClicks: s.randomizeClicks,
		SkipBuyClick:    s.skipBuyClick,
	}
}

// Delays returns a snapshot of the timing settings.
func (s *Store) Delays() models.DelayConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delays
}

// ROI looks up a named region for the active buy method.
func (s *Store) ROI(name string) (models.ROI, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roi, ok := s.rois[s.buyMethod][name]
	return roi, ok
}

// TargetWindow returns the focus-gate window title substring.
func (s *Store) TargetWindow() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.targetWindow
}

// BuyMethod returns the active buy method.
func (s *Store) BuyMethod() models.BuyMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buyMethod
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// SetTargetWindow updates the focus-gate target.
func (s *Store) SetTargetWindow(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetWindow = title
}

// SetBuyMethod switches the active buy method.
func (s *Store) SetBuyMethod(method models.BuyMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buyMethod = method
}

// SetGuard replaces the guardrail settings.
func (s *Store) SetGuard(g models.GuardConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxPrice = g.MaxPrice
	s.currentBalance = g.CurrentBalance
	s.balanceFloor = g.BalanceFloor
	s.bulkMaxPrice = g.BulkMaxPrice
	s.bulkBuyAmount = g.BulkBuyAmount
	s.randomizeClicks = g.RandomizeClicks
	s.skipBuyClick = g.SkipBuyClick
}

// SetDelays replaces the timing settings.
func (s *Store) SetDelays(d models.DelayConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = d
}

// SetROI stores a named region for a buy method.
func (s *Store) SetROI(method models.BuyMethod, roi models.ROI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rois[method] == nil {
		s.rois[method] = map[string]models.ROI{}
	}
	s.rois[method][roi.Name] = roi
}
