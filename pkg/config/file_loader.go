package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"snapbuy/internal/models"
)

type roiJSON struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// delay fields are pointers so an explicit 0 survives loading; only an
// absent key falls back to the default
type delaysJSON struct {
	ItemWaitMs            *int `json:"item_wait_ms"`
	CloseToItemMs         *int `json:"close_to_item_ms"`
	OverlayDismissClickMs *int `json:"overlay_dismiss_click_ms"`
	PostOverlayWaitMs     *int `json:"post_overlay_wait_ms"`
	ClickDelayMs          *int `json:"click_delay_ms"`
}

type settingsJSON struct {
	TargetWindow    string  `json:"target_window"`
	BuyMethod       string  `json:"buy_method"`
	RandomizeClicks bool    `json:"randomize_clicks"`
	SkipBuyClick    bool    `json:"skip_buy_click"`
	MaxPrice        float64 `json:"max_price"`
	CurrentBalance  float64 `json:"current_balance"`
	BalanceFloor    float64 `json:"balance_floor"`
	BulkMaxPrice    float64 `json:"bulk_max_price"`
	BulkBuyAmount   int     `json:"bulk_buy_amount"`

	Delays delaysJSON                    `json:"delays"`
	ROIs   map[string]map[string]roiJSON `json:"rois"`

	// pre-method layouts stored regions flat at the top level
	LegacyROIs map[string]roiJSON `json:"regions,omitempty"`
}

// Load reads the settings file into the store. A missing file applies
// defaults and writes them out. An unparseable file is moved aside to
// settings.corrupt.json so the user's coordinates are never destroyed,
// then defaults apply.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Info("No settings file found, writing defaults", "path", s.path)
		s.applyDefaults()
		return s.Save()
	}
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var raw settingsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		sidecar := s.path + ".corrupt.json"
		s.log.Error("Settings file is corrupt, moving aside", err, "sidecar", sidecar)
		if mvErr := os.Rename(s.path, sidecar); mvErr != nil {
			s.log.Error("Failed to move corrupt settings aside", mvErr)
		}
		s.applyDefaults()
		return s.Save()
	}

	s.apply(raw)
	s.log.Debug("Settings loaded",
		"path", s.path,
		"method", string(s.BuyMethod()),
		"target_window", s.TargetWindow())
	return nil
}

func (s *Store) apply(raw settingsJSON) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.targetWindow = raw.TargetWindow
	s.buyMethod = models.MethodSimple
	if raw.BuyMethod == string(models.MethodBulk) {
		s.buyMethod = models.MethodBulk
	}
	s.randomizeClicks = raw.RandomizeClicks
	s.skipBuyClick = raw.SkipBuyClick
	s.maxPrice = raw.MaxPrice
	s.currentBalance = raw.CurrentBalance
	s.balanceFloor = raw.BalanceFloor
	s.bulkMaxPrice = raw.BulkMaxPrice
	s.bulkBuyAmount = raw.BulkBuyAmount
	if s.bulkBuyAmount < 1 {
		s.bulkBuyAmount = 1
	}

	s.delays = delaysFromJSON(raw.Delays)

	s.rois = map[models.BuyMethod]map[string]models.ROI{
		models.MethodSimple: {},
		models.MethodBulk:   {},
	}
	for methodName, group := range raw.ROIs {
		method := models.BuyMethod(methodName)
		if s.rois[method] == nil {
			continue
		}
		for name, r := range group {
			s.rois[method][name] = models.ROI{
				Name: name, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
			}
		}
	}
	// migrate flat pre-method layouts into the simple group
	for name, r := range raw.LegacyROIs {
		if _, exists := s.rois[models.MethodSimple][name]; !exists {
			s.rois[models.MethodSimple][name] = models.ROI{
				Name: name, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
			}
		}
	}
}

// Save writes the settings atomically: marshal to a temp file in the same
// directory, then rename over the real one.
func (s *Store) Save() error {
	raw := s.snapshotJSON()

	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "settings-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp settings file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

func (s *Store) snapshotJSON() settingsJSON {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw := settingsJSON{
		TargetWindow:    s.targetWindow,
		BuyMethod:       string(s.buyMethod),
		RandomizeClicks: s.randomizeClicks,
		SkipBuyClick:    s.skipBuyClick,
		MaxPrice:        s.maxPrice,
		CurrentBalance:  s.currentBalance,
		BalanceFloor:    s.balanceFloor,
		BulkMaxPrice:    s.bulkMaxPrice,
		BulkBuyAmount:   s.bulkBuyAmount,
		Delays:          delaysToJSON(s.delays),
		ROIs:            map[string]map[string]roiJSON{},
	}
	for method, group := range s.rois {
		out := map[string]roiJSON{}
		for name, r := range group {
			out[name] = roiJSON{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		}
		raw.ROIs[string(method)] = out
	}
	return raw
}

func delaysFromJSON(d delaysJSON) models.DelayConfig {
	def := models.DefaultDelays()
	return models.DelayConfig{
		ItemOpen:            msOrDefault(d.ItemWaitMs, def.ItemOpen),
		CloseToItem:         msOrDefault(d.CloseToItemMs, def.CloseToItem),
		OverlayDismissClick: msOrDefault(d.OverlayDismissClickMs, def.OverlayDismissClick),
		PostOverlayWait:     msOrDefault(d.PostOverlayWaitMs, def.PostOverlayWait),
		Click:               msOrDefault(d.ClickDelayMs, 0),
	}
}

func delaysToJSON(d models.DelayConfig) delaysJSON {
	return delaysJSON{
		ItemWaitMs:            msPtr(d.ItemOpen),
		CloseToItemMs:         msPtr(d.CloseToItem),
		OverlayDismissClickMs: msPtr(d.OverlayDismissClick),
		PostOverlayWaitMs:     msPtr(d.PostOverlayWait),
		ClickDelayMs:          msPtr(d.Click),
	}
}

// msOrDefault converts a millisecond count, using def only when the key
// was absent. Explicit zeros are kept; negatives clamp to zero.
func msOrDefault(ms *int, def time.Duration) time.Duration {
	if ms == nil {
		return def
	}
	if *ms < 0 {
		return 0
	}
	return time.Duration(*ms) * time.Millisecond
}

func msPtr(d time.Duration) *int {
	ms := int(d / time.Millisecond)
	return &ms
}
