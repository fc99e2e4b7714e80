package config

import (
	"os"
	"path/filepath"

	"snapbuy/internal/models"
)

// DefaultPath returns the settings location under the user config dir.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "snapbuy", "settings.json"), nil
}

func (s *Store) applyDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.targetWindow = ""
	s.buyMethod = models.MethodSimple
	s.randomizeClicks = true
	s.skipBuyClick = false
	s.maxPrice = 0
	s.currentBalance = 0
	s.balanceFloor = 0
	s.bulkMaxPrice = 0
	s.bulkBuyAmount = 1
	s.delays = models.DefaultDelays()
	s.rois = map[models.BuyMethod]map[string]models.ROI{
		models.MethodSimple: {},
		models.MethodBulk:   {},
	}
}
