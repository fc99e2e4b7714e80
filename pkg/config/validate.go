package config

import (
	"fmt"
	"strings"

	"snapbuy/internal/models"
)

// Validate checks that every region the active method needs is present
// and has a usable area. The error names each missing region so the user
// can fix the settings file without guessing.
func (s *Store) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group := s.rois[s.buyMethod]
	var missing []string
	for _, name := range s.buyMethod.ROINames() {
		roi, ok := group[name]
		if !ok || !roi.Valid() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("method %q is missing regions: %s",
			s.buyMethod, strings.Join(missing, ", "))
	}

	if s.maxPrice <= 0 && s.buyMethod == models.MethodSimple {
		return fmt.Errorf("max_price must be set before starting")
	}
	if s.bulkMaxPrice <= 0 && s.buyMethod == models.MethodBulk {
		return fmt.Errorf("bulk_max_price must be set before starting")
	}
	return nil
}
