package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"snapbuy/internal/models"
	"snapbuy/pkg/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "settings.json"), logger.NewNop())
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	s := newTestStore(t)
	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("expected defaults written to disk: %v", err)
	}
	d := s.Delays()
	if d.ItemOpen != 400*time.Millisecond {
		t.Errorf("item open delay = %v, want 400ms", d.ItemOpen)
	}
	if d.OverlayDismissClick != time.Millisecond {
		t.Errorf("overlay dismiss delay = %v, want 1ms", d.OverlayDismissClick)
	}
	if s.BuyMethod() != models.MethodSimple {
		t.Errorf("default method = %v, want simple", s.BuyMethod())
	}
}

func TestSaveAndReload(t *testing.T) {
	s := newTestStore(t)
	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	s.SetTargetWindow("Market")
	s.SetGuard(models.GuardConfig{MaxPrice: 150, CurrentBalance: 1000, BalanceFloor: 200, BulkBuyAmount: 5})
	s.SetROI(models.MethodSimple, models.ROI{Name: "price", X: 10, Y: 20, Width: 80, Height: 24})
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded := New(s.Path(), logger.NewNop())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.TargetWindow() != "Market" {
		t.Errorf("target window = %q, want Market", reloaded.TargetWindow())
	}
	g := reloaded.Guard()
	if g.MaxPrice != 150 || g.BalanceFloor != 200 || g.BulkBuyAmount != 5 {
		t.Errorf("guard round trip mismatch: %+v", g)
	}
	roi, ok := reloaded.ROI("price")
	if !ok || roi.X != 10 || roi.Width != 80 {
		t.Errorf("roi round trip mismatch: %+v ok=%v", roi, ok)
	}
}

func TestCorruptFileMovedAside(t *testing.T) {
	s := newTestStore(t)
	os.MkdirAll(filepath.Dir(s.Path()), 0755)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := os.Stat(s.Path() + ".corrupt.json"); err != nil {
		t.Errorf("expected corrupt sidecar: %v", err)
	}
	// store carries on with defaults
	if s.BuyMethod() != models.MethodSimple {
		t.Errorf("method after corrupt load = %v", s.BuyMethod())
	}
}

func TestLegacyFlatRegionsMigrate(t *testing.T) {
	s := newTestStore(t)
	os.MkdirAll(filepath.Dir(s.Path()), 0755)
	legacy := `{
        "buy_method": "simple",
        "regions": {"item": {"x": 5, "y": 6, "width": 30, "height": 12}}
    }`
	if err := os.WriteFile(s.Path(), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	roi, ok := s.ROI("item")
	if !ok || roi.X != 5 || roi.Height != 12 {
		t.Errorf("legacy region not migrated: %+v ok=%v", roi, ok)
	}
}

func TestExplicitZeroDelaysSurviveLoad(t *testing.T) {
	s := newTestStore(t)
	os.MkdirAll(filepath.Dir(s.Path()), 0755)
	raw := `{
        "buy_method": "simple",
        "delays": {"overlay_dismiss_click_ms": 0, "post_overlay_wait_ms": 0, "item_wait_ms": 250}
    }`
	if err := os.WriteFile(s.Path(), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	d := s.Delays()
	if d.OverlayDismissClick != 0 {
		t.Errorf("overlay dismiss delay = %v, want 0 for explicit zero", d.OverlayDismissClick)
	}
	if d.PostOverlayWait != 0 {
		t.Errorf("post overlay wait = %v, want 0 for explicit zero", d.PostOverlayWait)
	}
	if d.ItemOpen != 250*time.Millisecond {
		t.Errorf("item open delay = %v, want 250ms", d.ItemOpen)
	}
	// absent keys still pick up defaults
	if d.CloseToItem != models.DefaultDelays().CloseToItem {
		t.Errorf("close-to-item delay = %v, want default %v", d.CloseToItem, models.DefaultDelays().CloseToItem)
	}
}

func TestValidateNamesMissingRegions(t *testing.T) {
	s := newTestStore(t)
	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	s.SetGuard(models.GuardConfig{MaxPrice: 100})
	s.SetROI(models.MethodSimple, models.ROI{Name: "item", X: 1, Y: 1, Width: 10, Height: 10})

	err := s.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, name := range []string{"price", "total", "max", "buy", "close", "balance"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error does not name missing region %q: %v", name, err)
		}
	}
	if strings.Contains(err.Error(), "item,") {
		t.Errorf("error names a present region: %v", err)
	}
}

func TestValidatePassesWhenComplete(t *testing.T) {
	s := newTestStore(t)
	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	s.SetGuard(models.GuardConfig{MaxPrice: 100})
	for _, name := range models.MethodSimple.ROINames() {
		s.SetROI(models.MethodSimple, models.ROI{Name: name, X: 1, Y: 1, Width: 10, Height: 10})
	}
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
