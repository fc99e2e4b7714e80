package storage

import (
	"path/filepath"
	"testing"
	"time"

	"snapbuy/internal/models"
)

func openTestDB(t *testing.T) *TradeDB {
	t.Helper()
	db, err := NewTradeDB(filepath.Join(t.TempDir(), "trades.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAppendAndRecent(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	entries := []models.TradeLogEntry{
		{Timestamp: base, UnitPrice: 120, TotalPrice: 120, BalanceAfter: 880},
		{Timestamp: base.Add(time.Minute), UnitPrice: 110, TotalPrice: 220, BalanceAfter: 660},
		{Timestamp: base.Add(2 * time.Minute), UnitPrice: 95, TotalPrice: 95, BalanceAfter: 565},
	}
	for _, e := range entries {
		if err := db.Append(e); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	got, err := db.Recent(2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(got))
	}
	if got[0].UnitPrice != 95 || got[1].UnitPrice != 110 {
		t.Errorf("wrong order: got %v then %v", got[0].UnitPrice, got[1].UnitPrice)
	}
	if got[0].BalanceAfter != 565 {
		t.Errorf("balance_after = %v, want 565", got[0].BalanceAfter)
	}
}

func TestTotalSpent(t *testing.T) {
	db := openTestDB(t)

	total, err := db.TotalSpent()
	if err != nil {
		t.Fatalf("total failed: %v", err)
	}
	if total != 0 {
		t.Errorf("empty db total = %v, want 0", total)
	}

	db.Append(models.TradeLogEntry{Timestamp: time.Now(), UnitPrice: 50, TotalPrice: 100, BalanceAfter: 900})
	db.Append(models.TradeLogEntry{Timestamp: time.Now(), UnitPrice: 80, TotalPrice: 80, BalanceAfter: 820})

	total, err = db.TotalSpent()
	if err != nil {
		t.Fatalf("total failed: %v", err)
	}
	if total != 180 {
		t.Errorf("total = %v, want 180", total)
	}
}

func TestTimelineCap(t *testing.T) {
	tl := NewTimeline()
	for i := 0; i < timelineCap+50; i++ {
		tl.Append(models.DebugLogEntry{Message: "tick"})
	}
	if got := len(tl.Entries()); got != timelineCap {
		t.Errorf("timeline holds %d entries, want %d", got, timelineCap)
	}
}
