package models

import (
	"fmt"
	"time"
)

// BuyMethod selects which ROI group and state machine variant drive a run.
type BuyMethod string

const (
	MethodSimple BuyMethod = "simple"
	MethodBulk   BuyMethod = "bulk"
)

// ROINames returns the regions a method needs before automation may start.
func (m BuyMethod) ROINames() []string {
	if m == MethodBulk {
		return []string{"confirm", "cancel", "buy", "balance", "price"}
	}
	return []string{"item", "price", "total", "max", "buy", "close", "balance"}
}

// ROI is a named rectangular screen region. Persistence lives in the
// config package, which maps regions to its own file schema.
type ROI struct {
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Valid reports whether the region has a usable area.
func (r ROI) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

func (r ROI) String() string {
	return fmt.Sprintf("%s(%d,%d %dx%d)", r.Name, r.X, r.Y, r.Width, r.Height)
}

// GuardConfig is an immutable snapshot of the user's trading limits.
// CurrentBalance is refreshed continuously by the balance poller, so the
// worker takes a fresh snapshot before every guardrail decision.
type GuardConfig struct {
	MaxPrice        float64
	CurrentBalance  float64
	BalanceFloor    float64
	BuyMethod       BuyMethod
	BulkMaxPrice    float64
	BulkBuyAmount   int
	RandomizeClicks bool
	SkipBuyClick    bool
}

// DelayConfig holds the named waits of the automation loop.
type DelayConfig struct {
	ItemOpen            time.Duration
	CloseToItem         time.Duration
	OverlayDismissClick time.Duration
	PostOverlayWait     time.Duration
	Click               time.Duration
}

// DefaultDelays returns the stock loop timings. The overlay dismiss wait
// is near-zero so a price tooltip never blocks the next read.
func DefaultDelays() DelayConfig {
	return DelayConfig{
		ItemOpen:            400 * time.Millisecond,
		CloseToItem:         350 * time.Millisecond,
		OverlayDismissClick: 1 * time.Millisecond,
		PostOverlayWait:     150 * time.Millisecond,
		Click:               0,
	}
}

// PriceReading is the outcome of one OCR read cycle. Value is meaningless
// when Success is false.
type PriceReading struct {
	Value   float64
	Success bool
}

// TradeLogEntry records one completed buy. Append-only.
type TradeLogEntry struct {
	Timestamp    time.Time
	UnitPrice    float64
	TotalPrice   float64
	BalanceAfter float64
}

// DebugLogEntry records one state transition, click, or read.
type DebugLogEntry struct {
	Timestamp time.Time
	State     string
	Message   string
}
