package input

import (
	"testing"
	"time"

	"snapbuy/internal/models"
	"snapbuy/pkg/logger"
)

func TestPickPointCenter(t *testing.T) {
	c := NewClicker(logger.NewNop(), 0)
	roi := models.ROI{Name: "buy", X: 100, Y: 200, Width: 40, Height: 20}

	x, y := c.pickPoint(roi, false)
	if x != 120 || y != 210 {
		t.Errorf("expected center (120, 210), got (%d, %d)", x, y)
	}
}

func TestPickPointRandomizedStaysInside(t *testing.T) {
	c := NewClicker(logger.NewNop(), 0)
	roi := models.ROI{Name: "item", X: 50, Y: 60, Width: 30, Height: 10}

	for i := 0; i < 1000; i++ {
		x, y := c.pickPoint(roi, true)
		if x < roi.X+2 || x >= roi.X+roi.Width-2 {
			t.Fatalf("x=%d outside inset bounds [%d, %d)", x, roi.X+2, roi.X+roi.Width-2)
		}
		if y < roi.Y+2 || y >= roi.Y+roi.Height-2 {
			t.Fatalf("y=%d outside inset bounds [%d, %d)", y, roi.Y+2, roi.Y+roi.Height-2)
		}
	}
}

func TestPickPointTinyRegionFallsBackToCenter(t *testing.T) {
	c := NewClicker(logger.NewNop(), 0)
	roi := models.ROI{Name: "close", X: 10, Y: 10, Width: 4, Height: 3}

	x, y := c.pickPoint(roi, true)
	if x != 12 || y != 11 {
		t.Errorf("expected center (12, 11), got (%d, %d)", x, y)
	}
}

func TestClickRejectsInvalidRegion(t *testing.T) {
	c := NewClicker(logger.NewNop(), time.Millisecond)
	if err := c.Click("price", models.ROI{Name: "price"}, false); err == nil {
		t.Error("expected error for zero-size region")
	}
}
