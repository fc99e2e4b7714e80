package input

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-vgo/robotgo"

	"snapbuy/internal/models"
	"snapbuy/pkg/logger"
)

// Clicker issues synthetic left clicks inside configured screen regions.
type Clicker struct {
	log   *logger.Logger
	delay time.Duration
	rng   *rand.Rand
}

func NewClicker(log *logger.Logger, delay time.Duration) *Clicker {
	return &Clicker{
		log:   log,
		delay: delay,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Click moves the pointer to a point inside roi and presses the left button.
// With randomize set, the point is drawn uniformly from the region interior,
// inset 2px from each edge so near-miss OCR boxes still land on the control.
func (c *Clicker) Click(name string, roi models.ROI, randomize bool) error {
	if !roi.Valid() {
		return fmt.Errorf("invalid region %q: %s", name, roi)
	}

	x, y := c.pickPoint(roi, randomize)

	c.log.Debug("Clicking region",
		"region", name,
		"x", x,
		"y", y,
		"randomized", randomize)

	robotgo.Move(x, y)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	robotgo.Click("left")
	return nil
}

// Move parks the pointer at the region center without pressing a button,
// so a follow-up click lands with no travel time.
func (c *Clicker) Move(name string, roi models.ROI) {
	if !roi.Valid() {
		return
	}
	x, y := c.pickPoint(roi, false)
	c.log.Debug("Parking pointer", "region", name, "x", x, "y", y)
	robotgo.Move(x, y)
}

func (c *Clicker) pickPoint(roi models.ROI, randomize bool) (int, int) {
	cx := roi.X + roi.Width/2
	cy := roi.Y + roi.Height/2
	if !randomize || roi.Width <= 4 || roi.Height <= 4 {
		return cx, cy
	}
	x := roi.X + 2 + c.rng.Intn(roi.Width-4)
	y := roi.Y + 2 + c.rng.Intn(roi.Height-4)
	return x, y
}
