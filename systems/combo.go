package systems

import (
	"math"

	"github.com/pthm-cable/snakeclash/config"
)

// timerEpsilon absorbs float drift when many deltas sum to the window.
const timerEpsilon = 1e-9

// ComboTracker accumulates pickups and kills into a decaying multiplier.
// The multiplier is always derived from the count.
type ComboTracker struct {
	window    float64
	stepCount int
	stepBonus float64

	count int
	timer float64
}

// NewComboTracker creates a tracker from config.
func NewComboTracker(cfg *config.ComboConfig) *ComboTracker {
	return &ComboTracker{
		window:    cfg.Window,
		stepCount: cfg.StepCount,
		stepBonus: cfg.StepBonus,
	}
}

// Register adds amount to the count and restarts the decay window.
func (c *ComboTracker) Register(amount int) {
	if amount < 0 {
		amount = 0
	}
	c.count += amount
	c.timer = c.window
}

// Tick advances the decay timer. It returns true on the tick the combo resets.
func (c *ComboTracker) Tick(dt float64) bool {
	if c.timer <= 0 {
		return false
	}
	c.timer -= dt
	if c.timer > timerEpsilon {
		return false
	}
	c.timer = 0
	if c.count == 0 {
		return false
	}
	c.count = 0
	return true
}

// Multiplier returns 1 + floor(count/step)*bonus.
func (c *ComboTracker) Multiplier() float64 {
	return 1 + math.Floor(float64(c.count)/float64(c.stepCount))*c.stepBonus
}

// Count returns the accumulated count.
func (c *ComboTracker) Count() int { return c.count }

// Timer returns the seconds left before the combo resets.
func (c *ComboTracker) Timer() float64 { return c.timer }

// Reset clears count and timer.
func (c *ComboTracker) Reset() {
	c.count = 0
	c.timer = 0
}
