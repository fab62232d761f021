package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/snakeclash/config"
)

func newTestCombo() *ComboTracker {
	return NewComboTracker(&config.MustDefaults().Combo)
}

func TestComboMultiplierFormula(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 1.0},
		{4, 1.0},
		{5, 1.2},
		{9, 1.2},
		{10, 1.4},
		{27, 2.0},
	}

	for _, tt := range tests {
		c := newTestCombo()
		c.Register(tt.count)
		if got := c.Multiplier(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("count %d: Multiplier = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestComboMultiplierNeverDecreasesWhileActive(t *testing.T) {
	c := newTestCombo()
	prev := c.Multiplier()
	for i := 0; i < 40; i++ {
		c.Register(1)
		c.Tick(0.5)
		m := c.Multiplier()
		if m < prev {
			t.Fatalf("step %d: multiplier dropped %v -> %v", i, prev, m)
		}
		prev = m
	}
}

func TestComboDecay(t *testing.T) {
	c := newTestCombo()
	c.Register(1)
	c.Register(1)

	if c.Count() != 2 {
		t.Fatalf("Count = %d, want 2", c.Count())
	}

	// 20 ticks of 0.1s sum to the 2.0s window
	resets := 0
	for i := 0; i < 20; i++ {
		if c.Tick(0.1) {
			resets++
		}
	}

	if resets != 1 {
		t.Errorf("resets = %d, want 1", resets)
	}
	if c.Count() != 0 || c.Multiplier() != 1.0 {
		t.Errorf("after decay: count=%d mult=%v, want 0, 1.0", c.Count(), c.Multiplier())
	}

	// Further ticks are no-ops
	for i := 0; i < 10; i++ {
		if c.Tick(0.1) {
			t.Fatal("reset fired twice")
		}
	}
}

func TestComboRegisterRestartsWindow(t *testing.T) {
	c := newTestCombo()
	c.Register(1)
	c.Tick(1.5)
	c.Register(1)
	c.Tick(1.5)

	if c.Count() != 2 {
		t.Errorf("Count = %d, want 2 (window restarted)", c.Count())
	}
	if math.Abs(c.Timer()-0.5) > 1e-9 {
		t.Errorf("Timer = %v, want 0.5", c.Timer())
	}
}

func TestComboReset(t *testing.T) {
	c := newTestCombo()
	c.Register(7)
	c.Reset()
	if c.Count() != 0 || c.Timer() != 0 {
		t.Errorf("Reset left count=%d timer=%v", c.Count(), c.Timer())
	}
	if c.Tick(5) {
		t.Error("Tick after Reset reported a decay")
	}
}
