package systems

import "github.com/pthm-cable/snakeclash/config"

// Arena is the shrinking circular boundary centred on the origin.
type Arena struct {
	start  float64
	min    float64
	rate   float64
	radius float64
}

// NewArena creates an arena at its starting radius.
func NewArena(cfg *config.ArenaConfig) *Arena {
	return &Arena{
		start:  cfg.StartRadius,
		min:    cfg.MinRadius,
		rate:   cfg.ShrinkRate,
		radius: cfg.StartRadius,
	}
}

// Tick shrinks the radius by rate*dt, floored at the minimum.
func (a *Arena) Tick(dt float64) {
	if dt <= 0 || a.radius <= a.min {
		return
	}
	a.radius -= a.rate * dt
	if a.radius < a.min {
		a.radius = a.min
	}
}

// Violates reports whether (x, y) lies strictly outside the boundary.
func (a *Arena) Violates(x, y float32) bool {
	return float64(x)*float64(x)+float64(y)*float64(y) > a.radius*a.radius
}

// Radius returns the current radius.
func (a *Arena) Radius() float64 { return a.radius }

// Reset restores the starting radius.
func (a *Arena) Reset() { a.radius = a.start }
