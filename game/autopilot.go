package game

import (
	"math"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/systems"
)

// Autopilot steers the player from a View. Used for headless runs and tuning.
type Autopilot struct {
	cfg config.AutopilotConfig
}

// NewAutopilot creates an autopilot with the given weights.
func NewAutopilot(cfg config.AutopilotConfig) *Autopilot {
	return &Autopilot{cfg: cfg}
}

// Steer sums attraction toward items and weaker creatures, repulsion from
// stronger ones, and a pull home near the boundary.
func (a *Autopilot) Steer(v View) systems.Steering {
	px, py := v.Player.X, v.Player.Y
	level := v.Player.Level
	scanSq := float32(a.cfg.ScanRadius * a.cfg.ScanRadius)
	threatSq := float32(a.cfg.ThreatRange * a.cfg.ThreatRange)

	var fx, fy float32
	add := func(dx, dy, weight float32) {
		d := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if d < 1e-3 {
			return
		}
		// Inverse distance falloff
		fx += dx / d * weight / (1 + d)
		fy += dy / d * weight / (1 + d)
	}

	for _, it := range v.Items {
		dx, dy := it.X-px, it.Y-py
		if dx*dx+dy*dy > scanSq {
			continue
		}
		w := float32(a.cfg.ItemWeight)
		if it.Kind == components.KindChest {
			w *= float32(a.cfg.ChestBias)
		}
		add(dx, dy, w)
	}

	creatures := v.Bots
	if v.Boss != nil {
		creatures = append(creatures[:len(creatures):len(creatures)], *v.Boss)
	}
	for _, c := range creatures {
		dx, dy := c.X-px, c.Y-py
		dSq := dx*dx + dy*dy
		if c.Level > level {
			if dSq <= threatSq {
				add(-dx, -dy, float32(a.cfg.ThreatWeight))
			}
			continue
		}
		if dSq <= scanSq {
			add(dx, dy, float32(a.cfg.PreyWeight))
		}
	}

	// Head home once past the guard fraction of the radius
	r := float32(math.Sqrt(float64(px*px + py*py)))
	guard := float32(v.ArenaRadius * a.cfg.BoundaryGuard)
	if r > guard && r > 0 {
		over := (r - guard) / max(float32(v.ArenaRadius)-guard, 1)
		fx += -px / r * (1 + over*4)
		fy += -py / r * (1 + over*4)
	}

	if fx == 0 && fy == 0 {
		return systems.NoSteering
	}
	return systems.Steering{Angle: systems.HeadingTo(fx, fy), Strength: 1}
}
