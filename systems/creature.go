// Package systems provides the rule systems of the arena simulation.
package systems

import (
	"math"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/config"
)

// Steering is the per-tick input vector.
// Strength is in [0, 1]; below the deadzone no correction is applied.
type Steering struct {
	Angle    float32 // Target heading, same convention as components.Rotation
	Strength float32
}

// NoSteering leaves the heading untouched.
var NoSteering = Steering{}

// Creature groups the component pointers of one creature for a tick.
type Creature struct {
	Pos    *components.Position
	Rot    *components.Rotation
	Motion *components.Motion
	Body   *components.Body
	Trail  *components.Trail
}

// SegmentCount returns the body length for a level:
// min(maxSegments, floor(level/growthDivisor) + baseSegments).
func SegmentCount(level float64, cfg *config.CreatureConfig) int {
	level = ClampLevel(level)
	n := int(math.Floor(level/cfg.GrowthDivisor)) + cfg.BaseSegments
	if n > cfg.MaxSegments {
		n = cfg.MaxSegments
	}
	return n
}

// SteerToward rotates the heading toward target along the shortest arc.
// The per-tick factor rate*dt is capped at 1 so large deltas never overshoot.
func SteerToward(rot *components.Rotation, target, dt float32, cfg *config.CreatureConfig) {
	diff := normalizeAngle(target - rot.Heading)
	factor := clampFloat(float32(cfg.TurnRate)*dt, 0, 1)
	rot.Heading = normalizeAngle(rot.Heading + diff*factor)
}

// AdvanceCreature runs one movement tick: steer, integrate, record history,
// and resample the trailing body.
func AdvanceCreature(c Creature, dt float32, steer Steering, cfg *config.CreatureConfig) {
	if steer.Strength > float32(cfg.SteerDeadzone) {
		SteerToward(c.Rot, NormalizeAngle(steer.Angle), dt, cfg)
	}

	if c.Motion.Speed != 0 {
		dx, dy := HeadingVector(c.Rot.Heading)
		step := c.Motion.Speed * dt
		c.Pos.X += dx * step
		c.Pos.Y += dy * step
	}

	c.Trail.Push(*c.Pos)

	c.Body.Level = ClampLevel(c.Body.Level)
	c.Body.SegmentCount = SegmentCount(c.Body.Level, cfg)
	updateSegments(c.Trail, *c.Pos, c.Body.SegmentCount, cfg)
}

// updateSegments resizes the segment list and eases each segment toward its
// history sample. Segments without a sample hold their position.
func updateSegments(t *components.Trail, head components.Position, count int, cfg *config.CreatureConfig) {
	for len(t.Segments) < count {
		// New segments appear at the tail
		spawn := head
		if n := len(t.Segments); n > 0 {
			spawn = t.Segments[n-1]
		}
		t.Segments = append(t.Segments, spawn)
	}
	if len(t.Segments) > count {
		t.Segments = t.Segments[:count]
	}

	follow := float32(cfg.FollowFactor)
	for i := range t.Segments {
		sample, ok := t.At((i + 1) * cfg.HistoryStride)
		if !ok {
			continue
		}
		seg := &t.Segments[i]
		seg.X = lerp(seg.X, sample.X, follow)
		seg.Y = lerp(seg.Y, sample.Y, follow)
	}
}

// PlaceCreature resets a creature's trail at a spawn point.
func PlaceCreature(c Creature, x, y float32, cfg *config.CreatureConfig) {
	c.Pos.X, c.Pos.Y = x, y
	c.Trail.Reset()
	c.Trail.Push(*c.Pos)
	c.Body.Level = ClampLevel(c.Body.Level)
	c.Body.SegmentCount = SegmentCount(c.Body.Level, cfg)
	updateSegments(c.Trail, *c.Pos, c.Body.SegmentCount, cfg)
}
