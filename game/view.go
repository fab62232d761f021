package game

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakeclash/components"
)

// CreatureView is the render-facing state of one creature.
type CreatureView struct {
	Entity   ecs.Entity // Includes the generation, so recycled IDs never match
	ID       uint32
	X, Y     float32
	Heading  float32
	Level    float64
	Segments []components.Position
}

// SegmentCount returns the body length.
func (c CreatureView) SegmentCount() int { return len(c.Segments) }

// ItemView is the render-facing state of one item.
type ItemView struct {
	X, Y float32
	Kind components.ItemKind
}

// View is a snapshot of everything a front-end draws.
type View struct {
	Player     CreatureView
	Bots       []CreatureView
	Boss       *CreatureView // nil when no boss is active
	BossHealth float64       // Fraction in [0, 1]
	Items      []ItemView
	Chests     []ItemView // Subset of Items for the minimap

	ComboCount      int
	ComboMultiplier float64
	ComboTimer      float64

	Elapsed       float64
	Remaining     float64
	RemainingText string // m:ss
	ArenaRadius   float64
	SessionCoins  float64
	MagnetRadius  float64
	Outcome       Outcome
}

// View returns a snapshot of the session. Slices are freshly allocated.
func (s *Session) View() View {
	v := View{
		ComboCount:      s.combo.Count(),
		ComboMultiplier: s.combo.Multiplier(),
		ComboTimer:      s.combo.Timer(),
		Elapsed:         s.elapsed,
		Remaining:       s.Remaining(),
		RemainingText:   s.FormatRemaining(),
		ArenaRadius:     s.arena.Radius(),
		SessionCoins:    s.sessionCoins,
		MagnetRadius:    s.stats.MagnetRadius,
		Outcome:         s.outcome,
	}
	if s.state != statePlaying && s.state != stateEnded {
		return v
	}

	v.Player = s.creatureView(s.player)

	query := s.botFilter.Query()
	for query.Next() {
		v.Bots = append(v.Bots, s.creatureView(query.Entity()))
	}

	if s.hasBoss {
		boss := s.creatureView(s.boss)
		v.Boss = &boss
		v.BossHealth = s.bossEnc.HealthFraction()
	}

	items := s.itemFilter.Query()
	for items.Next() {
		pos, item := items.Get()
		iv := ItemView{X: pos.X, Y: pos.Y, Kind: item.Kind}
		v.Items = append(v.Items, iv)
		if item.Kind == components.KindChest {
			v.Chests = append(v.Chests, iv)
		}
	}
	return v
}

// creatureView copies one creature's render state.
func (s *Session) creatureView(e ecs.Entity) CreatureView {
	pos := s.posMap.Get(e)
	trail := s.trailMap.Get(e)
	segments := make([]components.Position, len(trail.Segments))
	copy(segments, trail.Segments)
	return CreatureView{
		Entity:   e,
		ID:       e.ID(),
		X:        pos.X,
		Y:        pos.Y,
		Heading:  s.rotMap.Get(e).Heading,
		Level:    s.bodyMap.Get(e).Level,
		Segments: segments,
	}
}

// FormatRemaining renders the time left as m:ss.
func (s *Session) FormatRemaining() string {
	return FormatClock(s.Remaining())
}

// FormatClock renders seconds as m:ss, truncating fractions.
func FormatClock(seconds float64) string {
	if !(seconds > 0) {
		return "0:00"
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
