// Package components defines ECS components for the arena simulation.
package components

// Position represents an entity's planar arena position.
// The arena is centred on the origin.
type Position struct {
	X, Y float32
}

// Rotation represents a creature's heading.
// A heading of 0 points along +Y; positive angles turn toward +X.
type Rotation struct {
	Heading float32 // radians
}

// Motion holds a creature's linear speed in units per second.
// Zero is valid for a stationary creature.
type Motion struct {
	Speed float32
}

// Body holds a creature's growth state.
type Body struct {
	Level        float64 // Growth currency, clamped at zero
	SegmentCount int     // Derived from Level every tick
}

// Player tags the player-controlled creature.
type Player struct{}

// Bot tags an AI-controlled opponent.
type Bot struct{}

// Boss tags the boss creature. Encounter state lives in systems.BossEncounter.
type Boss struct{}

// ItemKind identifies a collectible.
type ItemKind uint8

const (
	KindFood ItemKind = iota
	KindChest
)

func (k ItemKind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindChest:
		return "chest"
	default:
		return "unknown"
	}
}

// Item is a collectible in the item field.
type Item struct {
	Kind      ItemKind
	LevelGain float64 // Base reward before the combo multiplier
	CoinGain  float64
}
