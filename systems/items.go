package systems

import (
	"math/rand"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/config"
)

// ItemTemplate returns the base reward for a kind.
func ItemTemplate(kind components.ItemKind, cfg *config.ItemsConfig) components.Item {
	switch kind {
	case components.KindChest:
		return components.Item{Kind: kind, LevelGain: cfg.ChestLevel, CoinGain: cfg.ChestCoins}
	default:
		return components.Item{Kind: components.KindFood, LevelGain: cfg.FoodLevel, CoinGain: cfg.FoodCoins}
	}
}

// SquarePoint returns a uniform point in the square of the given side centred
// on the origin. Item spawns use the fixed field square, not the arena circle.
func SquarePoint(rng *rand.Rand, side float64) components.Position {
	return components.Position{
		X: float32((rng.Float64() - 0.5) * side),
		Y: float32((rng.Float64() - 0.5) * side),
	}
}

// ScatterPoint returns a uniform point in a square of the given side around c.
func ScatterPoint(rng *rand.Rand, c components.Position, side float64) components.Position {
	p := SquarePoint(rng, side)
	p.X += c.X
	p.Y += c.Y
	return p
}

// MagnetPull moves an item toward the head when dist < radius.
// The step factor is dt*(1 - dist/radius)*pull, capped at 1.
func MagnetPull(item *components.Position, head components.Position, dist, radius float32, pull float64, dt float32) {
	if radius <= 0 || dist >= radius {
		return
	}
	speed := (1 - dist/radius) * float32(pull)
	t := clampFloat(dt*speed, 0, 1)
	item.X = lerp(item.X, head.X, t)
	item.Y = lerp(item.Y, head.Y, t)
}
