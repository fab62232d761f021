package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakeclash/game"
)

// Minimap draws a fixed-scale overview of the whole arena.
type Minimap struct {
	renderer *Renderer
	size     int32   // Panel side in pixels
	extent   float32 // Arena radius mapped to the panel edge
}

// NewMinimap creates a minimap covering extent arena units from the origin.
func NewMinimap(size int32, extent float64) *Minimap {
	return &Minimap{renderer: NewRenderer(), size: size, extent: float32(extent)}
}

// Draw renders the minimap in the top-right corner.
func (m *Minimap) Draw(v game.View, screenW int32) {
	th := m.renderer.Theme
	x := screenW - m.size - 10
	y := int32(10)
	m.renderer.DrawPanel(x, y, m.size, m.size)

	cx := float32(x + m.size/2)
	cy := float32(y + m.size/2)
	scale := float32(m.size/2-4) / m.extent
	at := func(wx, wy float32) rl.Vector2 {
		return rl.Vector2{X: cx + wx*scale, Y: cy + wy*scale}
	}

	rl.DrawCircleLines(int32(cx), int32(cy), float32(v.ArenaRadius)*scale, th.Boundary)

	for _, c := range v.Chests {
		rl.DrawCircleV(at(c.X, c.Y), 2, th.Chest)
	}
	for _, b := range v.Bots {
		color := th.Bot
		if b.Level <= v.Player.Level {
			color = th.BotWeak
		}
		rl.DrawCircleV(at(b.X, b.Y), 2, color)
	}
	if v.Boss != nil {
		rl.DrawCircleV(at(v.Boss.X, v.Boss.Y), 4, th.Boss)
	}
	rl.DrawCircleV(at(v.Player.X, v.Player.Y), 3, th.Player)
}
