package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakeclash/camera"
	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/game"
)

const gridSpacing = 20 // Arena units between floor grid lines

// ArenaRenderer draws the arena floor, items and creatures through a camera.
type ArenaRenderer struct {
	renderer *Renderer
	cam      *camera.Camera
	overlays *OverlayRegistry
}

// NewArenaRenderer creates a renderer bound to a camera and overlay state.
func NewArenaRenderer(cam *camera.Camera, overlays *OverlayRegistry) *ArenaRenderer {
	return &ArenaRenderer{renderer: NewRenderer(), cam: cam, overlays: overlays}
}

// Draw renders one view.
func (a *ArenaRenderer) Draw(v game.View) {
	th := a.renderer.Theme
	rl.ClearBackground(rl.Black)

	a.drawFloor(v.ArenaRadius)

	if a.overlays.IsEnabled(OverlayMagnet) {
		sx, sy := a.cam.WorldToScreen(v.Player.X, v.Player.Y)
		rl.DrawCircle(int32(sx), int32(sy), a.cam.Scale(float32(v.MagnetRadius)), th.Magnet)
	}

	for _, it := range v.Items {
		if !a.cam.IsVisible(it.X, it.Y, 2) {
			continue
		}
		sx, sy := a.cam.WorldToScreen(it.X, it.Y)
		if it.Kind == components.KindChest {
			size := a.cam.Scale(2)
			rl.DrawRectangleV(rl.Vector2{X: sx - size/2, Y: sy - size/2}, rl.Vector2{X: size, Y: size}, th.Chest)
			continue
		}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, a.cam.Scale(0.5), th.Food)
	}

	for _, b := range v.Bots {
		color := th.Bot
		if b.Level <= v.Player.Level {
			color = th.BotWeak
		}
		a.drawCreature(b, color, color, 1)
	}
	if v.Boss != nil {
		a.drawCreature(*v.Boss, th.Boss, th.Boss, 2.5)
	}
	a.drawCreature(v.Player, th.Player, th.PlayerBody, 1)
}

// drawFloor fills the arena circle, draws the grid and the boundary ring.
func (a *ArenaRenderer) drawFloor(radius float64) {
	th := a.renderer.Theme
	cx, cy := a.cam.WorldToScreen(0, 0)
	r := a.cam.Scale(float32(radius))

	rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, r, th.Floor)

	if a.overlays.IsEnabled(OverlayGrid) {
		minX, minY, maxX, maxY := a.cam.VisibleWorldBounds()
		for x := float32(math.Floor(float64(minX)/gridSpacing)) * gridSpacing; x <= maxX; x += gridSpacing {
			x0, y0 := a.cam.WorldToScreen(x, minY)
			x1, y1 := a.cam.WorldToScreen(x, maxY)
			rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, th.GridLine)
		}
		for y := float32(math.Floor(float64(minY)/gridSpacing)) * gridSpacing; y <= maxY; y += gridSpacing {
			x0, y0 := a.cam.WorldToScreen(minX, y)
			x1, y1 := a.cam.WorldToScreen(maxX, y)
			rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, th.GridLine)
		}
	}

	rl.DrawRing(rl.Vector2{X: cx, Y: cy}, r, r+a.cam.Scale(1), 0, 360, 128, th.Boundary)
}

// drawCreature draws segments tail first, then the head and its facing marker.
func (a *ArenaRenderer) drawCreature(c game.CreatureView, head, body rl.Color, scale float32) {
	segR := a.cam.Scale(0.8 * scale)
	for i := len(c.Segments) - 1; i >= 0; i-- {
		s := c.Segments[i]
		if !a.cam.IsVisible(s.X, s.Y, scale) {
			continue
		}
		sx, sy := a.cam.WorldToScreen(s.X, s.Y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, segR, body)
	}

	if !a.cam.IsVisible(c.X, c.Y, 2*scale) {
		return
	}
	hx, hy := a.cam.WorldToScreen(c.X, c.Y)
	headR := a.cam.Scale(1.1 * scale)
	rl.DrawCircleV(rl.Vector2{X: hx, Y: hy}, headR, head)

	dx := float32(math.Sin(float64(c.Heading)))
	dy := float32(math.Cos(float64(c.Heading)))
	rl.DrawCircleV(rl.Vector2{X: hx + dx*headR*0.6, Y: hy + dy*headR*0.6}, headR*0.3, rl.White)

	if a.overlays.IsEnabled(OverlayLevels) {
		a.renderer.DrawCenteredText(fmt.Sprintf("%.0f", math.Floor(c.Level)), int32(hx), int32(hy-headR-14), 12, rl.White)
	}
}
