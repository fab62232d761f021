package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakeclash/game"
)

// pickRadius is how close, in arena units, a click must land to a creature.
const pickRadius = 4

// Inspector shows the creature last clicked with the right mouse button.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32

	selected ecs.Entity
	active   bool
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Select picks the creature nearest to the arena point (wx, wy), or clears
// the selection when nothing is close enough.
func (ins *Inspector) Select(v game.View, wx, wy float32) {
	sel, ok := v.Pick(wx, wy, pickRadius)
	ins.active = ok
	ins.selected = sel.Creature.Entity
}

// Deselect clears the selection.
func (ins *Inspector) Deselect() { ins.active = false }

// Draw renders the panel for the selected creature. A creature that left the
// view clears the selection. Returns the panel height.
func (ins *Inspector) Draw(v game.View) int32 {
	if !ins.active {
		return 0
	}
	sel, ok := v.Find(ins.selected)
	if !ok {
		ins.active = false
		return 0
	}

	r := ins.renderer
	padding := r.Theme.Padding
	panelHeight := padding*2 + r.Theme.LineHeight*7
	r.DrawPanel(ins.x, ins.y, ins.width, panelHeight)

	x := ins.x + padding
	y := ins.y + padding
	rl.DrawText("Inspector", x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += r.Theme.LineHeight + 4

	c := sel.Creature
	y = r.DrawLabelValue(x, y, "Role", sel.Role.String())
	y = r.DrawLabelValue(x, y, "Level", fmt.Sprintf("%.0f", math.Floor(c.Level)))
	y = r.DrawLabelValue(x, y, "Length", fmt.Sprintf("%d", c.SegmentCount()))
	y = r.DrawLabelValue(x, y, "Heading", fmt.Sprintf("%.0f°", float64(c.Heading)*180/math.Pi))

	if sel.Role != game.RolePlayer {
		dx, dy := float64(c.X-v.Player.X), float64(c.Y-v.Player.Y)
		y = r.DrawLabelValue(x, y, "Distance", fmt.Sprintf("%.1f", math.Hypot(dx, dy)))
		verdict := "threat"
		if c.Level <= v.Player.Level {
			verdict = "prey"
		}
		r.DrawLabelValue(x, y, "Versus you", verdict)
	}
	return panelHeight
}

// Highlight rings the selected creature's head.
func (ins *Inspector) Highlight(v game.View, toScreen func(x, y float32) (float32, float32), radius float32) {
	if !ins.active {
		return
	}
	sel, ok := v.Find(ins.selected)
	if !ok {
		return
	}
	sx, sy := toScreen(sel.Creature.X, sel.Creature.Y)
	rl.DrawCircleLines(int32(sx), int32(sy), radius, rl.White)
}
