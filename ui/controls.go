package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// binding is one fixed play control shown in the help panel.
type binding struct {
	key    string
	action string
}

var playBindings = []binding{
	{"Drag", "Steer toward pointer"},
	{"Arrows", "Steer"},
	{"Right click", "Inspect creature"},
	{"Wheel", "Zoom"},
	{"F11", "Fullscreen"},
	{"Esc", "Abandon run"},
}

// ControlsPanel is the H help panel: fixed play controls followed by the
// overlay toggles grouped by category.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) {
	if !c.visible {
		return
	}

	r := c.renderer
	padding := r.Theme.Padding
	line := r.Theme.LineHeight
	inner := c.width - padding*2

	categories := overlays.Categories()
	rows := len(playBindings) + 2 // section titles
	for _, cat := range categories {
		rows += len(overlays.ByCategory(cat)) + 1
	}
	r.DrawPanel(c.x, c.y, c.width, int32(rows)*line+padding*2+8)

	x := c.x + padding
	y := c.y + padding

	rl.DrawText("Controls", x, y, r.Theme.HeaderFontSize, rl.White)
	y += line
	for _, b := range playBindings {
		rl.DrawText(b.action, x, y, r.Theme.FontSize, r.Theme.LabelColor)
		c.drawKey(x+inner, y, b.key)
		y += line
	}

	y += 8
	rl.DrawText("Overlays", x, y, r.Theme.HeaderFontSize, rl.White)
	y += line
	for _, cat := range categories {
		rl.DrawText(categoryLabel(cat), x, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += line
		for _, desc := range overlays.ByCategory(cat) {
			c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID))
			c.drawKey(x+inner, y, desc.KeyLabel)
			y += line
		}
	}
}

// drawToggle draws an on/off marker and the overlay name.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool) {
	r := c.renderer
	marker, name := rl.Color{R: 80, G: 80, B: 80, A: 255}, r.Theme.LabelColor
	if enabled {
		marker, name = rl.Color{R: 100, G: 200, B: 100, A: 255}, rl.White
	}
	rl.DrawRectangle(x, y+4, 8, 8, marker)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, name)
}

// drawKey right-aligns a bracketed key label ending at right.
func (c *ControlsPanel) drawKey(right, y int32, key string) {
	if key == "" {
		return
	}
	text := fmt.Sprintf("[%s]", key)
	w := rl.MeasureText(text, c.renderer.Theme.FontSize)
	rl.DrawText(text, right-w, y, c.renderer.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
