package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a filled bar for a [0, 1] value.
func (r *Renderer) DrawBar(x, y, width, height int32, value float32, fill rl.Color) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	rl.DrawRectangle(x, y, width, height, r.Theme.BarBg)
	rl.DrawRectangle(x, y, int32(float32(width)*value), height, fill)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawCenteredText draws text horizontally centred on cx.
func (r *Renderer) DrawCenteredText(text string, cx, y, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, cx-w/2, y, size, color)
}
