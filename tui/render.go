// Package tui is the terminal front-end: it draws session views into a tcell
// screen, steers with the keyboard and plays chimes for session events.
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/snakeclash/camera"
	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/game"
)

// Terminal cells are about twice as tall as wide, so a camera pixel spans
// two columns.
const cellAspect = 2

var (
	styleDefault  = tcell.StyleDefault
	styleBoundary = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleBody     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleBot      = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleWeakBot  = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleBoss     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleFood     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleChest    = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Renderer draws views into a tcell screen through a follow camera.
type Renderer struct {
	screen tcell.Screen
	cam    *camera.Camera
}

// NewRenderer creates a renderer. zoom is rows per arena unit.
func NewRenderer(screen tcell.Screen, zoom float32) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		cam:    camera.New(float32(w)/cellAspect, float32(h), zoom),
	}
}

// Camera returns the follow camera.
func (r *Renderer) Camera() *camera.Camera { return r.cam }

// Resize matches the camera to the current terminal size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.cam.Resize(float32(w)/cellAspect, float32(h))
}

// cell maps arena coordinates to a terminal cell.
func (r *Renderer) cell(x, y float32) (col, row int, ok bool) {
	sx, sy := r.cam.WorldToScreen(x, y)
	col = int(math.Floor(float64(sx * cellAspect)))
	row = int(math.Floor(float64(sy)))
	w, h := r.screen.Size()
	return col, row, col >= 0 && col < w && row >= 0 && row < h
}

func (r *Renderer) put(x, y float32, ch rune, style tcell.Style) {
	if col, row, ok := r.cell(x, y); ok {
		r.screen.SetContent(col, row, ch, nil, style)
	}
}

// DrawView draws one session frame and the HUD line.
func (r *Renderer) DrawView(v game.View) {
	r.screen.Clear()
	r.drawBoundary(v.ArenaRadius)

	for _, it := range v.Items {
		if it.Kind == components.KindChest {
			r.put(it.X, it.Y, '■', styleChest)
		} else {
			r.put(it.X, it.Y, '·', styleFood)
		}
	}
	for _, b := range v.Bots {
		style := styleBot
		if b.Level <= v.Player.Level {
			style = styleWeakBot
		}
		r.drawCreature(b, 'o', '●', style, style)
	}
	if v.Boss != nil {
		r.drawCreature(*v.Boss, 'O', '@', styleBoss, styleBoss)
	}
	r.drawCreature(v.Player, 'o', '●', styleBody, stylePlayer)

	r.drawHUD(v)
	r.screen.Show()
}

// drawBoundary traces the arena ring.
func (r *Renderer) drawBoundary(radius float64) {
	// One mark per arena unit of circumference
	steps := max(int(2*math.Pi*radius), 64)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		r.put(float32(math.Sin(a)*radius), float32(math.Cos(a)*radius), '░', styleBoundary)
	}
}

func (r *Renderer) drawCreature(c game.CreatureView, body, head rune, bodyStyle, headStyle tcell.Style) {
	for i := len(c.Segments) - 1; i >= 0; i-- {
		r.put(c.Segments[i].X, c.Segments[i].Y, body, bodyStyle)
	}
	r.put(c.X, c.Y, head, headStyle)
}

// drawHUD writes level, currency, clock and combo on the top row and the
// boss bar on the bottom row.
func (r *Renderer) drawHUD(v game.View) {
	w, h := r.screen.Size()
	line := fmt.Sprintf(" LVL %.0f  COINS %.0f  %s", math.Floor(v.Player.Level), math.Floor(v.SessionCoins), v.RemainingText)
	if v.ComboCount > 0 {
		line += fmt.Sprintf("  COMBO x%.1f", v.ComboMultiplier)
	}
	r.text(0, 0, line, styleHUD)

	if v.Boss != nil && h > 2 {
		barW := max(w/2, 10)
		filled := int(math.Round(v.BossHealth * float64(barW)))
		bar := "BOSS ["
		for i := 0; i < barW; i++ {
			if i < filled {
				bar += "█"
			} else {
				bar += " "
			}
		}
		bar += "]"
		r.text(0, h-1, bar, styleBoss)
	}
}

// text writes s starting at (col, row), clipped to the screen.
func (r *Renderer) text(col, row int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	for _, ch := range s {
		if col >= w {
			return
		}
		r.screen.SetContent(col, row, ch, nil, style)
		col++
	}
}

// centered writes s centred on row.
func (r *Renderer) centered(row int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	r.text(max((w-len([]rune(s)))/2, 0), row, s, style)
}

// DrawMenu draws the between-sessions menu.
func (r *Renderer) DrawMenu(m MenuState) {
	r.screen.Clear()
	_, h := r.screen.Size()
	row := max(h/2-8, 0)

	r.centered(row, "S N A K E   C L A S H", stylePlayer)
	row += 2
	r.centered(row, fmt.Sprintf("Coins %d   Gems %d", m.Record.Coins, m.Record.Gems), styleChest)
	row += 2

	u := m.Record.Upgrades
	r.centered(row, fmt.Sprintf("[1] Start level  Lv %d  cost %d", u.Level, m.Costs[0]), styleDefault)
	row++
	r.centered(row, fmt.Sprintf("[2] Move speed   Lv %d  cost %d", u.Speed, m.Costs[1]), styleDefault)
	row++
	r.centered(row, fmt.Sprintf("[3] Magnet       Lv %d  cost %d", u.Magnet, m.Costs[2]), styleDefault)
	row += 2

	daily := "[c] Daily reward claimed"
	if m.DailyAvailable {
		daily = "[c] Claim daily reward"
	}
	r.centered(row, daily, styleDefault)
	row += 2
	r.centered(row, "[Enter] Play    [q] Quit", styleHUD)
	row += 2

	if m.HasLast {
		r.centered(row, fmt.Sprintf("Last run: level %.0f, +%.0f coins", m.LastLevel, m.LastCoins), styleDim)
		row++
	}
	if m.Status != "" {
		r.centered(row, m.Status, styleDim)
	}
	r.screen.Show()
}

// DrawResult overlays the end banner on the last frame.
func (r *Renderer) DrawResult(v game.View) {
	_, h := r.screen.Size()
	title := "TIME UP"
	switch v.Outcome {
	case game.OutcomeDefeated:
		title = "DEFEATED"
	case game.OutcomeOutOfBounds:
		title = "OUT OF BOUNDS"
	}
	r.centered(h/2-1, " "+title+" ", styleHUD.Reverse(true))
	r.centered(h/2+1, fmt.Sprintf(" level %.0f  +%.0f coins ", math.Floor(v.Player.Level), math.Floor(v.SessionCoins)), styleHUD)
	r.screen.Show()
}
