package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakeclash/game"
)

// HUD renders the in-session heads-up display.
type HUD struct {
	renderer    *Renderer
	comboWindow float64
}

// NewHUD creates a new HUD renderer. comboWindow scales the decay bar.
func NewHUD(comboWindow float64) *HUD {
	return &HUD{renderer: NewRenderer(), comboWindow: comboWindow}
}

// Draw renders level, currency, clock, combo and boss health.
func (h *HUD) Draw(v game.View, screenW, screenH int32) {
	r := h.renderer
	th := r.Theme

	r.DrawPanel(10, 10, 200, th.LineHeight*3+th.Padding*2)
	y := 10 + th.Padding
	y = r.DrawLabelValue(10+th.Padding, y, "Level", fmt.Sprintf("%.0f", math.Floor(v.Player.Level)))
	y = r.DrawLabelValue(10+th.Padding, y, "Coins", fmt.Sprintf("%.0f", math.Floor(v.SessionCoins)))
	r.DrawLabelValue(10+th.Padding, y, "Length", fmt.Sprintf("%d", v.Player.SegmentCount()))

	// Clock turns red in the last ten seconds
	clockColor := rl.White
	if v.Remaining < 10 {
		clockColor = th.Boundary
	}
	r.DrawCenteredText(v.RemainingText, screenW/2, 12, 32, clockColor)

	if v.ComboCount > 0 {
		text := fmt.Sprintf("COMBO x%.1f  (%d)", v.ComboMultiplier, v.ComboCount)
		r.DrawCenteredText(text, screenW/2, 50, 22, th.Chest)
		r.DrawBar(screenW/2-80, 76, 160, 6, float32(v.ComboTimer/h.comboWindow), th.Chest)
	}

	if v.Boss != nil {
		barW := screenW / 2
		r.DrawCenteredText("BOSS", screenW/2, screenH-60, 20, th.Boss)
		r.DrawBar(screenW/2-barW/2, screenH-36, barW, 16, float32(v.BossHealth), th.Boss)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenH int32, controls string) {
	rl.DrawText(controls, 10, screenH-25, 14, rl.Gray)
}

// DrawResult renders the end-of-session banner.
func (h *HUD) DrawResult(v game.View, screenW, screenH int32, remaining time.Duration) {
	r := h.renderer
	title, color := "TIME UP", rl.White
	switch v.Outcome {
	case game.OutcomeDefeated:
		title, color = "DEFEATED", r.Theme.Boundary
	case game.OutcomeOutOfBounds:
		title, color = "OUT OF BOUNDS", r.Theme.Boundary
	}

	rl.DrawRectangle(0, 0, screenW, screenH, rl.Color{R: 0, G: 0, B: 0, A: 140})
	r.DrawCenteredText(title, screenW/2, screenH/2-80, 48, color)
	r.DrawCenteredText(fmt.Sprintf("Level %.0f", math.Floor(v.Player.Level)), screenW/2, screenH/2-10, 28, rl.White)
	r.DrawCenteredText(fmt.Sprintf("+%.0f coins", math.Floor(v.SessionCoins)), screenW/2, screenH/2+26, 28, r.Theme.Chest)
	r.DrawCenteredText(fmt.Sprintf("menu in %.0fs", math.Ceil(remaining.Seconds())), screenW/2, screenH/2+70, 16, rl.Gray)
}

// PerfPanel renders rolling phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(perf *game.PerfStats, fps int32) {
	x, y := p.x, p.y
	names := perf.SortedNames()

	p.renderer.DrawPanel(x-6, y-6, 220, int32(len(names)+2)*16+12)
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x, y, 14, rl.White)
	y += 16
	rl.DrawText(fmt.Sprintf("Total: %s", perf.Total().Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	total := perf.Total()
	for _, name := range names {
		avg := perf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		rl.DrawText(fmt.Sprintf("%-8s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, rl.LightGray)
		y += 16
	}
}
