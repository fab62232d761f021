package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/economy"
)

// MenuAction is what the player chose on the menu this frame.
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuStart
	MenuBuy
	MenuClaimDaily
)

// MenuData is the economy state shown on the menu.
type MenuData struct {
	Record         economy.Record
	Stats          economy.PlayerStats
	DailyAvailable bool
	Status         string // Result of the last action
	LastLevel      float64
	LastCoins      float64
	HasLast        bool
}

// upgradeRows lists the purchasable upgrades in display order.
var upgradeRows = []struct {
	name  string
	label string
}{
	{"level", "Start Level"},
	{"speed", "Move Speed"},
	{"magnet", "Magnet"},
}

// Menu draws the between-sessions screen.
type Menu struct {
	renderer *Renderer
	cfg      *config.EconomyConfig
}

// NewMenu creates a menu priced by cfg.
func NewMenu(cfg *config.EconomyConfig) *Menu {
	return &Menu{renderer: NewRenderer(), cfg: cfg}
}

// Draw renders the menu and returns the chosen action. For MenuBuy the
// upgrade name is returned as the second value.
func (m *Menu) Draw(d MenuData, screenW, screenH int32) (MenuAction, string) {
	r := m.renderer
	rl.ClearBackground(r.Theme.Floor)

	cx := screenW / 2
	r.DrawCenteredText("SNAKE CLASH", cx, 60, 48, r.Theme.Player)
	r.DrawCenteredText(fmt.Sprintf("Coins: %d   Gems: %d", d.Record.Coins, d.Record.Gems), cx, 125, 22, r.Theme.Chest)

	if d.HasLast {
		r.DrawCenteredText(fmt.Sprintf("Last run: level %.0f, +%.0f coins", d.LastLevel, d.LastCoins), cx, 155, 16, rl.LightGray)
	}

	action, upgrade := MenuNone, ""

	panelW := float32(420)
	x := float32(cx) - panelW/2
	y := float32(190)
	r.DrawPanel(int32(x), int32(y), int32(panelW), 190)
	rl.DrawText("Upgrades", int32(x)+12, int32(y)+10, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += 44

	levels := []int{d.Record.Upgrades.Level, d.Record.Upgrades.Speed, d.Record.Upgrades.Magnet}
	values := []string{
		fmt.Sprintf("%.0f", d.Stats.StartLevel),
		fmt.Sprintf("%.1f", d.Stats.MoveSpeed),
		fmt.Sprintf("%.1f", d.Stats.MagnetRadius),
	}
	for i, row := range upgradeRows {
		rl.DrawText(fmt.Sprintf("%s  Lv %d  (%s)", row.label, levels[i], values[i]), int32(x)+12, int32(y)+8, r.Theme.FontSize, rl.White)
		cost := economy.UpgradeCost(levels[i], m.cfg)
		if gui.Button(rl.Rectangle{X: x + panelW - 132, Y: y, Width: 120, Height: 30}, fmt.Sprintf("Buy %d", cost)) {
			action, upgrade = MenuBuy, row.name
		}
		y += 44
	}

	y += 24
	dailyText := "Daily reward claimed"
	if d.DailyAvailable {
		dailyText = fmt.Sprintf("Claim daily +%d", m.cfg.DailyReward)
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: panelW, Height: 36}, dailyText) {
		action = MenuClaimDaily
	}
	y += 52

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: panelW, Height: 56}, "PLAY") || rl.IsKeyPressed(rl.KeyEnter) {
		action = MenuStart
	}
	y += 72

	if d.Status != "" {
		r.DrawCenteredText(d.Status, cx, int32(y), 16, rl.LightGray)
	}
	return action, upgrade
}
