// Spawn preview tool - shows item spawns from the fixed field square against
// the shrinking arena ring, with sliders for the relevant config values.
//
// Usage: go run ./cmd/spawnpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 40
)

// SpawnParams holds the previewed config values.
type SpawnParams struct {
	FieldSize   float32
	FoodCount   int
	ChestCount  int
	StartRadius float32
	MinRadius   float32
	ShrinkRate  float32
	Time        float32 // Seconds into the session
	Seed        int64
}

func paramsFrom(cfg *config.Config) SpawnParams {
	return SpawnParams{
		FieldSize:   float32(cfg.Items.FieldSize),
		FoodCount:   cfg.Items.FoodCount,
		ChestCount:  cfg.Items.ChestCount,
		StartRadius: float32(cfg.Arena.StartRadius),
		MinRadius:   float32(cfg.Arena.MinRadius),
		ShrinkRate:  float32(cfg.Arena.ShrinkRate),
		Seed:        1,
	}
}

// spawnLayout places items the way a session start does and reports how many
// fall outside the arena at the previewed time.
type spawnLayout struct {
	items   []components.Item
	pos     []components.Position
	radius  float64
	outside int
}

func layout(p SpawnParams) spawnLayout {
	rng := rand.New(rand.NewSource(p.Seed))
	arena := systems.NewArena(&config.ArenaConfig{
		StartRadius: float64(p.StartRadius),
		MinRadius:   float64(min(p.MinRadius, p.StartRadius)),
		ShrinkRate:  float64(p.ShrinkRate),
	})
	arena.Tick(float64(p.Time))

	var l spawnLayout
	l.radius = arena.Radius()
	add := func(kind components.ItemKind, n int) {
		for i := 0; i < n; i++ {
			pos := systems.SquarePoint(rng, float64(p.FieldSize))
			l.items = append(l.items, components.Item{Kind: kind})
			l.pos = append(l.pos, pos)
			if arena.Violates(pos.X, pos.Y) {
				l.outside++
			}
		}
	}
	add(components.KindFood, p.FoodCount)
	add(components.KindChest, p.ChestCount)
	return l
}

// yamlLines renders the params as a config fragment.
func yamlLines(p SpawnParams) []string {
	return []string{
		"arena:",
		fmt.Sprintf("  start_radius: %.0f", p.StartRadius),
		fmt.Sprintf("  min_radius: %.0f", p.MinRadius),
		fmt.Sprintf("  shrink_rate: %.2f", p.ShrinkRate),
		"items:",
		fmt.Sprintf("  field_size: %.0f", p.FieldSize),
		fmt.Sprintf("  food_count: %d", p.FoodCount),
		fmt.Sprintf("  chest_count: %d", p.ChestCount),
	}
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defaults := paramsFrom(cfg)
	params := defaults
	timeLimit := float32(cfg.Session.TimeLimit)

	rl.InitWindow(windowWidth, windowHeight, "Spawn Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	current := layout(params)
	playing := false

	for !rl.WindowShouldClose() {
		if playing {
			params.Time += rl.GetFrameTime() * 10
			if params.Time >= timeLimit {
				params.Time = timeLimit
				playing = false
			}
			current = layout(params)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPreview(current, params)

		// Parameter panel
		panelX := float32(previewSize + 30)
		panelY := float32(10)
		rl.DrawText("Spawn Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		slider := func(label, format string, value *float32, lo, hi float32) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				*value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != *value {
				*value = v
				changed = true
			}
			panelY += 35
		}

		food := float32(params.FoodCount)
		chests := float32(params.ChestCount)
		slider("Field size (spawn square side)", "%.0f", &params.FieldSize, 50, 1000)
		slider("Food count", "%.0f", &food, 0, 500)
		slider("Chest count", "%.0f", &chests, 0, 20)
		slider("Arena start radius", "%.0f", &params.StartRadius, 50, 800)
		slider("Arena min radius", "%.0f", &params.MinRadius, 10, 400)
		slider("Shrink rate (units/s)", "%.2f", &params.ShrinkRate, 0, 5)
		slider("Session time (s)", "%.1f", &params.Time, 0, timeLimit)
		params.FoodCount = int(food)
		params.ChestCount = int(chests)

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(playing, "Pause", "Play x10")) {
			playing = !playing
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			params.Seed = int64(rl.GetRandomValue(1, 99999))
			changed = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Reset All") {
			params = defaults
			playing = false
			changed = true
		}
		panelY += 50

		if changed {
			current = layout(params)
		}

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		lines := yamlLines(params)
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(strings.Join(lines, "\n"))
		}

		rl.EndDrawing()
	}
}

// drawPreview draws the field square, arena ring and items scaled to fit the
// larger of the field and the starting arena.
func drawPreview(l spawnLayout, p SpawnParams) {
	extent := max(p.FieldSize, 2*p.StartRadius)
	scale := float32(previewSize-20) / extent
	cx := float32(10 + previewSize/2)
	cy := float32(10 + previewSize/2)

	rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Color{R: 18, G: 30, B: 24, A: 255})

	half := p.FieldSize / 2 * scale
	rl.DrawRectangleLines(int32(cx-half), int32(cy-half), int32(2*half), int32(2*half), rl.Gray)
	rl.DrawCircleLines(int32(cx), int32(cy), float32(l.radius)*scale, rl.Red)

	for i, pos := range l.pos {
		x := cx + pos.X*scale
		y := cy + pos.Y*scale
		if l.items[i].Kind == components.KindChest {
			rl.DrawRectangle(int32(x)-3, int32(y)-3, 6, 6, rl.Gold)
		} else {
			rl.DrawCircle(int32(x), int32(y), 1.5, rl.Yellow)
		}
	}
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

	total := len(l.pos)
	share := 0.0
	if total > 0 {
		share = float64(l.outside) / float64(total)
	}
	statsY := int32(previewSize + 25)
	rl.DrawText(fmt.Sprintf("Arena radius: %.1f  Items: %d", l.radius, total), 15, statsY, 16, rl.DarkGray)
	rl.DrawText(fmt.Sprintf("Outside ring: %d (%.0f%%)", l.outside, math.Round(share*100)), 15, statsY+20, 16, rl.DarkGray)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
