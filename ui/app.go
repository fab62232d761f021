package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakeclash/camera"
	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/economy"
	"github.com/pthm-cable/snakeclash/game"
	"github.com/pthm-cable/snakeclash/systems"
)

// resultDuration is how long the end banner stays before the menu returns.
const resultDuration = 3 * time.Second

type appState uint8

const (
	stateMenu appState = iota
	statePlaying
	stateResult
)

// Options configures the graphical front-end.
type Options struct {
	Seed     int64          // Base seed; each session adds its index (0 = time-based)
	Logger   *slog.Logger   // nil = slog.Default()
	Recorder *game.Recorder // Optional telemetry
}

// App owns the window loop and moves between menu, session and result.
type App struct {
	cfg    *config.Config
	repo   economy.Repository
	opts   Options
	logger *slog.Logger

	state       appState
	session     *game.Session
	sessions    int
	lastView    game.View
	resultUntil time.Time
	menuData    MenuData

	cam       *camera.Camera
	overlays  *OverlayRegistry
	arena     *ArenaRenderer
	hud       *HUD
	menu      *Menu
	minimap   *Minimap
	controls  *ControlsPanel
	perfPanel *PerfPanel
	inspector *Inspector
	perf      *game.PerfStats
	joystick  *game.Joystick

	screenW, screenH int32
}

// NewApp creates the front-end. Call Run to open the window.
func NewApp(cfg *config.Config, repo economy.Repository, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	cam := camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Screen.Zoom)
	overlays := NewOverlayRegistry()

	return &App{
		cfg:       cfg,
		repo:      repo,
		opts:      opts,
		logger:    logger,
		cam:       cam,
		overlays:  overlays,
		arena:     NewArenaRenderer(cam, overlays),
		hud:       NewHUD(cfg.Combo.Window),
		menu:      NewMenu(&cfg.Economy),
		minimap:   NewMinimap(180, cfg.Arena.StartRadius),
		controls:  NewControlsPanel(10, 100, 240),
		perfPanel: NewPerfPanel(16, int32(cfg.Screen.Height)-200),
		inspector: NewInspector(int32(cfg.Screen.Width)-260, 210, 240),
		perf:      game.NewPerfStats(0),
		joystick:  game.NewJoystick(game.DefaultJoystickRadius),
		screenW:   int32(cfg.Screen.Width),
		screenH:   int32(cfg.Screen.Height),
	}
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(a.screenW, a.screenH, "Snake Clash")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(a.cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyNull)

	a.refreshMenu("")
	for !rl.WindowShouldClose() {
		a.handleResize()
		frameStart := time.Now()

		rl.BeginDrawing()
		if err := a.frame(rl.GetFrameTime()); err != nil {
			rl.EndDrawing()
			return err
		}
		rl.EndDrawing()

		a.perf.Record("frame", time.Since(frameStart))
	}

	// Closing the window mid-session abandons it
	if a.session != nil {
		a.session.Teardown()
	}
	return nil
}

// frame updates and draws one frame for the current state.
func (a *App) frame(dt float32) error {
	switch a.state {
	case stateMenu:
		action, upgrade := a.menu.Draw(a.menuData, a.screenW, a.screenH)
		return a.handleMenu(action, upgrade)

	case statePlaying:
		a.handleInput()
		if a.state != statePlaying {
			return nil
		}
		a.perf.Measure("tick", func() {
			a.session.Tick(dt, a.steering())
		})
		if a.opts.Recorder != nil {
			a.opts.Recorder.AfterTick(a.session)
		}

		var v game.View
		a.perf.Measure("view", func() { v = a.session.View() })
		a.lastView = v
		if !a.session.Playing() {
			a.finishSession(v)
		}
		a.cam.Track(v.Player.X, v.Player.Y)
		a.perf.Measure("draw", func() { a.drawSession(v) })

	case stateResult:
		a.drawSession(a.lastView)
		a.hud.DrawResult(a.lastView, a.screenW, a.screenH, time.Until(a.resultUntil))
		if time.Now().After(a.resultUntil) {
			a.state = stateMenu
		}
	}
	return nil
}

// handleMenu applies a menu choice.
func (a *App) handleMenu(action MenuAction, upgrade string) error {
	switch action {
	case MenuStart:
		return a.startSession()
	case MenuBuy:
		_, err := economy.Purchase(a.repo, &a.cfg.Economy, upgrade)
		switch {
		case errors.Is(err, economy.ErrInsufficientFunds):
			a.refreshMenu("Not enough coins")
		case err != nil:
			a.logger.Error("upgrade purchase failed", "upgrade", upgrade, "error", err)
			a.refreshMenu("Purchase failed")
		default:
			a.logger.Info("upgrade_purchased", "upgrade", upgrade)
			a.refreshMenu(fmt.Sprintf("Upgraded %s", upgrade))
		}
	case MenuClaimDaily:
		_, err := economy.ClaimDaily(a.repo, &a.cfg.Economy, time.Now())
		switch {
		case errors.Is(err, economy.ErrDailyUnavailable):
			a.refreshMenu("Come back tomorrow")
		case err != nil:
			a.logger.Error("daily claim failed", "error", err)
			a.refreshMenu("Claim failed")
		default:
			a.logger.Info("daily_claimed", "reward", a.cfg.Economy.DailyReward)
			a.refreshMenu(fmt.Sprintf("+%d coins", a.cfg.Economy.DailyReward))
		}
	}
	return nil
}

// startSession builds and starts a new session.
func (a *App) startSession() error {
	a.sessions++
	seed := a.opts.Seed + int64(a.sessions)

	opts := game.Options{Seed: seed, Logger: a.logger}
	if a.opts.Recorder != nil {
		opts.OnEvent = a.opts.Recorder.OnEvent
		a.opts.Recorder.Begin(a.sessions, seed)
	}

	s, err := game.NewSession(a.cfg, a.repo, opts)
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	a.session = s
	a.joystick.Release()
	a.inspector.Deselect()
	a.lastView = game.View{}
	a.cam.CenterOn(0, 0)
	a.state = statePlaying
	return nil
}

// finishSession records the result, tears the session down and shows the banner.
func (a *App) finishSession(v game.View) {
	if a.opts.Recorder != nil {
		a.opts.Recorder.Finish(a.session)
	}
	a.session.Teardown()
	a.session = nil

	a.lastView = v
	a.resultUntil = time.Now().Add(resultDuration)
	a.state = stateResult

	a.refreshMenu("")
	a.menuData.HasLast = true
	a.menuData.LastLevel = math.Floor(v.Player.Level)
	a.menuData.LastCoins = math.Floor(v.SessionCoins)
}

// abandonSession leaves a running session without committing its currency.
func (a *App) abandonSession() {
	a.session.Teardown()
	a.session = nil
	a.state = stateMenu
	a.refreshMenu("Run abandoned")
}

// refreshMenu reloads the economy record for the menu.
func (a *App) refreshMenu(status string) {
	rec, _, err := economy.Load(a.repo, &a.cfg.Economy)
	if err != nil {
		a.logger.Error("economy load failed", "error", err)
		status = "Economy unavailable"
	}
	a.menuData.Record = rec
	a.menuData.Stats = economy.Stats(rec.Upgrades, &a.cfg.Player)
	a.menuData.DailyAvailable = economy.DailyAvailable(rec, time.Now(), &a.cfg.Economy)
	a.menuData.Status = status
}

// handleInput processes pointer steering and overlay keys during play.
func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.abandonSession()
		return
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.controls.Toggle()
	}
	a.overlays.HandleInput()

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.ZoomBy(1 + wheel*0.1)
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		wx, wy := a.cam.ScreenToWorld(mouse.X, mouse.Y)
		a.inspector.Select(a.lastView, wx, wy)
	}
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		a.joystick.Press(mouse.X, mouse.Y)
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		a.joystick.Drag(mouse.X, mouse.Y)
	case a.joystick.Active():
		a.joystick.Release()
	}
}

// handleResize propagates window size changes.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	a.screenW = int32(rl.GetScreenWidth())
	a.screenH = int32(rl.GetScreenHeight())
	a.cam.Resize(float32(a.screenW), float32(a.screenH))
	a.perfPanel.SetPosition(16, a.screenH-200)
	a.inspector.SetPosition(a.screenW-260, 210)
}

// drawSession draws the arena, HUD and enabled overlays.
func (a *App) drawSession(v game.View) {
	a.arena.Draw(v)
	a.inspector.Highlight(v, a.cam.WorldToScreen, 18)
	a.drawJoystick()
	a.hud.Draw(v, a.screenW, a.screenH)

	if a.overlays.IsEnabled(OverlayMinimap) {
		a.minimap.Draw(v, a.screenW)
	}
	a.inspector.Draw(v)
	if a.overlays.IsEnabled(OverlayPerformance) {
		a.perfPanel.Draw(a.perf, rl.GetFPS())
	}
	a.controls.Draw(a.overlays)
	a.hud.DrawControls(a.screenH, "Drag/Arrows: steer | Right click: inspect | Wheel: zoom | H: overlays | F11: fullscreen | Esc: quit run")
}

// drawJoystick draws the drag base and knob while steering.
func (a *App) drawJoystick() {
	if !a.joystick.Active() {
		return
	}
	ox, oy := a.joystick.Origin()
	kx, ky := a.joystick.Knob()
	rl.DrawCircleLines(int32(ox), int32(oy), a.joystick.Radius, rl.Color{R: 255, G: 255, B: 255, A: 120})
	rl.DrawCircleV(rl.Vector2{X: ox + kx, Y: oy + ky}, 14, rl.Color{R: 255, G: 255, B: 255, A: 160})
}

// steering returns the pointer joystick input, falling back to arrow keys.
func (a *App) steering() systems.Steering {
	if a.joystick.Active() {
		return a.joystick.Steering()
	}
	var dx, dy float32
	if rl.IsKeyDown(rl.KeyLeft) {
		dx--
	}
	if rl.IsKeyDown(rl.KeyRight) {
		dx++
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dy--
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dy++
	}
	if dx == 0 && dy == 0 {
		return systems.NoSteering
	}
	return systems.Steering{Angle: systems.HeadingTo(dx, dy), Strength: 1}
}
