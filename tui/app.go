package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/economy"
	"github.com/pthm-cable/snakeclash/game"
)

const (
	frameInterval  = 16 * time.Millisecond
	resultDuration = 3 * time.Second
	// Rows per arena unit
	defaultZoom = 0.5
)

type appState uint8

const (
	stateMenu appState = iota
	statePlaying
	stateResult
)

// MenuState is the economy state shown on the terminal menu.
type MenuState struct {
	Record         economy.Record
	Costs          [3]int // level, speed, magnet
	DailyAvailable bool
	Status         string
	LastLevel      float64
	LastCoins      float64
	HasLast        bool
}

// upgradeKeys maps menu keys to upgrade names.
var upgradeKeys = map[rune]string{
	'1': "level",
	'2': "speed",
	'3': "magnet",
}

// Options configures the terminal front-end.
type Options struct {
	Seed     int64          // Base seed; each session adds its index (0 = time-based)
	Logger   *slog.Logger   // nil = slog.Default()
	Recorder *game.Recorder // Optional telemetry
	Mute     bool           // Skip speaker init
}

// App runs the terminal loop: menu, session and result banner.
type App struct {
	cfg    *config.Config
	repo   economy.Repository
	opts   Options
	logger *slog.Logger

	screen   tcell.Screen
	renderer *Renderer
	keys     KeySteering
	chimes   *Chimes

	state       appState
	session     *game.Session
	sessions    int
	lastView    game.View
	resultUntil time.Time
	menu        MenuState
	quit        bool
}

// NewApp creates the terminal front-end on screen. The screen must already
// be initialised; Run finalises it.
func NewApp(cfg *config.Config, repo economy.Repository, screen tcell.Screen, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	a := &App{
		cfg:      cfg,
		repo:     repo,
		opts:     opts,
		logger:   logger,
		screen:   screen,
		renderer: NewRenderer(screen, defaultZoom),
	}
	if opts.Mute {
		a.chimes = &Chimes{}
	} else {
		a.chimes = NewChimes(logger)
	}
	return a
}

// Run blocks until the player quits.
func (a *App) Run() error {
	defer a.screen.Fini()
	defer a.chimes.Close()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.refreshMenu("")
	a.renderer.DrawMenu(a.menu)
	last := time.Now()

	for !a.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				a.quit = true
				break
			}
			if err := a.handleEvent(ev); err != nil {
				a.abandon()
				return err
			}
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			a.frame(dt)
		}
	}

	a.abandon()
	return nil
}

// handleEvent dispatches one terminal event for the current state.
func (a *App) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.renderer.Resize()
		switch a.state {
		case stateMenu:
			a.renderer.DrawMenu(a.menu)
		case stateResult:
			a.renderer.DrawView(a.lastView)
			a.renderer.DrawResult(a.lastView)
		}
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			a.quit = true
			return nil
		}
		switch a.state {
		case stateMenu:
			return a.handleMenuKey(ev)
		case statePlaying:
			if ev.Key() == tcell.KeyEscape {
				a.abandon()
				a.state = stateMenu
				a.refreshMenu("Run abandoned")
				a.renderer.DrawMenu(a.menu)
				return nil
			}
			a.keys.Handle(ev)
		case stateResult:
			// Any key skips the banner
			a.state = stateMenu
			a.renderer.DrawMenu(a.menu)
		}
	}
	return nil
}

// handleMenuKey applies a menu key press.
func (a *App) handleMenuKey(ev *tcell.EventKey) error {
	switch {
	case ev.Key() == tcell.KeyEnter:
		return a.startSession()
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		a.quit = true
		return nil
	case ev.Key() != tcell.KeyRune:
		return nil
	}

	if name, ok := upgradeKeys[ev.Rune()]; ok {
		_, err := economy.Purchase(a.repo, &a.cfg.Economy, name)
		switch {
		case errors.Is(err, economy.ErrInsufficientFunds):
			a.refreshMenu("Not enough coins")
		case err != nil:
			a.logger.Error("upgrade purchase failed", "upgrade", name, "error", err)
			a.refreshMenu("Purchase failed")
		default:
			a.logger.Info("upgrade_purchased", "upgrade", name)
			a.refreshMenu(fmt.Sprintf("Upgraded %s", name))
		}
	} else if ev.Rune() == 'c' {
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
	a.renderer.DrawMenu(a.menu)
	return nil
}

// frame advances and draws the running session, or expires the banner.
func (a *App) frame(dt float32) {
	switch a.state {
	case statePlaying:
		a.session.Tick(dt, a.keys.Steering())
		if a.opts.Recorder != nil {
			a.opts.Recorder.AfterTick(a.session)
		}
		v := a.session.View()
		a.renderer.Camera().Track(v.Player.X, v.Player.Y)
		a.renderer.DrawView(v)
		if !a.session.Playing() {
			a.finish(v)
			a.renderer.DrawResult(v)
		}
	case stateResult:
		if time.Now().After(a.resultUntil) {
			a.state = stateMenu
			a.renderer.DrawMenu(a.menu)
		}
	}
}

// startSession builds and starts a new session.
func (a *App) startSession() error {
	a.sessions++
	seed := a.opts.Seed + int64(a.sessions)

	onEvent := a.chimes.OnEvent
	if rec := a.opts.Recorder; rec != nil {
		rec.Begin(a.sessions, seed)
		onEvent = func(e game.Event) {
			rec.OnEvent(e)
			a.chimes.OnEvent(e)
		}
	}

	s, err := game.NewSession(a.cfg, a.repo, game.Options{Seed: seed, Logger: a.logger, OnEvent: onEvent})
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	a.session = s
	a.keys.Reset()
	a.renderer.Camera().CenterOn(0, 0)
	a.state = statePlaying
	return nil
}

// finish records a terminal session and shows the banner.
func (a *App) finish(v game.View) {
	if a.opts.Recorder != nil {
		a.opts.Recorder.Finish(a.session)
	}
	a.session.Teardown()
	a.session = nil

	a.lastView = v
	a.resultUntil = time.Now().Add(resultDuration)
	a.state = stateResult

	a.refreshMenu("")
	a.menu.HasLast = true
	a.menu.LastLevel = math.Floor(v.Player.Level)
	a.menu.LastCoins = math.Floor(v.SessionCoins)
}

// abandon tears down a running session without committing its currency.
func (a *App) abandon() {
	if a.session == nil {
		return
	}
	a.session.Teardown()
	a.session = nil
}

// refreshMenu reloads the economy record for the menu.
func (a *App) refreshMenu(status string) {
	rec, _, err := economy.Load(a.repo, &a.cfg.Economy)
	if err != nil {
		a.logger.Error("economy load failed", "error", err)
		status = "Economy unavailable"
	}
	u := rec.Upgrades
	a.menu.Record = rec
	a.menu.Costs = [3]int{
		economy.UpgradeCost(u.Level, &a.cfg.Economy),
		economy.UpgradeCost(u.Speed, &a.cfg.Economy),
		economy.UpgradeCost(u.Magnet, &a.cfg.Economy),
	}
	a.menu.DailyAvailable = economy.DailyAvailable(rec, time.Now(), &a.cfg.Economy)
	a.menu.Status = status
}
